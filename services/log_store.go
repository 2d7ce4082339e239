package services

import (
	"errors"
	"fmt"

	"github.com/john-zaremba/my-easy-tracker/models"

	"gorm.io/gorm"
)

// LogStore is the persistence boundary for logs and their entries. The
// engine never issues raw queries; everything goes through this
// interface so tests and DB-less local runs can use MemoryLogStore.
//
// ListEntries returns entries in insertion order. RemoveEntry reports
// ErrNotFound for an already-deleted entry rather than succeeding
// silently.
type LogStore interface {
	FindLog(userID uint, date string) (*models.Log, error)
	CreateLog(userID uint, date string) (*models.Log, error)
	GetLog(logID uint) (*models.Log, error)
	ListLogs(userID uint) ([]models.Log, error)
	DeleteLog(logID uint) error
	AppendEntry(entry *models.LogEntry) error
	GetEntry(entryID uint) (*models.LogEntry, error)
	UpdateEntry(entry *models.LogEntry) error
	RemoveEntry(entryID uint) error
	ListEntries(logID uint) ([]models.LogEntry, error)
}

type GormLogStore struct {
	db *gorm.DB
}

func NewGormLogStore(db *gorm.DB) *GormLogStore {
	return &GormLogStore{db: db}
}

func (s *GormLogStore) FindLog(userID uint, date string) (*models.Log, error) {
	var log models.Log
	err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: log for user %d on %s", ErrNotFound, userID, date)
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *GormLogStore) CreateLog(userID uint, date string) (*models.Log, error) {
	log := models.Log{UserID: userID, Date: date}
	// TranslateError is on, so losing the (user_id, date) unique-index
	// race comes back as ErrDuplicatedKey.
	if err := s.db.Create(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: log for user %d on %s already exists", ErrConflict, userID, date)
		}
		return nil, err
	}
	return &log, nil
}

func (s *GormLogStore) GetLog(logID uint) (*models.Log, error) {
	var log models.Log
	err := s.db.First(&log, logID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: log %d", ErrNotFound, logID)
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *GormLogStore) ListLogs(userID uint) ([]models.Log, error) {
	var logs []models.Log
	err := s.db.
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&logs).Error
	return logs, err
}

// DeleteLog cascades to the log's entries.
func (s *GormLogStore) DeleteLog(logID uint) error {
	if _, err := s.GetLog(logID); err != nil {
		return err
	}
	if err := s.db.
		Where("log_id = ?", logID).
		Delete(&models.LogEntry{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.Log{}, logID).Error
}

func (s *GormLogStore) AppendEntry(entry *models.LogEntry) error {
	return s.db.Create(entry).Error
}

func (s *GormLogStore) GetEntry(entryID uint) (*models.LogEntry, error) {
	var entry models.LogEntry
	err := s.db.First(&entry, entryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: entry %d", ErrNotFound, entryID)
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *GormLogStore) UpdateEntry(entry *models.LogEntry) error {
	return s.db.Save(entry).Error
}

func (s *GormLogStore) RemoveEntry(entryID uint) error {
	res := s.db.Delete(&models.LogEntry{}, entryID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: entry %d", ErrNotFound, entryID)
	}
	return nil
}

func (s *GormLogStore) ListEntries(logID uint) ([]models.LogEntry, error) {
	var entries []models.LogEntry
	err := s.db.
		Where("log_id = ?", logID).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}
