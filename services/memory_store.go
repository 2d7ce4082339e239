package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/john-zaremba/my-easy-tracker/models"
)

// MemoryLogStore keeps logs and entries in process memory. It backs the
// service and controller tests and DB-less local runs, and honors the
// same error contract as GormLogStore, including the (user, date)
// uniqueness rule.
type MemoryLogStore struct {
	mu        sync.Mutex
	nextLog   uint
	nextEntry uint
	logs      map[uint]models.Log
	entries   map[uint]models.LogEntry
}

func NewMemoryLogStore() *MemoryLogStore {
	return &MemoryLogStore{
		logs:    make(map[uint]models.Log),
		entries: make(map[uint]models.LogEntry),
	}
}

func (s *MemoryLogStore) FindLog(userID uint, date string) (*models.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.logs {
		if l.UserID == userID && l.Date == date {
			cp := l
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: log for user %d on %s", ErrNotFound, userID, date)
}

func (s *MemoryLogStore) CreateLog(userID uint, date string) (*models.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.logs {
		if l.UserID == userID && l.Date == date {
			return nil, fmt.Errorf("%w: log for user %d on %s already exists", ErrConflict, userID, date)
		}
	}
	s.nextLog++
	log := models.Log{UserID: userID, Date: date}
	log.ID = s.nextLog
	s.logs[log.ID] = log
	cp := log
	return &cp, nil
}

func (s *MemoryLogStore) GetLog(logID uint) (*models.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.logs[logID]
	if !ok {
		return nil, fmt.Errorf("%w: log %d", ErrNotFound, logID)
	}
	cp := l
	return &cp, nil
}

func (s *MemoryLogStore) ListLogs(userID uint) ([]models.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var logs []models.Log
	for _, l := range s.logs {
		if l.UserID == userID {
			logs = append(logs, l)
		}
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date > logs[j].Date })
	return logs, nil
}

func (s *MemoryLogStore) DeleteLog(logID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.logs[logID]; !ok {
		return fmt.Errorf("%w: log %d", ErrNotFound, logID)
	}
	for id, e := range s.entries {
		if e.LogID == logID {
			delete(s.entries, id)
		}
	}
	delete(s.logs, logID)
	return nil
}

func (s *MemoryLogStore) AppendEntry(entry *models.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.logs[entry.LogID]; !ok {
		return fmt.Errorf("%w: log %d", ErrNotFound, entry.LogID)
	}
	s.nextEntry++
	entry.ID = s.nextEntry
	s.entries[entry.ID] = *entry
	return nil
}

func (s *MemoryLogStore) GetEntry(entryID uint) (*models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[entryID]
	if !ok {
		return nil, fmt.Errorf("%w: entry %d", ErrNotFound, entryID)
	}
	cp := e
	return &cp, nil
}

func (s *MemoryLogStore) UpdateEntry(entry *models.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.ID]; !ok {
		return fmt.Errorf("%w: entry %d", ErrNotFound, entry.ID)
	}
	s.entries[entry.ID] = *entry
	return nil
}

func (s *MemoryLogStore) RemoveEntry(entryID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entryID]; !ok {
		return fmt.Errorf("%w: entry %d", ErrNotFound, entryID)
	}
	delete(s.entries, entryID)
	return nil
}

// ListEntries returns a log's entries in insertion order; IDs are
// assigned monotonically, so ID order is insertion order.
func (s *MemoryLogStore) ListEntries(logID uint) ([]models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []models.LogEntry
	for _, e := range s.entries {
		if e.LogID == logID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}
