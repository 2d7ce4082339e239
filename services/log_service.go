// services/log_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/john-zaremba/my-easy-tracker/models"

	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// LogService is the aggregation engine: lifecycle of the per-day log
// plus the add/edit/delete entry operations, each followed by a
// recompute of the day's summary over the post-mutation entry set.
type LogService struct {
	store LogStore
	food  FoodSearcher

	mu       sync.Mutex
	logLocks map[uint]*sync.Mutex
}

func NewLogService(store LogStore, food FoodSearcher) *LogService {
	return &LogService{
		store:    store,
		food:     food,
		logLocks: make(map[uint]*sync.Mutex),
	}
}

// lockFor serializes mutations per log so a recompute never observes a
// partially applied mutation. Operations on different logs stay
// independent.
func (s *LogService) lockFor(logID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.logLocks[logID]
	if !ok {
		l = &sync.Mutex{}
		s.logLocks[logID] = l
	}
	return l
}

type EntryView struct {
	EntryID  uint    `json:"entryId"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Calories float64 `json:"calories"`
	Fat      float64 `json:"fat"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
}

// LogDetail is the caller-facing summary shape: the full entry list
// plus totals and macro percentages, always freshly recomputed.
type LogDetail struct {
	LogID   uint           `json:"logId"`
	UserID  uint           `json:"userId"`
	Date    string         `json:"date"`
	Entries []EntryView    `json:"entries"`
	Total   NutrientTotals `json:"total"`
	Macros  MacroPercents  `json:"macros"`
}

type LogOverview struct {
	LogID      uint           `json:"logId"`
	Date       string         `json:"date"`
	EntryCount int            `json:"entryCount"`
	Total      NutrientTotals `json:"total"`
}

// GetOrCreateLog returns the user's log for the day of now, creating an
// empty one on the first write of the day. The date comes from the
// server clock so clients cannot backdate or forward-date logs.
// Losing the creation race is not an error: the loser re-fetches the
// winner's row. The second return reports whether a log was created.
func (s *LogService) GetOrCreateLog(userID uint, now time.Time) (*models.Log, bool, error) {
	date := now.Format(dateLayout)

	log, err := s.store.FindLog(userID, date)
	if err == nil {
		return log, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	log, err = s.store.CreateLog(userID, date)
	if err == nil {
		return log, true, nil
	}
	if errors.Is(err, ErrConflict) {
		logrus.WithFields(logrus.Fields{"user_id": userID, "date": date}).
			Info("lost log creation race, reusing existing log")
		log, err = s.store.FindLog(userID, date)
		if err != nil {
			return nil, false, err
		}
		return log, false, nil
	}
	return nil, false, err
}

func (s *LogService) ownedLog(userID, logID uint) (*models.Log, error) {
	log, err := s.store.GetLog(logID)
	if err != nil {
		return nil, err
	}
	if log.UserID != userID {
		return nil, fmt.Errorf("%w: log %d belongs to another user", ErrUnauthorized, logID)
	}
	return log, nil
}

func (s *LogService) detail(log *models.Log) (*LogDetail, error) {
	entries, err := s.store.ListEntries(log.ID)
	if err != nil {
		return nil, err
	}
	total, macros := ComputeSummary(entries)
	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, EntryView{
			EntryID:  e.ID,
			Name:     e.Name,
			Quantity: e.Quantity,
			Calories: e.Calories,
			Fat:      e.Fat,
			Protein:  e.Protein,
			Carbs:    e.Carbs,
		})
	}
	return &LogDetail{
		LogID:   log.ID,
		UserID:  log.UserID,
		Date:    log.Date,
		Entries: views,
		Total:   total,
		Macros:  macros,
	}, nil
}

func (s *LogService) GetLogDetail(userID, logID uint) (*LogDetail, error) {
	log, err := s.ownedLog(userID, logID)
	if err != nil {
		return nil, err
	}
	return s.detail(log)
}

// ListLogs returns the user's logs newest day first, each with its
// recomputed totals.
func (s *LogService) ListLogs(userID uint) ([]LogOverview, error) {
	logs, err := s.store.ListLogs(userID)
	if err != nil {
		return nil, err
	}
	out := make([]LogOverview, 0, len(logs))
	for _, log := range logs {
		entries, err := s.store.ListEntries(log.ID)
		if err != nil {
			return nil, err
		}
		total, _ := ComputeSummary(entries)
		out = append(out, LogOverview{
			LogID:      log.ID,
			Date:       log.Date,
			EntryCount: len(entries),
			Total:      total,
		})
	}
	return out, nil
}

// AddEntry resolves the query through the external search, normalizes
// the result and appends it to the log, then recomputes. The external
// call happens before the log lock is taken: a slow lookup must not
// block other edits, and a failed lookup or normalization leaves the
// log untouched.
func (s *LogService) AddEntry(ctx context.Context, userID, logID uint, query string) (*LogDetail, error) {
	log, err := s.ownedLog(userID, logID)
	if err != nil {
		return nil, err
	}

	raw, err := s.food.NaturalSearch(ctx, query)
	if err != nil {
		return nil, err
	}
	entry, err := NormalizeFood(raw)
	if err != nil {
		return nil, err
	}
	entry.LogID = log.ID

	l := s.lockFor(log.ID)
	l.Lock()
	defer l.Unlock()
	if err := s.store.AppendEntry(&entry); err != nil {
		return nil, err
	}
	return s.detail(log)
}

// EntryPatch carries the optional field updates of an entry edit.
type EntryPatch struct {
	Name     *string  `json:"name"`
	Quantity *float64 `json:"quantity"`
	Calories *float64 `json:"calories"`
	Fat      *float64 `json:"fat"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
}

func (p EntryPatch) validate() error {
	for field, v := range map[string]*float64{
		"quantity": p.Quantity,
		"calories": p.Calories,
		"fat":      p.Fat,
		"protein":  p.Protein,
		"carbs":    p.Carbs,
	} {
		if v != nil && (*v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: field %s out of range: %v", ErrNormalization, field, *v)
		}
	}
	return nil
}

// PatchEntry applies the given field updates to exactly one entry and
// recomputes over the updated set. Patched values follow the same
// rounding policy as normalization.
func (s *LogService) PatchEntry(userID, entryID uint, patch EntryPatch) (*LogDetail, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	entry, err := s.store.GetEntry(entryID)
	if err != nil {
		return nil, err
	}
	log, err := s.ownedLog(userID, entry.LogID)
	if err != nil {
		return nil, err
	}

	l := s.lockFor(log.ID)
	l.Lock()
	defer l.Unlock()

	// re-read under the lock so a concurrent edit cannot be overwritten
	entry, err = s.store.GetEntry(entryID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil && *patch.Name != "" {
		entry.Name = *patch.Name
	}
	if patch.Quantity != nil {
		entry.Quantity = *patch.Quantity
	}
	if patch.Calories != nil {
		entry.Calories = math.Round(*patch.Calories)
	}
	if patch.Fat != nil {
		entry.Fat = round1(*patch.Fat)
	}
	if patch.Protein != nil {
		entry.Protein = round1(*patch.Protein)
	}
	if patch.Carbs != nil {
		entry.Carbs = round1(*patch.Carbs)
	}
	if err := s.store.UpdateEntry(entry); err != nil {
		return nil, err
	}
	return s.detail(log)
}

// DeleteEntry removes exactly one entry and recomputes. Deleting an
// already-deleted entry fails with ErrNotFound rather than silently
// succeeding with stale data.
func (s *LogService) DeleteEntry(userID, entryID uint) (*LogDetail, error) {
	entry, err := s.store.GetEntry(entryID)
	if err != nil {
		return nil, err
	}
	log, err := s.ownedLog(userID, entry.LogID)
	if err != nil {
		return nil, err
	}

	l := s.lockFor(log.ID)
	l.Lock()
	defer l.Unlock()
	if err := s.store.RemoveEntry(entryID); err != nil {
		return nil, err
	}
	return s.detail(log)
}

// DeleteLog removes a log and all of its entries.
func (s *LogService) DeleteLog(userID, logID uint) error {
	log, err := s.ownedLog(userID, logID)
	if err != nil {
		return err
	}
	l := s.lockFor(log.ID)
	l.Lock()
	defer l.Unlock()
	return s.store.DeleteLog(log.ID)
}

// DailyProgress compares the calories consumed today against a target
// (the user's maintenance calories). Percent is clamped to 1 for
// display.
type DailyProgress struct {
	Date     string  `json:"date"`
	Consumed float64 `json:"consumed"`
	Target   float64 `json:"target"`
	Percent  float64 `json:"percent"`
}

func (s *LogService) GetDailyProgress(userID uint, target float64, now time.Time) (*DailyProgress, error) {
	date := now.Format(dateLayout)
	progress := &DailyProgress{Date: date, Target: target}

	log, err := s.store.FindLog(userID, date)
	if errors.Is(err, ErrNotFound) {
		return progress, nil
	}
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListEntries(log.ID)
	if err != nil {
		return nil, err
	}
	total, _ := ComputeSummary(entries)
	progress.Consumed = total.Calories
	if target > 0 {
		progress.Percent = total.Calories / target
		if progress.Percent > 1 {
			progress.Percent = 1
		}
	}
	return progress, nil
}
