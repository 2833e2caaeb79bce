// Package memory holds map-backed implementations of the ports, used by
// tests and local runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"timesheet/internal/domain"
	"timesheet/internal/timerules"
)

// EntryStore implements ports.EntryStore.
type EntryStore struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]domain.TimeEntry
	Writes  int
	Deletes int
	Now     func() time.Time
}

func NewEntryStore() *EntryStore {
	return &EntryStore{byID: map[int64]domain.TimeEntry{}, Now: time.Now}
}

func (s *EntryStore) FindByUserAndRange(_ context.Context, userID, from, to string) ([]domain.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.TimeEntry
	for _, e := range s.byID {
		if e.UserID == userID && e.WorkDate >= from && e.WorkDate <= to {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkDate > out[j].WorkDate })
	return out, nil
}

func (s *EntryStore) FindByUserAndDate(_ context.Context, userID, date string) (*domain.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.lookup(userID, date); ok {
		return &e, nil
	}
	return nil, nil
}

func (s *EntryStore) lookup(userID, date string) (domain.TimeEntry, bool) {
	for _, e := range s.byID {
		if e.UserID == userID && e.WorkDate == date {
			return e, true
		}
	}
	return domain.TimeEntry{}, false
}

func (s *EntryStore) FindByID(_ context.Context, id int64) (*domain.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (s *EntryStore) Upsert(_ context.Context, e domain.TimeEntry) (domain.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	if cur, ok := s.lookup(e.UserID, e.WorkDate); ok {
		e.ID = cur.ID
		e.CreatedAt = cur.CreatedAt
	} else {
		s.nextID++
		e.ID = s.nextID
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	s.byID[e.ID] = e
	s.Writes++
	return e, nil
}

func (s *EntryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.byID, id)
	s.Deletes++
	return nil
}

func (s *EntryStore) AggregateOvertime(_ context.Context, userID string) (*domain.OvertimeAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var agg *domain.OvertimeAggregate
	for _, e := range s.byID {
		if e.UserID != userID {
			continue
		}
		if agg == nil {
			agg = &domain.OvertimeAggregate{FirstDate: e.WorkDate, LastDate: e.WorkDate}
		}
		agg.FirstDate = min(agg.FirstDate, e.WorkDate)
		agg.LastDate = max(agg.LastDate, e.WorkDate)
		if d, ok := timerules.Duration(e.StartMinute, e.EndMinute, e.BreakMinutes); ok {
			agg.WorkedMinutes += d
			agg.WorkedDays++
		}
	}
	return agg, nil
}

func (s *EntryStore) LastEntryDate(_ context.Context, userID, from, to string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last := ""
	for _, e := range s.byID {
		if e.UserID == userID && e.WorkDate >= from && e.WorkDate <= to && e.WorkDate > last {
			last = e.WorkDate
		}
	}
	return last, nil
}
