package memory

import (
	"context"
	"fmt"
	"sync"

	"timesheet/internal/domain"
)

// Holidays implements ports.HolidayProvider over a fixed table keyed by
// region and year.
type Holidays struct {
	mu    sync.Mutex
	table map[string]domain.HolidayMap
	Calls int
	// Err, when set, fails every lookup with domain.ErrUpstreamUnavailable.
	Err error
}

func NewHolidays() *Holidays {
	return &Holidays{table: map[string]domain.HolidayMap{}}
}

func holidayKey(year int, region string) string { return fmt.Sprintf("%d_%s", year, region) }

// Add registers one holiday.
func (h *Holidays) Add(region, date, name string) *Holidays {
	h.mu.Lock()
	defer h.mu.Unlock()
	var year int
	fmt.Sscanf(date, "%4d", &year)
	k := holidayKey(year, region)
	if h.table[k] == nil {
		h.table[k] = domain.HolidayMap{}
	}
	h.table[k][date] = name
	return h
}

func (h *Holidays) Holidays(_ context.Context, year int, region string) (domain.HolidayMap, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Calls++
	if h.Err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, h.Err)
	}
	out := domain.HolidayMap{}
	for d, n := range h.table[holidayKey(year, region)] {
		out[d] = n
	}
	return out, nil
}
