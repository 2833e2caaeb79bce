package ports

import (
	"context"

	"timesheet/internal/domain"
)

// EntryStore persists time entries. Dates are YYYY-MM-DD and ranges are
// inclusive.
type EntryStore interface {
	FindByUserAndRange(ctx context.Context, userID, from, to string) ([]domain.TimeEntry, error)
	// FindByUserAndDate returns nil when the day has no record.
	FindByUserAndDate(ctx context.Context, userID, date string) (*domain.TimeEntry, error)
	// FindByID returns domain.ErrNotFound when absent.
	FindByID(ctx context.Context, id int64) (*domain.TimeEntry, error)
	// Upsert writes the record for (UserID, WorkDate) and returns it as stored.
	Upsert(ctx context.Context, e domain.TimeEntry) (domain.TimeEntry, error)
	Delete(ctx context.Context, id int64) error
	// AggregateOvertime returns nil when the user has no entries.
	AggregateOvertime(ctx context.Context, userID string) (*domain.OvertimeAggregate, error)
	// LastEntryDate returns "" when nothing falls inside the window.
	LastEntryDate(ctx context.Context, userID, from, to string) (string, error)
}

// UserConfigStore holds per-user targets and regions.
type UserConfigStore interface {
	// Get returns nil when the user has no stored config.
	Get(ctx context.Context, userID string) (*domain.UserConfig, error)
	Set(ctx context.Context, cfg domain.UserConfig) error
}

// HolidayProvider returns the holidays of one region and year. Failures are
// reported as domain.ErrUpstreamUnavailable.
type HolidayProvider interface {
	Holidays(ctx context.Context, year int, region string) (domain.HolidayMap, error)
}

// GroupDirectory is the host platform's group and user directory.
type GroupDirectory interface {
	IsMember(ctx context.Context, userID, group string) (bool, error)
	MembersOf(ctx context.Context, group string) ([]string, error)
	DisplayName(ctx context.Context, userID string) (string, error)
	GroupExists(ctx context.Context, group string) (bool, error)
	ListGroups(ctx context.Context) ([]string, error)
}

// AccessRuleStore loads and saves the HR access configuration.
type AccessRuleStore interface {
	Load(ctx context.Context) (domain.AccessConfig, error)
	Save(ctx context.Context, cfg domain.AccessConfig) error
}
