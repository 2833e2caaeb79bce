package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"timesheet/internal/access"
	"timesheet/internal/domain"
	"timesheet/internal/ports"
)

// Timesheet coordinates the entry, config and access stores. Every method
// takes the acting user and checks access before touching data.
type Timesheet struct {
	Log        *slog.Logger
	Entries    ports.EntryStore
	Configs    ports.UserConfigStore
	Holidays   ports.HolidayProvider
	Directory  ports.GroupDirectory
	Rules      ports.AccessRuleStore
	AdminGroup string
	Now        func() time.Time
}

func (uc *Timesheet) ready() error {
	if uc.Entries == nil || uc.Configs == nil || uc.Directory == nil || uc.Rules == nil {
		return errors.New("usecase not initialized: missing dependencies")
	}
	return nil
}

func (uc *Timesheet) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

func (uc *Timesheet) today() string { return uc.now().Format(domain.DateLayout) }

func (uc *Timesheet) resolver(ctx context.Context) (*access.Resolver, error) {
	cfg, err := uc.Rules.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load access rules: %w", err)
	}
	return access.NewResolver(access.EffectiveRules(ctx, uc.Directory, cfg), uc.Directory, uc.Log), nil
}

// authorize returns the effective target and an error when actor may not
// act on it. An empty target means the actor.
func (uc *Timesheet) authorize(ctx context.Context, actor, target string) (string, error) {
	if err := uc.ready(); err != nil {
		return "", err
	}
	if actor == "" {
		return "", domain.ErrUnauthenticated
	}
	if target == "" || target == actor {
		return actor, nil
	}
	r, err := uc.resolver(ctx)
	if err != nil {
		uc.Log.Warn("access check failed", slog.String("actor", actor), slog.Any("err", err))
		return "", domain.ErrAccessDenied
	}
	if !r.CanAccess(ctx, actor, target) {
		return "", domain.ErrAccessDenied
	}
	return target, nil
}

func (uc *Timesheet) requireAdmin(ctx context.Context, actor string) error {
	if err := uc.ready(); err != nil {
		return err
	}
	if actor == "" {
		return domain.ErrUnauthenticated
	}
	ok, err := uc.Directory.IsMember(ctx, actor, uc.AdminGroup)
	if err != nil {
		uc.Log.Warn("admin check failed", slog.String("actor", actor), slog.Any("err", err))
		return domain.ErrAccessDenied
	}
	if !ok {
		return domain.ErrAccessDenied
	}
	return nil
}

// Me describes the acting user for the UI.
type Me struct {
	UserID        string
	Name          string
	IsHR          bool
	IsAdmin       bool
	AllowedGroups []string
}

func (uc *Timesheet) Me(ctx context.Context, actor string) (Me, error) {
	if _, err := uc.authorize(ctx, actor, ""); err != nil {
		return Me{}, err
	}
	me := Me{UserID: actor, Name: actor}
	if n, err := uc.Directory.DisplayName(ctx, actor); err == nil && n != "" {
		me.Name = n
	}
	me.IsAdmin = uc.requireAdmin(ctx, actor) == nil
	r, err := uc.resolver(ctx)
	if err != nil {
		uc.Log.Warn("access rules unavailable", slog.Any("err", err))
		return me, nil
	}
	me.IsHR = r.IsHR(ctx, actor)
	me.AllowedGroups = r.AllowedEmployeeGroups(ctx, actor)
	return me, nil
}

func (uc *Timesheet) userConfig(ctx context.Context, userID string) (*domain.UserConfig, error) {
	cfg, err := uc.Configs.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user config: %w", err)
	}
	return cfg, nil
}

// holidays merges the holidays of the given years. Provider failures
// degrade to no holidays.
func (uc *Timesheet) holidays(ctx context.Context, region string, years ...int) domain.HolidayMap {
	out := domain.HolidayMap{}
	if region == "" || uc.Holidays == nil {
		return out
	}
	seen := map[int]bool{}
	for _, y := range years {
		if seen[y] {
			continue
		}
		seen[y] = true
		m, err := uc.Holidays.Holidays(ctx, y, region)
		if err != nil {
			uc.Log.Warn("holiday lookup failed", slog.Int("year", y), slog.String("region", region), slog.Any("err", err))
			continue
		}
		for d, n := range m {
			out[d] = n
		}
	}
	return out
}

// LookupHolidays exposes the provider lookup to the API, degrading like the
// internal lookup does.
func (uc *Timesheet) LookupHolidays(ctx context.Context, year int, region string) domain.HolidayMap {
	return uc.holidays(ctx, region, year)
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", domain.ErrValidation, s)
	}
	return d, nil
}

func parseMonth(s string) (time.Time, error) {
	m, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month %q is not YYYY-MM", domain.ErrValidation, s)
	}
	return m, nil
}

func monthBounds(first time.Time) (string, string) {
	last := first.AddDate(0, 1, -1)
	return first.Format(domain.DateLayout), last.Format(domain.DateLayout)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
