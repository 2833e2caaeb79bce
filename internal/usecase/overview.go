package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"timesheet/internal/domain"
	"timesheet/internal/timerules"
)

const (
	staleEntryDays    = 14
	balanceLimit      = 600
	lastEntryLookback = 6
)

// HR issue labels.
const (
	IssueNoRecentEntry = "No entry for more than 14 days"
	IssueTooMuchPlus   = "Too much overtime"
	IssueTooMuchMinus  = "Too many negative hours"
)

// MonthSummary is the roll-up of one calendar month.
type MonthSummary struct {
	Month string
	From  string
	To    string
	timerules.Summary
}

// MonthSummary rolls up target's entries for month (YYYY-MM, empty means
// the current month).
func (uc *Timesheet) MonthSummary(ctx context.Context, actor, target, month string) (MonthSummary, error) {
	uid, err := uc.authorize(ctx, actor, target)
	if err != nil {
		return MonthSummary{}, err
	}
	first := firstOfMonth(uc.now())
	if month != "" {
		if first, err = parseMonth(month); err != nil {
			return MonthSummary{}, err
		}
	}
	from, to := monthBounds(first)
	entries, err := uc.Entries.FindByUserAndRange(ctx, uid, from, to)
	if err != nil {
		return MonthSummary{}, fmt.Errorf("list entries: %w", err)
	}
	cfg, err := uc.userConfig(ctx, uid)
	if err != nil {
		return MonthSummary{}, err
	}
	return MonthSummary{
		Month:   first.Format("2006-01"),
		From:    from,
		To:      to,
		Summary: timerules.Summarize(entries, cfg.DailyTarget()),
	}, nil
}

// OvertimeSummary is the running balance over a user's entire history.
type OvertimeSummary struct {
	From            string
	To              string
	WorkedMinutes   int
	WorkedDays      int
	DailyTarget     int
	OvertimeMinutes int
}

func (uc *Timesheet) OvertimeTotal(ctx context.Context, actor, target string) (OvertimeSummary, error) {
	uid, err := uc.authorize(ctx, actor, target)
	if err != nil {
		return OvertimeSummary{}, err
	}
	return uc.overtime(ctx, uid)
}

func (uc *Timesheet) overtime(ctx context.Context, uid string) (OvertimeSummary, error) {
	cfg, err := uc.userConfig(ctx, uid)
	if err != nil {
		return OvertimeSummary{}, err
	}
	agg, err := uc.Entries.AggregateOvertime(ctx, uid)
	if err != nil {
		return OvertimeSummary{}, fmt.Errorf("aggregate overtime: %w", err)
	}
	out := OvertimeSummary{DailyTarget: cfg.DailyTarget()}
	if agg == nil {
		out.From = uc.today()
		out.To = out.From
		return out, nil
	}
	out.From = agg.FirstDate
	out.To = agg.LastDate
	out.WorkedMinutes = agg.WorkedMinutes
	out.WorkedDays = agg.WorkedDays
	out.OvertimeMinutes = timerules.Overtime(agg.WorkedMinutes, agg.WorkedDays, out.DailyTarget)
	return out, nil
}

// HRUser is one row of the HR overview.
type HRUser struct {
	ID             string
	Name           string
	DailyTarget    int
	BalanceMinutes int
	LastEntry      string
	DaysSinceEntry *int
	MonthMinutes   int
	Issues         []string
}

// TeamStats sums the HR overview rows.
type TeamStats struct {
	MonthMinutes   int
	PlusMinutes    int
	PlusCount      int
	MinusMinutes   int
	MinusCount     int
	BalanceMinutes int
}

type HROverview struct {
	Month string
	Users []HRUser
	Stats TeamStats
}

// HRUsers lists every user the HR actor may access with balance and
// activity flags.
func (uc *Timesheet) HRUsers(ctx context.Context, actor string) (HROverview, error) {
	if err := uc.ready(); err != nil {
		return HROverview{}, err
	}
	if actor == "" {
		return HROverview{}, domain.ErrUnauthenticated
	}
	r, err := uc.resolver(ctx)
	if err != nil {
		uc.Log.Warn("access check failed", slog.String("actor", actor), slog.Any("err", err))
		return HROverview{}, domain.ErrAccessDenied
	}
	if !r.IsHR(ctx, actor) {
		return HROverview{}, domain.ErrAccessDenied
	}

	now := uc.now()
	today := now.Format(domain.DateLayout)
	lookback := now.AddDate(0, -lastEntryLookback, 0).Format(domain.DateLayout)
	first := firstOfMonth(now)
	monthFrom, monthTo := monthBounds(first)

	out := HROverview{Month: first.Format("2006-01"), Users: []HRUser{}}
	for _, u := range r.AccessibleUsers(ctx, actor) {
		row := HRUser{ID: u.ID, Name: u.Name}

		ot, err := uc.overtime(ctx, u.ID)
		if err != nil {
			return HROverview{}, err
		}
		row.DailyTarget = ot.DailyTarget
		row.BalanceMinutes = ot.OvertimeMinutes

		month, err := uc.Entries.FindByUserAndRange(ctx, u.ID, monthFrom, monthTo)
		if err != nil {
			return HROverview{}, fmt.Errorf("list entries: %w", err)
		}
		row.MonthMinutes = timerules.Summarize(month, row.DailyTarget).WorkedMinutes

		row.LastEntry, err = uc.Entries.LastEntryDate(ctx, u.ID, lookback, today)
		if err != nil {
			return HROverview{}, fmt.Errorf("last entry: %w", err)
		}
		if row.LastEntry != "" {
			days := daysBetween(row.LastEntry, today)
			row.DaysSinceEntry = &days
		}
		row.Issues = issues(row)

		out.Stats.add(row)
		out.Users = append(out.Users, row)
	}
	return out, nil
}

func issues(row HRUser) []string {
	out := []string{}
	if row.DaysSinceEntry == nil || *row.DaysSinceEntry >= staleEntryDays {
		out = append(out, IssueNoRecentEntry)
	}
	switch {
	case row.BalanceMinutes > balanceLimit:
		out = append(out, IssueTooMuchPlus)
	case row.BalanceMinutes < -balanceLimit:
		out = append(out, IssueTooMuchMinus)
	}
	return out
}

func (s *TeamStats) add(row HRUser) {
	s.MonthMinutes += row.MonthMinutes
	switch {
	case row.BalanceMinutes > 0:
		s.PlusMinutes += row.BalanceMinutes
		s.PlusCount++
	case row.BalanceMinutes < 0:
		s.MinusMinutes += row.BalanceMinutes
		s.MinusCount++
	}
	s.BalanceMinutes = s.PlusMinutes + s.MinusMinutes
}

// daysBetween counts whole calendar days from a to b, floored at zero.
func daysBetween(a, b string) int {
	da, errA := time.Parse(domain.DateLayout, a)
	db, errB := time.Parse(domain.DateLayout, b)
	if errA != nil || errB != nil {
		return 0
	}
	return max(0, int(math.Floor(db.Sub(da).Hours()/24)))
}
