package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"timesheet/internal/domain"
	"timesheet/internal/lifecycle"
	"timesheet/internal/timerules"
)

// SaveInput is the form data for one day.
type SaveInput struct {
	WorkDate string
	Start    string
	End      string
	Break    string
	Comment  string
}

type Outcome string

const (
	OutcomeSavedTimed   Outcome = "saved-timed"
	OutcomeSavedComment Outcome = "saved-comment"
	OutcomeDeleted      Outcome = "deleted"
	OutcomeUnchanged    Outcome = "unchanged"
	OutcomeNoop         Outcome = "noop"
)

// SaveResult carries the stored record after a save. On rejection Entry is
// the previously stored record, if any.
type SaveResult struct {
	Outcome    Outcome
	Entry      *domain.TimeEntry
	Evaluation timerules.Evaluation
}

// List returns target's entries in [from, to], newest first. Empty bounds
// default to the current month.
func (uc *Timesheet) List(ctx context.Context, actor, target, from, to string) ([]domain.TimeEntry, error) {
	uid, err := uc.authorize(ctx, actor, target)
	if err != nil {
		return nil, err
	}
	if from == "" || to == "" {
		now := uc.now()
		first, last := monthBounds(firstOfMonth(now))
		if from == "" {
			from = first
		}
		if to == "" {
			to = last
		}
	}
	if _, err := parseDate(from); err != nil {
		return nil, err
	}
	if _, err := parseDate(to); err != nil {
		return nil, err
	}
	entries, err := uc.Entries.FindByUserAndRange(ctx, uid, from, to)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Save applies one lifecycle transition for target's day.
func (uc *Timesheet) Save(ctx context.Context, actor, target string, in SaveInput) (SaveResult, error) {
	uid, err := uc.authorize(ctx, actor, target)
	if err != nil {
		return SaveResult{}, err
	}
	date := strings.TrimSpace(in.WorkDate)
	if _, err := parseDate(date); err != nil {
		return SaveResult{}, err
	}
	current, err := uc.Entries.FindByUserAndDate(ctx, uid, date)
	if err != nil {
		return SaveResult{}, fmt.Errorf("load entry: %w", err)
	}
	return uc.apply(ctx, actor, uid, date, current, in)
}

// Update is Save addressed by record id. The work date of a record cannot
// change.
func (uc *Timesheet) Update(ctx context.Context, actor string, id int64, in SaveInput) (SaveResult, error) {
	if err := uc.ready(); err != nil {
		return SaveResult{}, err
	}
	current, err := uc.Entries.FindByID(ctx, id)
	if err != nil {
		return SaveResult{}, err
	}
	uid, err := uc.authorize(ctx, actor, current.UserID)
	if err != nil {
		return SaveResult{}, err
	}
	date := strings.TrimSpace(in.WorkDate)
	if date != "" && date != current.WorkDate {
		return SaveResult{Entry: current}, fmt.Errorf("%w: work date cannot change", domain.ErrValidation)
	}
	return uc.apply(ctx, actor, uid, current.WorkDate, current, in)
}

func (uc *Timesheet) apply(ctx context.Context, actor, uid, date string, current *domain.TimeEntry, in SaveInput) (SaveResult, error) {
	d, err := lifecycle.Decide(current, uid, date, lifecycle.Proposal{
		Start:   in.Start,
		End:     in.End,
		Break:   in.Break,
		Comment: in.Comment,
	})
	if err != nil {
		return SaveResult{Entry: current}, err
	}

	res := SaveResult{}
	switch d.Action {
	case lifecycle.ActionDelete:
		if err := uc.Entries.Delete(ctx, d.Entry.ID); err != nil {
			return SaveResult{Entry: current}, fmt.Errorf("delete entry: %w", err)
		}
		uc.Log.Info("entry cleared", slog.String("actor", actor), slog.String("user", uid), slog.String("date", date))
		return SaveResult{Outcome: OutcomeDeleted}, nil
	case lifecycle.ActionUpsert:
		stored, err := uc.Entries.Upsert(ctx, d.Entry)
		if err != nil {
			return SaveResult{Entry: current}, fmt.Errorf("save entry: %w", err)
		}
		res.Entry = &stored
		res.Outcome = OutcomeSavedTimed
		if d.State == lifecycle.StateCommentOnly {
			res.Outcome = OutcomeSavedComment
		}
		uc.Log.Info("entry saved", slog.String("actor", actor), slog.String("user", uid), slog.String("date", date), slog.String("state", string(d.State)))
	default:
		if !d.Unchanged() {
			return SaveResult{Outcome: OutcomeNoop}, nil
		}
		res.Entry = current
		res.Outcome = OutcomeUnchanged
	}

	ev, err := uc.evaluate(ctx, uid, date, timerules.FromEntry(*res.Entry))
	if err != nil {
		return res, err
	}
	res.Evaluation = ev
	return res, nil
}

// Delete removes a record by id.
func (uc *Timesheet) Delete(ctx context.Context, actor string, id int64) error {
	if err := uc.ready(); err != nil {
		return err
	}
	e, err := uc.Entries.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := uc.authorize(ctx, actor, e.UserID); err != nil {
		return err
	}
	if err := uc.Entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	uc.Log.Info("entry deleted", slog.String("actor", actor), slog.String("user", e.UserID), slog.String("date", e.WorkDate))
	return nil
}

// Evaluate computes live feedback for unsaved input. Empty times are
// absent; malformed ones are rejected.
func (uc *Timesheet) Evaluate(ctx context.Context, actor, target string, in SaveInput) (timerules.Evaluation, error) {
	uid, err := uc.authorize(ctx, actor, target)
	if err != nil {
		return timerules.Evaluation{}, err
	}
	date := strings.TrimSpace(in.WorkDate)
	if date != "" {
		if _, err := parseDate(date); err != nil {
			return timerules.Evaluation{}, err
		}
	}
	var input timerules.Input
	if input.StartMinute, err = optionalClock(in.Start); err != nil {
		return timerules.Evaluation{}, err
	}
	if input.EndMinute, err = optionalClock(in.End); err != nil {
		return timerules.Evaluation{}, err
	}
	if input.BreakMinutes, err = timerules.ParseBreak(in.Break); err != nil {
		return timerules.Evaluation{}, err
	}
	return uc.evaluate(ctx, uid, date, input)
}

func (uc *Timesheet) evaluate(ctx context.Context, uid, date string, in timerules.Input) (timerules.Evaluation, error) {
	cfg, err := uc.userConfig(ctx, uid)
	if err != nil {
		return timerules.Evaluation{}, err
	}
	var holidays domain.HolidayMap
	if d, err := parseDate(date); err == nil {
		holidays = uc.holidays(ctx, cfg.RegionCode(), d.Year())
	}
	return timerules.Evaluate(in, date, cfg.DailyTarget(), holidays), nil
}

func optionalClock(s string) (*int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	m, err := timerules.ParseClock(s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
