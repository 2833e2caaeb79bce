// Package lifecycle decides what a save request does to the stored record
// of one day: write it, delete it, or leave it alone.
package lifecycle

import (
	"fmt"
	"strings"

	"timesheet/internal/domain"
	"timesheet/internal/timerules"
)

type State string

const (
	StateEmpty       State = "empty"
	StateTimed       State = "timed"
	StateCommentOnly State = "comment-only"
)

// StateOf classifies a stored record; nil is Empty.
func StateOf(e *domain.TimeEntry) State {
	switch {
	case e == nil:
		return StateEmpty
	case e.Timed():
		return StateTimed
	default:
		return StateCommentOnly
	}
}

type Action int

const (
	ActionNone Action = iota
	ActionUpsert
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionUpsert:
		return "upsert"
	case ActionDelete:
		return "delete"
	default:
		return "none"
	}
}

// Proposal is the raw form input for one day.
type Proposal struct {
	Start   string
	End     string
	Break   string
	Comment string
}

// Decision is the outcome of Decide. Entry is the record to write for
// ActionUpsert, the record to remove for ActionDelete and the current
// record otherwise.
type Decision struct {
	Action Action
	State  State
	Entry  domain.TimeEntry
}

// Unchanged reports a skipped write against an existing record.
func (d Decision) Unchanged() bool {
	return d.Action == ActionNone && d.State != StateEmpty
}

// Decide applies the proposal to current, which may be nil. Rejections
// wrap domain.ErrValidation and leave current untouched.
func Decide(current *domain.TimeEntry, userID, workDate string, p Proposal) (Decision, error) {
	comment := strings.TrimSpace(p.Comment)
	start := strings.TrimSpace(p.Start)
	end := strings.TrimSpace(p.End)

	next := domain.TimeEntry{UserID: userID, WorkDate: workDate}
	if current != nil {
		next.ID = current.ID
		next.CreatedAt = current.CreatedAt
	}
	if comment != "" {
		next.Comment = &comment
	}

	switch {
	case start == "" && end == "" && comment == "":
		if current == nil {
			return Decision{Action: ActionNone, State: StateEmpty}, nil
		}
		return Decision{Action: ActionDelete, State: StateEmpty, Entry: *current}, nil

	case start == "" && end == "":
		if current != nil && same(*current, next) {
			return Decision{Action: ActionNone, State: StateCommentOnly, Entry: *current}, nil
		}
		return Decision{Action: ActionUpsert, State: StateCommentOnly, Entry: next}, nil

	case start == "" || end == "":
		return Decision{}, domain.ErrTimeIncomplete
	}

	s, err := timerules.ParseClock(start)
	if err != nil {
		return Decision{}, fmt.Errorf("start: %w", err)
	}
	e, err := timerules.ParseClock(end)
	if err != nil {
		return Decision{}, fmt.Errorf("end: %w", err)
	}
	brk, err := timerules.ParseBreak(p.Break)
	if err != nil {
		return Decision{}, err
	}
	if brk < 0 {
		return Decision{}, fmt.Errorf("%w: break must not be negative", domain.ErrInvalidBreak)
	}
	next.StartMinute = &s
	next.EndMinute = &e
	next.BreakMinutes = brk

	if current != nil && same(*current, next) {
		return Decision{Action: ActionNone, State: StateTimed, Entry: *current}, nil
	}
	return Decision{Action: ActionUpsert, State: StateTimed, Entry: next}, nil
}

// same compares the persisted fields of a day.
func same(a, b domain.TimeEntry) bool {
	return eqInt(a.StartMinute, b.StartMinute) &&
		eqInt(a.EndMinute, b.EndMinute) &&
		a.BreakMinutes == b.BreakMinutes &&
		a.CommentText() == b.CommentText()
}

func eqInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
