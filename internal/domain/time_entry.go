package domain

import "time"

// DateLayout is the calendar-date form used for work dates everywhere.
const DateLayout = "2006-01-02"

// TimeEntry is one user's record for one calendar day.
// StartMinute and EndMinute are minutes since midnight; both are nil for a
// comment-only day.
type TimeEntry struct {
	ID           int64
	UserID       string
	WorkDate     string
	StartMinute  *int
	EndMinute    *int
	BreakMinutes int
	Comment      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Timed reports whether the entry carries a full start/end pair.
func (e TimeEntry) Timed() bool {
	return e.StartMinute != nil && e.EndMinute != nil
}

// CommentText returns the comment or "" when none is stored.
func (e TimeEntry) CommentText() string {
	if e.Comment == nil {
		return ""
	}
	return *e.Comment
}

// OvertimeAggregate is the all-time totals of a user's timed entries.
type OvertimeAggregate struct {
	WorkedMinutes int
	WorkedDays    int
	FirstDate     string
	LastDate      string
}
