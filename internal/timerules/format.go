package timerules

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"timesheet/internal/domain"
)

// Placeholder is shown for an undefined value.
const Placeholder = "--:--"

// FormatHM renders signed minutes as "HH:MM" or "-HH:MM".
func FormatHM(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// FormatOptionalHM renders nil as Placeholder.
func FormatOptionalHM(minutes *int) string {
	if minutes == nil {
		return Placeholder
	}
	return FormatHM(*minutes)
}

var hmPattern = regexp.MustCompile(`^(-?)(\d+):(\d{2})$`)

// ParseHM is the inverse of FormatHM.
func ParseHM(s string) (int, bool) {
	m := hmPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	h, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	mm, _ := strconv.Atoi(m[3])
	if mm > 59 {
		return 0, false
	}
	v := h*60 + mm
	if m[1] == "-" {
		v = -v
	}
	return v, true
}

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseClock parses a wall-clock "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: time %q is not HH:MM", domain.ErrValidation, s)
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if h > 23 || mm > 59 {
		return 0, fmt.Errorf("%w: time %q out of range", domain.ErrValidation, s)
	}
	return h*60 + mm, nil
}

var (
	breakMinutesPattern = regexp.MustCompile(`^\d+$`)
	breakHMPattern      = regexp.MustCompile(`^(\d+)\s*:\s*([0-5]\d)$`)
)

// errBreakSyntax is wrapped so callers can match domain.ErrInvalidBreak.
var errBreakSyntax = errors.New("expected minutes or H:MM")

// ParseBreak accepts plain minutes ("30"), "H:MM" or a signed form of
// either. Empty input is zero. The result may be negative; rejecting
// negative breaks is the caller's decision.
func ParseBreak(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	sign := 1
	switch s[0] {
	case '-':
		sign = -1
		s = strings.TrimSpace(s[1:])
	case '+':
		s = strings.TrimSpace(s[1:])
	}
	if s == "" {
		return 0, nil
	}
	if breakMinutesPattern.MatchString(s) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", domain.ErrInvalidBreak, raw, err)
		}
		return sign * v, nil
	}
	m := breakHMPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q: %v", domain.ErrInvalidBreak, raw, errBreakSyntax)
	}
	h, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", domain.ErrInvalidBreak, raw, err)
	}
	mm, _ := strconv.Atoi(m[2])
	return sign * (h*60 + mm), nil
}
