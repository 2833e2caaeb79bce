package domain

import "strings"

// DefaultDailyTargetMinutes applies when a user has no configured target.
const DefaultDailyTargetMinutes = 480

// UserConfig holds the per-user working-time settings. Nil fields mean
// "not configured".
type UserConfig struct {
	UserID             string
	DailyTargetMinutes *int
	Region             *string
}

// DailyTarget is nil-safe and falls back to the default target.
func (c *UserConfig) DailyTarget() int {
	if c == nil || c.DailyTargetMinutes == nil {
		return DefaultDailyTargetMinutes
	}
	return *c.DailyTargetMinutes
}

// RegionCode returns the trimmed region or "".
func (c *UserConfig) RegionCode() string {
	if c == nil || c.Region == nil {
		return ""
	}
	return strings.TrimSpace(*c.Region)
}
