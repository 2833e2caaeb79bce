package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"timesheet/internal/domain"
)

// UserSettings is the stored config as shown to the UI; nil means not set.
type UserSettings struct {
	DailyMin *int
	State    *string
}

func (uc *Timesheet) GetUserConfig(ctx context.Context, actor, target string) (UserSettings, error) {
	uid, err := uc.authorize(ctx, actor, target)
	if err != nil {
		return UserSettings{}, err
	}
	cfg, err := uc.userConfig(ctx, uid)
	if err != nil || cfg == nil {
		return UserSettings{}, err
	}
	return UserSettings{DailyMin: cfg.DailyTargetMinutes, State: cfg.Region}, nil
}

// SetUserConfig stores a daily target in [0, 1440] and a region. An empty
// region clears it.
func (uc *Timesheet) SetUserConfig(ctx context.Context, actor, target string, dailyMin int, state string) (UserSettings, error) {
	uid, err := uc.authorize(ctx, actor, target)
	if err != nil {
		return UserSettings{}, err
	}
	if dailyMin < 0 || dailyMin > 1440 {
		return UserSettings{}, fmt.Errorf("%w: dailyMin must be between 0 and 1440", domain.ErrValidation)
	}
	cfg := domain.UserConfig{UserID: uid, DailyTargetMinutes: &dailyMin}
	if s := strings.TrimSpace(state); s != "" {
		cfg.Region = &s
	}
	if err := uc.Configs.Set(ctx, cfg); err != nil {
		return UserSettings{}, fmt.Errorf("save user config: %w", err)
	}
	uc.Log.Info("user config saved", slog.String("actor", actor), slog.String("user", uid), slog.Int("daily_min", dailyMin))
	return UserSettings{DailyMin: cfg.DailyTargetMinutes, State: cfg.Region}, nil
}
