package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"timesheet/internal/domain"
)

// UserConfigStore implements ports.UserConfigStore on <prefix>ts_user_config.
type UserConfigStore struct {
	c *Client
}

func (s *UserConfigStore) Get(ctx context.Context, userID string) (*domain.UserConfig, error) {
	q := fmt.Sprintf("SELECT work_minutes, state FROM %s WHERE user_id = ?", s.c.table("ts_user_config"))
	var (
		minutes sql.NullInt64
		state   sql.NullString
	)
	err := s.c.db.QueryRowContext(ctx, q, userID).Scan(&minutes, &state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.UserConfig{UserID: userID, DailyTargetMinutes: intPtr(minutes), Region: stringPtr(state)}, nil
}

func (s *UserConfigStore) Set(ctx context.Context, cfg domain.UserConfig) error {
	q := fmt.Sprintf(`
INSERT INTO %s (user_id, work_minutes, state)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  work_minutes=VALUES(work_minutes),
  state=VALUES(state);
`, s.c.table("ts_user_config"))
	_, err := s.c.db.ExecContext(ctx, q, cfg.UserID, nullInt(cfg.DailyTargetMinutes), nullString(cfg.Region))
	return err
}
