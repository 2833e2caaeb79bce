package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"timesheet/internal/domain"
)

// EntryStore implements ports.EntryStore on <prefix>ts_entries.
type EntryStore struct {
	c *Client
}

const entryColumns = "id, user_id, DATE_FORMAT(work_date, '%Y-%m-%d'), start_min, end_min, break_minutes, comment, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (domain.TimeEntry, error) {
	var (
		e                domain.TimeEntry
		start, end       sql.NullInt64
		comment          sql.NullString
		created, updated int64
	)
	if err := s.Scan(&e.ID, &e.UserID, &e.WorkDate, &start, &end, &e.BreakMinutes, &comment, &created, &updated); err != nil {
		return domain.TimeEntry{}, err
	}
	e.StartMinute = intPtr(start)
	e.EndMinute = intPtr(end)
	e.Comment = stringPtr(comment)
	e.CreatedAt = time.Unix(created, 0).UTC()
	e.UpdatedAt = time.Unix(updated, 0).UTC()
	return e, nil
}

func (s *EntryStore) FindByUserAndRange(ctx context.Context, userID, from, to string) ([]domain.TimeEntry, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s
WHERE user_id = ? AND work_date >= ? AND work_date <= ?
ORDER BY work_date DESC, start_min DESC`, entryColumns, s.c.table("ts_entries"))
	rows, err := s.c.db.QueryContext(ctx, q, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *EntryStore) FindByUserAndDate(ctx context.Context, userID, date string) (*domain.TimeEntry, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE user_id = ? AND work_date = ? LIMIT 1", entryColumns, s.c.table("ts_entries"))
	e, err := scanEntry(s.c.db.QueryRowContext(ctx, q, userID, date))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EntryStore) FindByID(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", entryColumns, s.c.table("ts_entries"))
	e, err := scanEntry(s.c.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Upsert writes on the (user_id, work_date) key; concurrent writers to the
// same day resolve last-write-wins.
func (s *EntryStore) Upsert(ctx context.Context, e domain.TimeEntry) (domain.TimeEntry, error) {
	tx, err := s.c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return domain.TimeEntry{}, err
	}
	now := time.Now().Unix()
	q := fmt.Sprintf(`
INSERT INTO %s
  (user_id, work_date, start_min, end_min, break_minutes, comment, created_at, updated_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  start_min=VALUES(start_min),
  end_min=VALUES(end_min),
  break_minutes=VALUES(break_minutes),
  comment=VALUES(comment),
  updated_at=VALUES(updated_at);
`, s.c.table("ts_entries"))
	if _, err := tx.ExecContext(ctx, q,
		e.UserID,
		e.WorkDate,
		nullInt(e.StartMinute),
		nullInt(e.EndMinute),
		e.BreakMinutes,
		nullString(e.Comment),
		now,
		now,
	); err != nil {
		tx.Rollback()
		return domain.TimeEntry{}, err
	}
	sel := fmt.Sprintf("SELECT %s FROM %s WHERE user_id = ? AND work_date = ?", entryColumns, s.c.table("ts_entries"))
	stored, err := scanEntry(tx.QueryRowContext(ctx, sel, e.UserID, e.WorkDate))
	if err != nil {
		tx.Rollback()
		return domain.TimeEntry{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.TimeEntry{}, err
	}
	s.c.log.Debug("mysql upserted entry", slog.Int64("id", stored.ID), slog.String("user", stored.UserID), slog.String("date", stored.WorkDate))
	return stored, nil
}

func (s *EntryStore) Delete(ctx context.Context, id int64) error {
	res, err := s.c.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.c.table("ts_entries")), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *EntryStore) AggregateOvertime(ctx context.Context, userID string) (*domain.OvertimeAggregate, error) {
	q := fmt.Sprintf(`SELECT
  DATE_FORMAT(MIN(work_date), '%%Y-%%m-%%d'),
  DATE_FORMAT(MAX(work_date), '%%Y-%%m-%%d'),
  COALESCE(SUM(CASE WHEN start_min IS NULL OR end_min IS NULL THEN 0 ELSE GREATEST(0, end_min - start_min - break_minutes) END), 0),
  COALESCE(SUM(CASE WHEN start_min IS NULL OR end_min IS NULL THEN 0 ELSE 1 END), 0)
FROM %s WHERE user_id = ?`, s.c.table("ts_entries"))
	var (
		first, last   sql.NullString
		minutes, days int64
	)
	if err := s.c.db.QueryRowContext(ctx, q, userID).Scan(&first, &last, &minutes, &days); err != nil {
		return nil, err
	}
	if !first.Valid {
		return nil, nil
	}
	return &domain.OvertimeAggregate{
		WorkedMinutes: int(minutes),
		WorkedDays:    int(days),
		FirstDate:     first.String,
		LastDate:      last.String,
	}, nil
}

func (s *EntryStore) LastEntryDate(ctx context.Context, userID, from, to string) (string, error) {
	q := fmt.Sprintf("SELECT DATE_FORMAT(MAX(work_date), '%%Y-%%m-%%d') FROM %s WHERE user_id = ? AND work_date >= ? AND work_date <= ?", s.c.table("ts_entries"))
	var last sql.NullString
	if err := s.c.db.QueryRowContext(ctx, q, userID, from, to).Scan(&last); err != nil {
		return "", err
	}
	return last.String, nil
}
