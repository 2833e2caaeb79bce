package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Directory implements ports.GroupDirectory on the host's user and group
// tables.
type Directory struct {
	c *Client
}

func (d *Directory) IsMember(ctx context.Context, userID, group string) (bool, error) {
	q := fmt.Sprintf("SELECT 1 FROM %s WHERE uid = ? AND gid = ? LIMIT 1", d.c.table("group_user"))
	var one int
	err := d.c.db.QueryRowContext(ctx, q, userID, group).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (d *Directory) MembersOf(ctx context.Context, group string) ([]string, error) {
	return d.strings(ctx, fmt.Sprintf("SELECT uid FROM %s WHERE gid = ? ORDER BY uid", d.c.table("group_user")), group)
}

// DisplayName falls back to the uid when no name is stored.
func (d *Directory) DisplayName(ctx context.Context, userID string) (string, error) {
	q := fmt.Sprintf("SELECT displayname FROM %s WHERE uid = ?", d.c.table("users"))
	var name sql.NullString
	err := d.c.db.QueryRowContext(ctx, q, userID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return userID, nil
	}
	if err != nil {
		return "", err
	}
	if !name.Valid || name.String == "" {
		return userID, nil
	}
	return name.String, nil
}

func (d *Directory) GroupExists(ctx context.Context, group string) (bool, error) {
	q := fmt.Sprintf("SELECT 1 FROM %s WHERE gid = ? LIMIT 1", d.c.table("groups"))
	var one int
	err := d.c.db.QueryRowContext(ctx, q, group).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (d *Directory) ListGroups(ctx context.Context) ([]string, error) {
	return d.strings(ctx, fmt.Sprintf("SELECT gid FROM %s ORDER BY gid", d.c.table("groups")))
}

func (d *Directory) strings(ctx context.Context, q string, args ...any) ([]string, error) {
	rows, err := d.c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
