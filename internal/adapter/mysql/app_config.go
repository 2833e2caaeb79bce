package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"timesheet/internal/access"
	"timesheet/internal/domain"
)

const appID = "timesheet"

// Keys in the host app config.
const (
	keyAccessRules = "hr_access_rules"
	keyHRGroups    = "hr_groups"
	keyUserGroups  = "hr_user_groups"
)

// AccessRuleStore implements ports.AccessRuleStore on the host's
// <prefix>appconfig table. Legacy formats are migrated on read.
type AccessRuleStore struct {
	c *Client
}

func (s *AccessRuleStore) values(ctx context.Context) (map[string]string, error) {
	q := fmt.Sprintf("SELECT configkey, configvalue FROM %s WHERE appid = ? AND configkey IN (?, ?, ?)", s.c.table("appconfig"))
	rows, err := s.c.db.QueryContext(ctx, q, appID, keyAccessRules, keyHRGroups, keyUserGroups)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var k string
		var v sql.NullString
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v.String
	}
	return out, rows.Err()
}

func (s *AccessRuleStore) Load(ctx context.Context) (domain.AccessConfig, error) {
	vals, err := s.values(ctx)
	if err != nil {
		return domain.AccessConfig{}, err
	}
	return domain.AccessConfig{
		Rules:                access.DecodeRules(vals[keyAccessRules]),
		LegacyHRGroups:       access.DecodeGroupList(vals[keyHRGroups]),
		LegacyEmployeeGroups: access.DecodeGroupList(vals[keyUserGroups]),
	}, nil
}

// Save writes all three keys in one transaction.
func (s *AccessRuleStore) Save(ctx context.Context, cfg domain.AccessConfig) error {
	rules, err := access.EncodeRules(cfg.Rules)
	if err != nil {
		return err
	}
	hr, err := access.EncodeGroupList(cfg.LegacyHRGroups)
	if err != nil {
		return err
	}
	users, err := access.EncodeGroupList(cfg.LegacyEmployeeGroups)
	if err != nil {
		return err
	}

	tx, err := s.c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`
INSERT INTO %s (appid, configkey, configvalue)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE configvalue=VALUES(configvalue);
`, s.c.table("appconfig"))
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, kv := range [][2]string{{keyAccessRules, rules}, {keyHRGroups, hr}, {keyUserGroups, users}} {
		if _, err := stmt.ExecContext(ctx, appID, kv[0], kv[1]); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.c.log.Info("mysql saved access rules", slog.Int("rules", len(cfg.Rules)))
	return nil
}
