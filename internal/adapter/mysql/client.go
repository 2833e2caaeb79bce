package mysql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"timesheet/internal/ports"
)

var (
	_ ports.EntryStore      = (*EntryStore)(nil)
	_ ports.UserConfigStore = (*UserConfigStore)(nil)
	_ ports.AccessRuleStore = (*AccessRuleStore)(nil)
	_ ports.GroupDirectory  = (*Directory)(nil)
)

// Client holds the connection shared by the stores in this package. All
// table names carry the host's table prefix.
type Client struct {
	db     *sql.DB
	log    *slog.Logger
	prefix string
}

// NewClient opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/dbname?multiStatements=true
func NewClient(ctx context.Context, dsn, prefix string, log *slog.Logger) (*Client, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	return &Client{db: db, log: log, prefix: prefix}, nil
}

func (c *Client) table(name string) string {
	return "`" + c.prefix + name + "`"
}

// Entries returns the entry store.
func (c *Client) Entries() *EntryStore { return &EntryStore{c: c} }

// UserConfigs returns the user config store.
func (c *Client) UserConfigs() *UserConfigStore { return &UserConfigStore{c: c} }

// AccessRules returns the access rule store backed by the host app config.
func (c *Client) AccessRules() *AccessRuleStore { return &AccessRuleStore{c: c} }

// Directory returns the host group directory.
func (c *Client) Directory() *Directory { return &Directory{c: c} }

// Ping checks the connection.
func (c *Client) Ping(ctx context.Context) error { return c.db.PingContext(ctx) }

// Close closes the underlying DB.
func (c *Client) Close() error { return c.db.Close() }

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
