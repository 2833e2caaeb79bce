// Package holiday provides public holidays for German states, fetched from
// api-feiertage.de and cached on disk per year and state.
package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/singleflight"

	"timesheet/internal/domain"
)

// DefaultTTL is roughly six months.
const DefaultTTL = 4380 * time.Hour

// Fetcher loads the holidays of one normalized state code.
type Fetcher interface {
	Fetch(ctx context.Context, year int, code string) (domain.HolidayMap, error)
}

// Cache implements ports.HolidayProvider.
type Cache struct {
	dir   string
	ttl   time.Duration
	fetch Fetcher
	log   *slog.Logger
	group singleflight.Group
	now   func() time.Time
}

func NewCache(dir string, ttl time.Duration, fetch Fetcher, log *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{dir: dir, ttl: ttl, fetch: fetch, log: log, now: time.Now}
}

// Holidays returns an empty map for an empty or unknown region without
// calling upstream. Fetch failures wrap domain.ErrUpstreamUnavailable.
func (c *Cache) Holidays(ctx context.Context, year int, region string) (domain.HolidayMap, error) {
	code := NormalizeRegion(region)
	if code == "" {
		if region != "" {
			c.log.Debug("unknown holiday region", slog.String("region", region))
		}
		return domain.HolidayMap{}, nil
	}
	key := fmt.Sprintf("%d_%s", year, code)
	if m, ok := c.read(key); ok {
		return m, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if m, ok := c.read(key); ok {
			return m, nil
		}
		m, err := c.fetch.Fetch(ctx, year, code)
		if err != nil {
			return nil, err
		}
		if err := c.write(key, m); err != nil {
			c.log.Warn("holiday cache write failed", slog.String("key", key), slog.Any("err", err))
		}
		return m, nil
	})
	if err != nil {
		c.log.Warn("holiday fetch failed", slog.Int("year", year), slog.String("region", code), slog.Any("err", err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return clone(v.(domain.HolidayMap)), nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// read drops expired or unreadable files.
func (c *Cache) read(key string) (domain.HolidayMap, bool) {
	p := c.path(key)
	info, err := os.Stat(p)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.log.Warn("holiday cache stat failed", slog.String("path", p), slog.Any("err", err))
		}
		return nil, false
	}
	if c.now().Sub(info.ModTime()) >= c.ttl {
		_ = os.Remove(p)
		return nil, false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	var m domain.HolidayMap
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		c.log.Warn("holiday cache corrupt, refetching", slog.String("path", p))
		_ = os.Remove(p)
		return nil, false
	}
	return m, true
}

func (c *Cache) write(key string, m domain.HolidayMap) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp := c.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path(key))
}

func clone(m domain.HolidayMap) domain.HolidayMap {
	out := make(domain.HolidayMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
