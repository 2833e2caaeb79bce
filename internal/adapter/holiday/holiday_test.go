package holiday

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timesheet/internal/domain"
)

const feiertage2024 = `{
  "status": "success",
  "feiertage": [
    {"date": "2024-01-01", "fname": "Neujahr", "all_states": "1", "by": "1", "be": "1"},
    {"date": "2024-01-06", "fname": "Heilige Drei Könige", "all_states": "0", "by": "1", "be": "0"},
    {"date": "2024-03-08", "fname": "Internationaler Frauentag", "all_states": "0", "by": "0", "be": "1"},
    {"date": "2024-08-15", "by": "1", "be": "0"},
    {"date": "2024-10-31", "fname": "Reformationstag", "all_states": "0", "by": null}
  ]
}`

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("years") != "2024" || r.URL.Query().Get("states") != "by" {
			http.Error(w, "unexpected query "+r.URL.RawQuery, http.StatusBadRequest)
			return
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestNormalizeRegion(t *testing.T) {
	tests := map[string]string{
		"Bayern":              "by",
		" bayern ":            "by",
		"BY":                  "by",
		"by":                  "by",
		"NRW":                 "nw",
		"Nordrhein Westfalen": "nw",
		"Baden-Württemberg":   "bw",
		"Thüringen":           "th",
		"":                    "",
		"Atlantis":            "",
		"../etc":              "",
	}
	for in, want := range tests {
		if got := NormalizeRegion(in); got != want {
			t.Errorf("NormalizeRegion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClientFetch(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, feiertage2024)
	c := NewClient(srv.URL, time.Second, discard())

	got, err := c.Fetch(context.Background(), 2024, "by")
	require.NoError(t, err)
	require.Equal(t, domain.HolidayMap{
		"2024-01-01": "Neujahr",
		"2024-01-06": "Heilige Drei Könige",
		"2024-08-15": "Feiertag",
	}, got)
}

func TestClientFetchErrors(t *testing.T) {
	srv, _ := newServer(t, http.StatusInternalServerError, "boom")
	_, err := NewClient(srv.URL, time.Second, discard()).Fetch(context.Background(), 2024, "by")
	require.ErrorContains(t, err, "unexpected status 500")

	bad, _ := newServer(t, http.StatusOK, `{"status":"error"}`)
	_, err = NewClient(bad.URL, time.Second, discard()).Fetch(context.Background(), 2024, "by")
	require.Error(t, err)
}

func TestCacheServesFromDisk(t *testing.T) {
	srv, hits := newServer(t, http.StatusOK, feiertage2024)
	dir := t.TempDir()
	c := NewCache(dir, DefaultTTL, NewClient(srv.URL, time.Second, discard()), discard())
	ctx := context.Background()

	first, err := c.Holidays(ctx, 2024, "Bayern")
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.FileExists(t, filepath.Join(dir, "2024_by.json"))

	second, err := c.Holidays(ctx, 2024, "BY")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.EqualValues(t, 1, hits.Load())

	fresh := NewCache(dir, DefaultTTL, NewClient(srv.URL, time.Second, discard()), discard())
	_, err = fresh.Holidays(ctx, 2024, "by")
	require.NoError(t, err)
	require.EqualValues(t, 1, hits.Load())
}

func TestCacheExpires(t *testing.T) {
	srv, hits := newServer(t, http.StatusOK, feiertage2024)
	c := NewCache(t.TempDir(), time.Hour, NewClient(srv.URL, time.Second, discard()), discard())
	ctx := context.Background()

	_, err := c.Holidays(ctx, 2024, "by")
	require.NoError(t, err)
	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = c.Holidays(ctx, 2024, "by")
	require.NoError(t, err)
	require.EqualValues(t, 2, hits.Load())
}

func TestCacheCorruptFileRefetches(t *testing.T) {
	srv, hits := newServer(t, http.StatusOK, feiertage2024)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024_by.json"), []byte("{bad"), 0o644))
	c := NewCache(dir, DefaultTTL, NewClient(srv.URL, time.Second, discard()), discard())

	got, err := c.Holidays(context.Background(), 2024, "by")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.EqualValues(t, 1, hits.Load())
}

func TestCacheUpstreamFailure(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadGateway, "down")
	dir := t.TempDir()
	c := NewCache(dir, DefaultTTL, NewClient(srv.URL, time.Second, discard()), discard())

	_, err := c.Holidays(context.Background(), 2024, "by")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	require.NoFileExists(t, filepath.Join(dir, "2024_by.json"))
}

func TestCacheSkipsUnknownRegion(t *testing.T) {
	srv, hits := newServer(t, http.StatusOK, feiertage2024)
	c := NewCache(t.TempDir(), DefaultTTL, NewClient(srv.URL, time.Second, discard()), discard())
	for _, region := range []string{"", "Atlantis"} {
		got, err := c.Holidays(context.Background(), 2024, region)
		require.NoError(t, err)
		require.Empty(t, got)
	}
	require.Zero(t, hits.Load())
}

func TestCacheCollapsesConcurrentMisses(t *testing.T) {
	srv, hits := newServer(t, http.StatusOK, feiertage2024)
	c := NewCache(t.TempDir(), DefaultTTL, NewClient(srv.URL, time.Second, discard()), discard())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := c.Holidays(context.Background(), 2024, "by")
			if err == nil {
				m["scratch"] = "x"
			}
		}()
	}
	wg.Wait()
	require.EqualValues(t, 1, hits.Load())

	got, err := c.Holidays(context.Background(), 2024, "by")
	require.NoError(t, err)
	require.NotContains(t, got, "scratch")
}
