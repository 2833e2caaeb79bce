package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"timesheet/internal/domain"
)

const defaultName = "Feiertag"

// Client fetches public holidays from api-feiertage.de.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://get.api-feiertage.de"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type response struct {
	Status   string           `json:"status"`
	Holidays []map[string]any `json:"feiertage"`
}

// Fetch returns the statutory holidays of one state code and year.
// GET {base}?years=2024&states=by
func (c *Client) Fetch(ctx context.Context, year int, code string) (domain.HolidayMap, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("years", strconv.Itoa(year))
	q.Set("states", code)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("fetching holidays", slog.Int("year", year), slog.String("region", code))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("holidays: unexpected status %d: %s", resp.StatusCode, string(body))
	}
	var raw response
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("holidays: decode: %w", err)
	}
	if raw.Holidays == nil {
		return nil, fmt.Errorf("holidays: response without feiertage")
	}

	out := domain.HolidayMap{}
	for _, h := range raw.Holidays {
		date, _ := h["date"].(string)
		flag, _ := h[code].(string)
		if date == "" || flag != "1" {
			continue
		}
		name, _ := h["fname"].(string)
		if name == "" {
			name = defaultName
		}
		out[date] = name
	}
	return out, nil
}
