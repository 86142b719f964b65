// Package geocode resolves free-text locations to coordinates through a
// Nominatim-compatible search endpoint. Lookups are best-effort: callers
// treat any failure as "no marker", never as a page error.
package geocode

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shipment-tracker/config"
	"shipment-tracker/errs"
)

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type Client struct {
	baseUri   string
	userAgent string
	http      *http.Client
}

func NewClient(cfg *config.GeocoderConfig) *Client {
	return &Client{
		baseUri:   cfg.BaseUri,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: 20 * time.Second},
	}
}

// Lookup geocodes a free-text location. It returns errs.ErrNoResult when the
// service has no match for the query.
func (c *Client) Lookup(query string) (*Coordinates, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errs.ErrNoResult
	}

	u, err := url.Parse(c.baseUri + "/search")
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(results) == 0 {
		return nil, errs.ErrNoResult
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("bad latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("bad longitude %q: %w", results[0].Lon, err)
	}

	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}

// FormatAddress joins the non-empty address parts into a single searchable
// line, e.g. "1 Main St, Springfield, IL, USA".
func FormatAddress(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, ", ")
}
