// Package wom provides a WiseOldMan API client for player stats and gains.
package wom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public WiseOldMan API endpoint.
const DefaultBaseURL = "https://api.wiseoldman.net/v2"

// SkillEntry is one raw skill from the stats response, in response order.
// Level and Experience are nil when the service omitted them.
type SkillEntry struct {
	Key        string
	Level      *int
	Experience *int64
}

// MetricGain is one raw positive-or-zero gain from the gains response,
// in response order.
type MetricGain struct {
	Key    string
	Gained int64
}

// PlayerStats is the decoded stats response for one player.
type PlayerStats struct {
	DisplayName     string
	TotalExperience int64
	Skills          []SkillEntry
}

// Gains is the decoded period-gains response for one player. Either list
// may be empty when the service omitted that category.
type Gains struct {
	Skills []MetricGain
	Bosses []MetricGain
}

// StatusError is a non-success HTTP response from the stats service.
type StatusError struct {
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Client calls the WiseOldMan API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for the given base URL. An empty base URL
// selects the public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type playerResponse struct {
	DisplayName    string `json:"displayName"`
	Exp            int64  `json:"exp"`
	LatestSnapshot struct {
		Data struct {
			Skills json.RawMessage `json:"skills"`
		} `json:"data"`
	} `json:"latestSnapshot"`
}

type gainsResponse struct {
	Data struct {
		Skills json.RawMessage `json:"skills"`
		Bosses json.RawMessage `json:"bosses"`
	} `json:"data"`
}

// FetchPlayerStats retrieves current stats for a username. Skill order
// matches the response body.
func (c *Client) FetchPlayerStats(ctx context.Context, username string) (PlayerStats, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/players/%s", c.baseURL, url.PathEscape(username)))
	if err != nil {
		return PlayerStats{}, err
	}
	var resp playerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return PlayerStats{}, fmt.Errorf("failed to decode stats response: %w", err)
	}
	skills, err := decodeOrderedSkills(resp.LatestSnapshot.Data.Skills)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("failed to decode skills: %w", err)
	}
	return PlayerStats{
		DisplayName:     resp.DisplayName,
		TotalExperience: resp.Exp,
		Skills:          skills,
	}, nil
}

// FetchGains retrieves period gains for a username. A missing or empty body
// yields empty gains, not an error.
func (c *Client) FetchGains(ctx context.Context, username, period string) (Gains, error) {
	endpoint := fmt.Sprintf("%s/players/%s/gained?period=%s",
		c.baseURL, url.PathEscape(username), url.QueryEscape(period))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return Gains{}, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return Gains{}, nil
	}
	var resp gainsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Gains{}, fmt.Errorf("failed to decode gains response: %w", err)
	}
	skills, err := decodeOrderedGains(resp.Data.Skills, "experience")
	if err != nil {
		return Gains{}, fmt.Errorf("failed to decode skill gains: %w", err)
	}
	bosses, err := decodeOrderedGains(resp.Data.Bosses, "kills")
	if err != nil {
		return Gains{}, fmt.Errorf("failed to decode boss gains: %w", err)
	}
	return Gains{Skills: skills, Bosses: bosses}, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach stats service: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}
	return body, nil
}

// decodeOrderedSkills walks a JSON skills object token by token so the
// entry order of the response body is preserved. encoding/json maps lose
// key order, which the normalizer depends on.
func decodeOrderedSkills(raw json.RawMessage) ([]SkillEntry, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var entries []SkillEntry
	for dec.More() {
		key, err := nextKey(dec)
		if err != nil {
			return nil, err
		}
		var value struct {
			Level      *int   `json:"level"`
			Experience *int64 `json:"experience"`
		}
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to decode skill %q: %w", key, err)
		}
		entries = append(entries, SkillEntry{
			Key:        key,
			Level:      value.Level,
			Experience: value.Experience,
		})
	}
	return entries, nil
}

// decodeOrderedGains walks a JSON gains object, reading the named metric
// ("experience" or "kills") from each entry in response order.
func decodeOrderedGains(raw json.RawMessage, metric string) ([]MetricGain, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var entries []MetricGain
	for dec.More() {
		key, err := nextKey(dec)
		if err != nil {
			return nil, err
		}
		var value map[string]struct {
			Gained int64 `json:"gained"`
		}
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to decode gain %q: %w", key, err)
		}
		entries = append(entries, MetricGain{
			Key:    key,
			Gained: value[metric].Gained,
		})
	}
	return entries, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func nextKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}
