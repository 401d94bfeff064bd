package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Source answers the four cascading option queries. The form server is
// indifferent to whether answers come from the preloaded index or an
// upstream service.
type Source interface {
	States(ctx context.Context) ([]string, error)
	Districts(ctx context.Context, state string) ([]string, error)
	Talukas(ctx context.Context, district string) ([]string, error)
	Villages(ctx context.Context, taluka string) ([]string, error)
}

// IndexSource serves option queries from an in-memory Index. A nil
// index degrades to empty results rather than errors.
type IndexSource struct {
	idx *Index
}

// NewIndexSource wraps an Index as a Source.
func NewIndexSource(idx *Index) *IndexSource {
	return &IndexSource{idx: idx}
}

func (s *IndexSource) States(context.Context) ([]string, error) {
	return s.idx.States(), nil
}

func (s *IndexSource) Districts(_ context.Context, state string) ([]string, error) {
	return s.idx.Districts(state), nil
}

func (s *IndexSource) Talukas(_ context.Context, district string) ([]string, error) {
	return s.idx.CitiesByDistrict(district), nil
}

func (s *IndexSource) Villages(_ context.Context, taluka string) ([]string, error) {
	return s.idx.VillagesByCity(taluka), nil
}

// Client queries an upstream location service per request. The upstream
// exposes the same flat query shape the form server does: one query
// parameter naming the parent level.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for the given upstream base URL.
func NewClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *Client) States(ctx context.Context) ([]string, error) {
	return c.fetch(ctx, "states", "", "")
}

func (c *Client) Districts(ctx context.Context, state string) ([]string, error) {
	return c.fetch(ctx, "districts", "state", state)
}

func (c *Client) Talukas(ctx context.Context, district string) ([]string, error) {
	return c.fetch(ctx, "talukas", "district", district)
}

func (c *Client) Villages(ctx context.Context, taluka string) ([]string, error) {
	return c.fetch(ctx, "villages", "taluka", taluka)
}

type listResponse struct {
	Data []string `json:"data"`
}

func (c *Client) fetch(ctx context.Context, resource, param, value string) ([]string, error) {
	u := c.baseURL + "/" + resource
	if param != "" {
		u += "?" + param + "=" + url.QueryEscape(value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", resource, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s request returned status %d", resource, resp.StatusCode)
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", resource, err)
	}
	if lr.Data == nil {
		lr.Data = []string{}
	}
	return lr.Data, nil
}
