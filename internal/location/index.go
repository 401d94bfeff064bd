// Package location provides the in-memory location hierarchy
// (state → district → city/taluka → villages) and the cascade rules for
// the dependent form selectors backed by it.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"

	"golang.org/x/sync/singleflight"
)

// Index is the immutable location hierarchy. Lookups are pure and
// synchronous; an absent key returns an empty collection, never an error —
// absence is the normal state during incremental selection. All methods
// are safe on a nil receiver, which is the degraded mode after a failed
// load.
type Index struct {
	data map[string]map[string]map[string][]string
}

// States returns every known state name, sorted.
func (x *Index) States() []string {
	if x == nil {
		return []string{}
	}
	return sortedKeys(x.data)
}

// Districts returns the districts under a state, sorted.
func (x *Index) Districts(state string) []string {
	if x == nil {
		return []string{}
	}
	return sortedKeys(x.data[state])
}

// Cities returns the cities/talukas under a district, sorted.
func (x *Index) Cities(state, district string) []string {
	if x == nil {
		return []string{}
	}
	return sortedKeys(x.data[state][district])
}

// Villages returns the villages under a city/taluka.
func (x *Index) Villages(state, district, city string) []string {
	if x == nil {
		return []string{}
	}
	out := x.data[state][district][city]
	if out == nil {
		return []string{}
	}
	return append([]string(nil), out...)
}

// CitiesByDistrict returns the cities/talukas under the named district,
// searching every state. District names are unique across Indian states
// in practice; if duplicates appear the union is returned.
func (x *Index) CitiesByDistrict(district string) []string {
	if x == nil {
		return []string{}
	}
	out := []string{}
	for _, districts := range x.data {
		if cities, ok := districts[district]; ok {
			out = append(out, sortedKeys(cities)...)
		}
	}
	sort.Strings(out)
	return out
}

// VillagesByCity returns the villages under the named city/taluka,
// searching every state and district.
func (x *Index) VillagesByCity(city string) []string {
	if x == nil {
		return []string{}
	}
	out := []string{}
	for _, districts := range x.data {
		for _, cities := range districts {
			if villages, ok := cities[city]; ok {
				out = append(out, villages...)
			}
		}
	}
	sort.Strings(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Loader fetches and decodes the hierarchy document from a file path or a
// URL. Concurrent loads of the same source are collapsed to a single
// fetch.
type Loader struct {
	path   string
	url    string
	client *http.Client
	group  singleflight.Group
}

// NewFileLoader creates a Loader reading from a local JSON file.
func NewFileLoader(path string) *Loader {
	return &Loader{path: path}
}

// NewURLLoader creates a Loader fetching a JSON document over HTTP.
func NewURLLoader(url string, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{url: url, client: client}
}

// Load returns the decoded index, or an error leaving the caller with a
// nil (degraded) index. No retry is attempted.
func (l *Loader) Load(ctx context.Context) (*Index, error) {
	v, err, _ := l.group.Do("load", func() (interface{}, error) {
		if l.path != "" {
			return l.loadFile()
		}
		return l.loadURL(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Index), nil
}

func (l *Loader) loadFile() (*Index, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read location data %s: %w", l.path, err)
	}
	return decode(raw)
}

func (l *Loader) loadURL(ctx context.Context) (*Index, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build location request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch location data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("location data fetch returned status %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode location data: %w", err)
	}
	return decode(raw)
}

func decode(raw []byte) (*Index, error) {
	var data map[string]map[string]map[string][]string
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse location data JSON: %w", err)
	}
	return &Index{data: data}, nil
}

// NewIndex builds an index directly from an in-memory hierarchy. Intended
// for tests.
func NewIndex(data map[string]map[string]map[string][]string) *Index {
	return &Index{data: data}
}
