package location

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexSourceFlatLookups(t *testing.T) {
	idx := NewIndex(map[string]map[string]map[string][]string{
		"Maharashtra": {
			"Pune":   {"Haveli": {"Wagholi"}, "Mulshi": {"Paud"}},
			"Nashik": {"Igatpuri": {"Ghoti"}},
		},
		"Gujarat": {
			"Surat": {"Olpad": {"Sayan"}},
		},
	})
	src := NewIndexSource(idx)
	ctx := context.Background()

	states, err := src.States(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gujarat", "Maharashtra"}, states)

	talukas, err := src.Talukas(ctx, "Pune")
	require.NoError(t, err)
	assert.Equal(t, []string{"Haveli", "Mulshi"}, talukas)

	villages, err := src.Villages(ctx, "Olpad")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sayan"}, villages)

	// Unknown parents degrade to empty, never nil.
	talukas, err = src.Talukas(ctx, "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, []string{}, talukas)
}

func TestIndexSourceNilIndex(t *testing.T) {
	src := NewIndexSource(nil)
	states, err := src.States(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, states)
}

func TestClientQueriesUpstream(t *testing.T) {
	var gotPath, gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":["Haveli","Mulshi"]}`))
	}))
	t.Cleanup(upstream.Close)

	c := NewClient(upstream.URL, nil)
	talukas, err := c.Talukas(context.Background(), "Pune")
	require.NoError(t, err)
	assert.Equal(t, []string{"Haveli", "Mulshi"}, talukas)
	assert.Equal(t, "/talukas", gotPath)
	assert.Equal(t, "district=Pune", gotQuery)
}

func TestClientUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(upstream.Close)

	c := NewClient(upstream.URL, nil)
	_, err := c.States(context.Background())
	assert.Error(t, err)
}

func TestClientNullDataIsEmpty(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":null}`))
	}))
	t.Cleanup(upstream.Close)

	c := NewClient(upstream.URL, nil)
	villages, err := c.Villages(context.Background(), "Olpad")
	require.NoError(t, err)
	assert.Equal(t, []string{}, villages)
}
