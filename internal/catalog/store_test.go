package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `[
  {"id": "m1", "cat": "movie", "title": "Kantara 2", "lang": "Kannada", "age": "UA",
   "price": 350, "shows": [{"date": "2026-03-01", "venue": "PVR Orion Mall", "times": ["18:30", "21:45"]}]},
  {"id": "c1", "cat": "concert", "title": "Indie Night", "lang": "English", "age": "18yrs+",
   "price": 999, "shows": [{"date": "2026-03-07", "venue": "Phoenix Marketcity Arena", "times": ["20:00"]}]},
  {"id": "p1", "cat": "park", "title": "Cubbon Park Walk", "lang": "English", "age": "All",
   "price": 0, "shows": [{"date": "2026-03-01", "venue": "Cubbon Park Main Gate", "times": ["07:00"]}]}
]`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func loadTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Load(writeCatalog(t, testCatalog))
	require.NoError(t, err)
	return store
}

func TestLoad_KeepsAuthoringOrder(t *testing.T) {
	store := loadTestStore(t)

	require.Equal(t, 3, store.Len())
	ids := make([]string, 0, store.Len())
	for _, ev := range store.All() {
		ids = append(ids, ev.ID)
	}
	assert.Equal(t, []string{"m1", "c1", "p1"}, ids)
	assert.NotEmpty(t, store.Version())
	assert.JSONEq(t, testCatalog, string(store.Snapshot()))
}

func TestLoad_RejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not a catalog"},
		{"empty array", "[]"},
		{"empty id", `[{"id": "", "cat": "movie", "title": "x", "lang": "English", "age": "UA", "price": 1, "shows": [{"date": "2026-03-01", "venue": "v", "times": ["10:00"]}]}]`},
		{"duplicate id", `[
			{"id": "m1", "cat": "movie", "title": "a", "lang": "English", "age": "UA", "price": 1, "shows": [{"date": "2026-03-01", "venue": "v", "times": ["10:00"]}]},
			{"id": "m1", "cat": "movie", "title": "b", "lang": "English", "age": "UA", "price": 1, "shows": [{"date": "2026-03-01", "venue": "v", "times": ["10:00"]}]}
		]`},
		{"negative price", `[{"id": "m1", "cat": "movie", "title": "x", "lang": "English", "age": "UA", "price": -5, "shows": [{"date": "2026-03-01", "venue": "v", "times": ["10:00"]}]}]`},
		{"no shows", `[{"id": "m1", "cat": "movie", "title": "x", "lang": "English", "age": "UA", "price": 1, "shows": []}]`},
		{"show without times", `[{"id": "m1", "cat": "movie", "title": "x", "lang": "English", "age": "UA", "price": 1, "shows": [{"date": "2026-03-01", "venue": "v", "times": []}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCatalog(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestGet(t *testing.T) {
	store := loadTestStore(t)

	ev, err := store.Get("c1")
	require.NoError(t, err)
	assert.Equal(t, "Indie Night", ev.Title)

	_, err = store.Get("nope")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestResolve(t *testing.T) {
	store := loadTestStore(t)

	tests := []struct {
		name string
		ids  []string
		want []string
	}{
		{"catalog order preserved", []string{"p1", "m1"}, []string{"m1", "p1"}},
		{"unknown ids dropped silently", []string{"m1", "ghost", "c1"}, []string{"m1", "c1"}},
		{"duplicate ids collapse", []string{"c1", "c1"}, []string{"c1"}},
		{"all unknown", []string{"x", "y"}, []string{}},
		{"empty input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := store.Resolve(tt.ids)
			got := make([]string, 0, len(events))
			for _, ev := range events {
				got = append(got, ev.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// Resolving a validated id list and re-extracting ids must reproduce the
// input when the input is already in catalog order.
func TestResolve_RoundTrip(t *testing.T) {
	store := loadTestStore(t)

	in := []string{"m1", "c1", "p1"}
	events := store.Resolve(in)
	got := make([]string, 0, len(events))
	for _, ev := range events {
		got = append(got, ev.ID)
	}
	assert.Equal(t, in, got)
}
