// Package catalog holds the immutable event collection for the lifetime of
// the process. The catalog is read from a static JSON document once at
// startup and is never mutated afterwards, so lookups need no locking. These
// sentinel values allow higher layers such as handlers to distinguish
// between different failure scenarios.
package catalog

import (
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/iliyamo/event-search/internal/model"
)

// ErrEventNotFound is returned when a lookup by id has no match. Handlers
// should translate this into an HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// Store exposes read-only access to the event catalog: full iteration in
// authoring order, lookup by id, and resolution of id lists produced by the
// query pipeline.
type Store struct {
	events   []model.Event
	byID     map[string]int
	snapshot []byte
	version  string
}

// Load reads and validates the catalog document at path. The document must
// be a JSON array of events in authoring order. Invariants enforced here:
// ids are unique, every event has at least one show, every show has at least
// one time, and prices are non-negative. A document violating any of them is
// a deployment error and Load fails.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var events []model.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("catalog: %s contains no events", path)
	}

	byID := make(map[string]int, len(events))
	for i, ev := range events {
		if ev.ID == "" {
			return nil, fmt.Errorf("catalog: event at index %d has empty id", i)
		}
		if _, dup := byID[ev.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate event id %q", ev.ID)
		}
		if ev.Price < 0 {
			return nil, fmt.Errorf("catalog: event %q has negative price", ev.ID)
		}
		if len(ev.Shows) == 0 {
			return nil, fmt.Errorf("catalog: event %q has no shows", ev.ID)
		}
		for j, sh := range ev.Shows {
			if len(sh.Times) == 0 {
				return nil, fmt.Errorf("catalog: event %q show %d has no times", ev.ID, j)
			}
		}
		byID[ev.ID] = i
	}

	sum := sha1.Sum(raw)
	return &Store{
		events:   events,
		byID:     byID,
		snapshot: raw,
		version:  fmt.Sprintf("%x", sum[:6]),
	}, nil
}

// All returns every event in authoring order. The returned slice is shared;
// callers must not modify it.
func (s *Store) All() []model.Event {
	return s.events
}

// Get returns the event with the given id or ErrEventNotFound.
func (s *Store) Get(id string) (model.Event, error) {
	i, ok := s.byID[id]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	return s.events[i], nil
}

// Resolve maps a list of candidate ids to events. The result follows catalog
// (authoring) order, ids without a catalog entry are silently dropped, and
// each distinct id yields at most one event. This is the presentation
// boundary: untrusted ids coming out of the query pipeline never cause an
// error here.
func (s *Store) Resolve(ids []string) []model.Event {
	if len(ids) == 0 {
		return []model.Event{}
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]model.Event, 0, len(wanted))
	for _, ev := range s.events {
		if wanted[ev.ID] {
			out = append(out, ev)
		}
	}
	return out
}

// Snapshot returns the raw catalog document as loaded. It is handed to the
// query interpreter verbatim so the reasoning capability sees exactly what
// the process serves.
func (s *Store) Snapshot() []byte {
	return s.snapshot
}

// Version is a short content hash of the catalog document, used in cache
// keys so a redeployed catalog invalidates cached query results.
func (s *Store) Version() string {
	return s.version
}

// Len returns the number of events in the catalog.
func (s *Store) Len() int {
	return len(s.events)
}
