// Package queue defines message payloads exchanged over the message broker.
package queue

// SearchPerformedEvent is published after every completed search request.
// It carries enough information for downstream consumers to log or feed
// analytics without calling back into the API.
type SearchPerformedEvent struct {
	SearchID       string   `json:"search_id"`
	Query          string   `json:"query"`
	EventIDs       []string `json:"event_ids"`
	EventIDCount   int      `json:"event_id_count"`
	CatalogVersion string   `json:"catalog_version"`
	CacheHit       bool     `json:"cache_hit"`
	DurationMs     int64    `json:"duration_ms"`
	PerformedAt    string   `json:"performed_at"`
}
