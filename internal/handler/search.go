// Package handler exposes the HTTP handlers of the event search API. This
// file defines the search endpoint: it turns a natural-language utterance
// into a list of catalog event ids by way of the reasoning capability and
// the strict output sanitizer.
package handler

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/event-search/internal/catalog"
	"github.com/iliyamo/event-search/internal/interpret"
	"github.com/iliyamo/event-search/internal/metrics"
	"github.com/iliyamo/event-search/internal/queue"
	queue_publisher "github.com/iliyamo/event-search/internal/service"
)

// SearchHandler answers natural-language queries about the event catalog.
// Cache is optional; a nil client disables the query-result cache the same
// way the response cache degrades. PublishEvents gates the analytics
// publication so local runs do not need a broker.
type SearchHandler struct {
	Store         *catalog.Store
	Interp        *interpret.Interpreter
	Cache         *redis.Client
	CacheTTL      time.Duration
	ReferenceDate string
	Log           *zap.Logger
	PublishEvents bool
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	IDs []string `json:"ids"`
}

// PostSearch handles POST /v1/search. The utterance is resolved against the
// catalog by the reasoning capability; the raw model output is passed
// through the sanitizer and the surviving ids returned verbatim. Responses
// are cached per normalized query so repeated utterances skip the paid
// upstream call.
func (h *SearchHandler) PostSearch(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		metrics.SearchRequests.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": `missing "query" in request body.`})
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		metrics.SearchRequests.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": `missing "query" in request body.`})
	}

	ctx := c.Request().Context()
	start := time.Now()
	cacheKey := h.queryCacheKey(query)

	if h.Cache != nil {
		if raw, err := h.Cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var ids []string
			if err := json.Unmarshal(raw, &ids); err == nil {
				if ids == nil {
					ids = []string{}
				}
				metrics.SearchRequests.WithLabelValues("ok").Inc()
				h.publish(query, ids, true, time.Since(start))
				return c.JSON(http.StatusOK, searchResponse{IDs: ids})
			}
		}
	}

	raw, err := h.Interp.Interpret(ctx, query, h.Store.Snapshot())
	metrics.ReasonerDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, interpret.ErrMissingCredentials) {
			metrics.SearchRequests.WithLabelValues("not_configured").Inc()
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reasoning capability is not configured."})
		}
		h.Log.Error("reasoning request failed", zap.Error(err))
		metrics.SearchRequests.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error."})
	}

	ids := interpret.ExtractIDs(raw)
	if len(ids) == 0 && strings.TrimSpace(raw) != "[]" {
		// Either the model matched nothing and still added prose, or the
		// output violated the contract. Both map to an empty result.
		metrics.SanitizerRejections.Inc()
		h.Log.Warn("model output rejected by sanitizer",
			zap.String("query", query),
			zap.String("raw_output", raw))
	}

	if h.Cache != nil {
		if payload, err := json.Marshal(ids); err == nil {
			_ = h.Cache.SetEx(context.Background(), cacheKey, payload, h.cacheTTL()).Err()
		}
	}

	metrics.SearchRequests.WithLabelValues("ok").Inc()
	h.publish(query, ids, false, time.Since(start))
	return c.JSON(http.StatusOK, searchResponse{IDs: ids})
}

func (h *SearchHandler) cacheTTL() time.Duration {
	if h.CacheTTL > 0 {
		return h.CacheTTL
	}
	return 5 * time.Minute
}

// The key mixes in the reference date and catalog version so a redeploy
// with different data or "today" never serves stale ids.
func (h *SearchHandler) queryCacheKey(query string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(query), " "))
	sum := sha1.Sum([]byte(h.ReferenceDate + "|" + h.Store.Version() + "|" + normalized))
	return fmt.Sprintf("search:q:%x", sum[:])
}

// publish sends the analytics event in the background. Failures are logged
// by the publisher itself and never affect the response.
func (h *SearchHandler) publish(query string, ids []string, cacheHit bool, elapsed time.Duration) {
	if !h.PublishEvents {
		return
	}
	ev := queue.SearchPerformedEvent{
		SearchID:       uuid.NewString(),
		Query:          query,
		EventIDs:       ids,
		EventIDCount:   len(ids),
		CatalogVersion: h.Store.Version(),
		CacheHit:       cacheHit,
		DurationMs:     elapsed.Milliseconds(),
		PerformedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishSearchPerformed(ctx, ev)
	}()
}
