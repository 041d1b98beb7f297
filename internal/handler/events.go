// This file defines the public catalog browsing endpoints. The catalog has
// no sensitive fields, so events are returned in their document shape.
package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-search/internal/catalog"
)

// EventsHandler serves the static event catalog.
type EventsHandler struct {
	Store *catalog.Store
}

// GetEvents lists catalog events in authoring order. With ?ids=a,b,c the
// list is narrowed to the named events, still in authoring order; unknown
// ids are silently dropped and duplicates collapse.
func (h *EventsHandler) GetEvents(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("ids"))
	if raw == "" {
		return c.JSON(http.StatusOK, echo.Map{"items": h.Store.All()})
	}

	ids := make([]string, 0, 8)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": h.Store.Resolve(ids)})
}

// GetEventByID returns a single event or 404 when the id is unknown.
func (h *EventsHandler) GetEventByID(c echo.Context) error {
	ev, err := h.Store.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	return c.JSON(http.StatusOK, ev)
}
