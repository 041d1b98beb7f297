package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/event-search/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers the operational endpoints on the provided Echo
// instance: the health check used by load balancers and the prometheus
// metrics endpoint used by the monitoring stack.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
	// Expose the prometheus collectors.  promhttp serves plain net/http, so
	// it is wrapped into an echo handler.
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterSearch registers the two query endpoints.  Both call paid external
// capabilities, so the token-bucket rate limiter is applied to them and to
// nothing else.
func RegisterSearch(e *echo.Echo, s *handler.SearchHandler, tr *handler.TranscribeHandler, rateLimit echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if rateLimit != nil {
		g.Use(rateLimit)
	}
	// Resolve a natural-language utterance into catalog event ids.
	g.POST("/search", s.PostSearch)
	// Turn an uploaded audio clip into text for the search box.
	g.POST("/transcribe", tr.PostTranscribe)
}

// RegisterCatalog registers the unauthenticated browse endpoints.  The
// catalog is immutable for the life of the process, so these routes sit
// behind the redis response cache when one is configured.
func RegisterCatalog(e *echo.Echo, ev *handler.EventsHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	// Expose the full catalog, optionally narrowed with ?ids=a,b,c.
	g.GET("/events", ev.GetEvents)
	// Event details by catalog id.
	g.GET("/events/:id", ev.GetEventByID)
}
