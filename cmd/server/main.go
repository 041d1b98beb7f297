package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4" // Echo web framework
	"go.uber.org/zap"

	"github.com/iliyamo/event-search/internal/catalog"
	"github.com/iliyamo/event-search/internal/config" // Internal config loader
	"github.com/iliyamo/event-search/internal/guardrail"
	"github.com/iliyamo/event-search/internal/handler"
	"github.com/iliyamo/event-search/internal/interpret"
	"github.com/iliyamo/event-search/internal/logger"
	mw "github.com/iliyamo/event-search/internal/middleware"
	"github.com/iliyamo/event-search/internal/queue"
	"github.com/iliyamo/event-search/internal/router" // Internal router setup
	"github.com/iliyamo/event-search/internal/transcribe"
)

func main() {
	_ = godotenv.Load() // Optional .env for local runs; absent in production

	cfg := config.Load() // Load environment config
	zl := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zl.Sync() }()

	// The catalog is the ground truth for every answer. A catalog that does
	// not load or fails validation is a deployment error, not a runtime one.
	store, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	zl.Info("catalog loaded",
		zap.String("path", cfg.CatalogPath),
		zap.String("version", store.Version()),
		zap.Int("events", store.Len()))

	// Redis backs the response cache, the query-result cache and the rate
	// limiter. A nil client disables all three and the API still works.
	rdb := config.NewRedisClient()
	if rdb == nil {
		zl.Warn("redis unavailable, caching and rate limiting disabled")
	}

	reasoner := interpret.NewGroqClient(interpret.GroqConfig{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
		Model:   cfg.GroqModel,
	})
	interp := interpret.NewInterpreter(reasoner, guardrail.Default(), cfg.ReferenceDate)

	whisper := transcribe.NewWhisperClient(transcribe.WhisperConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
	})

	if cfg.QueueEnabled {
		go func() {
			if err := queue.StartSearchConsumer(); err != nil {
				zl.Error("search consumer stopped", zap.Error(err))
			}
		}()
	}

	search := &handler.SearchHandler{
		Store:         store,
		Interp:        interp,
		Cache:         rdb,
		CacheTTL:      cfg.SearchCacheTTL,
		ReferenceDate: cfg.ReferenceDate,
		Log:           zl,
		PublishEvents: cfg.QueueEnabled,
	}
	transcriber := &handler.TranscribeHandler{Transcriber: whisper, Log: zl}
	events := &handler.EventsHandler{Store: store}

	e := echo.New() // Create Echo instance
	e.HideBanner = true

	router.RegisterRoutes(e) // Health check and metrics
	router.RegisterSearch(e, search, transcriber,
		mw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterCatalog(e, events,
		mw.NewRedisCache(config.LoadCacheConfig(), rdb))

	addr := ":" + cfg.Port
	zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
