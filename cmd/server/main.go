package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/heatquote/internal/config"
	"github.com/Simplici0/heatquote/internal/db"
	"github.com/Simplici0/heatquote/internal/estimate"
	"github.com/Simplici0/heatquote/internal/logging"
	"github.com/Simplici0/heatquote/internal/migrations"
	"github.com/Simplici0/heatquote/internal/seed"
	"github.com/Simplici0/heatquote/internal/store"
)

type server struct {
	store  *store.Store
	engine *estimate.Engine
	log    *zap.Logger
}

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()
	for _, w := range cfg.Warnings {
		logger.Warn("config", zap.String("warning", w))
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database); err != nil {
			logger.Fatal("failed to run database migrations", zap.Error(err))
		}
	}

	stats, err := seed.Run(database)
	if err != nil {
		logger.Fatal("failed to seed database", zap.Error(err))
	}
	logger.Info("seed complete", zap.Int("inserts", stats.Inserts))

	srv := &server{
		store:  store.New(database),
		engine: estimate.New(nil),
		log:    logger,
	}
	if err := srv.engine.Norms().Validate(); err != nil {
		logger.Fatal("invalid norms catalog", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/norms", s.handleNorms)
	r.Get("/settings", s.handleSettingsGet)
	r.Post("/settings", s.handleSettingsSave)

	r.Route("/estimate", func(r chi.Router) {
		r.Post("/", s.handleEstimate)
		r.Post("/text", s.handleEstimateText)
		r.Post("/plan", s.handleEstimatePlan)
		r.Post("/pdf", s.handleEstimatePDF)
		r.Post("/xlsx", s.handleEstimateExcel)
	})

	r.Post("/estimates", s.handleEstimatesCreate)
	r.Get("/estimates", s.handleEstimatesList)
	r.Get("/estimates/{id}", s.handleEstimateDetail)

	return r
}

// requestLogger logs every request once it has been served.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
