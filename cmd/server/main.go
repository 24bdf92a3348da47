package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/uniaccru/promotion-system/internal/db"
	calibrationdomain "github.com/uniaccru/promotion-system/internal/domain/calibration"
	comparisondomain "github.com/uniaccru/promotion-system/internal/domain/comparison"
	"github.com/uniaccru/promotion-system/internal/domain/directory"
	promotiondomain "github.com/uniaccru/promotion-system/internal/domain/promotion"
	"github.com/uniaccru/promotion-system/internal/platform/config"
	"github.com/uniaccru/promotion-system/internal/platform/seed"
	calibrationhandler "github.com/uniaccru/promotion-system/internal/transport/http/handlers/calibration"
	comparisonhandler "github.com/uniaccru/promotion-system/internal/transport/http/handlers/comparison"
	directoryhandler "github.com/uniaccru/promotion-system/internal/transport/http/handlers/directory"
	promotionhandler "github.com/uniaccru/promotion-system/internal/transport/http/handlers/promotion"
	"github.com/uniaccru/promotion-system/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if cfg.RunSeed {
		if err := seed.Run(ctx, pool, cfg.SeedFile); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	promotionService := promotiondomain.NewService(promotiondomain.NewStore(pool))
	calibrationService := calibrationdomain.NewService(calibrationdomain.NewStore(pool))
	comparisonService := comparisondomain.NewService(comparisondomain.NewStore(pool))
	directoryStore := directory.NewStore(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Actor(cfg.ActorHeader))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		directoryhandler.NewHandler(directoryStore).RegisterRoutes(r)
		promotionhandler.NewHandler(promotionService).RegisterRoutes(r)
		calibrationhandler.NewHandler(calibrationService).RegisterRoutes(r)
		comparisonhandler.NewHandler(comparisonService).RegisterRoutes(r)
	})

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		slog.Info("promotion server listening", "addr", cfg.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "err", err)
	}
}
