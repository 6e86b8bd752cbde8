package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tracewatch/tracewatch-backend/internal/api/middleware"
	"github.com/tracewatch/tracewatch-backend/internal/api/rest"
	"github.com/tracewatch/tracewatch-backend/internal/cache"
	"github.com/tracewatch/tracewatch-backend/internal/catalog"
	"github.com/tracewatch/tracewatch-backend/internal/config"
	"github.com/tracewatch/tracewatch-backend/internal/pkg/logger"
	"github.com/tracewatch/tracewatch-backend/internal/pkg/topologycache"
	"github.com/tracewatch/tracewatch-backend/internal/repository"
	"github.com/tracewatch/tracewatch-backend/internal/service"
	"github.com/tracewatch/tracewatch-backend/internal/topology"
	"github.com/tracewatch/tracewatch-backend/migrations"
)

func main() {
	log := logger.StdLogger()
	log.Info("tracewatch backend starting")

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Port:                 8080,
			DatabasePath:         "./tracewatch.db",
			LogLevel:             "info",
			AllowedOrigins:       []string{"*"},
			ApplicationCacheSize: 4096,
		}
	}
	log.Info("configuration loaded", "port", cfg.Port, "db", cfg.DatabasePath)

	store, err := repository.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.RunMigrations(migrations.FS); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	applicationCache, err := cache.NewApplicationCache(store, cfg.ApplicationCacheSize, log)
	if err != nil {
		log.Error("failed to build application cache", "error", err)
		os.Exit(1)
	}

	componentCatalog := catalog.NewDefault()
	alarmService := service.NewAlarmService(store)
	serverService := service.NewServerService(store)
	durationService := service.NewDurationService(applicationCache)

	builder := topology.NewBuilder(applicationCache, componentCatalog, serverService, alarmService, durationService, log)
	graphCache := topologycache.New(time.Duration(cfg.TopologyCacheTTLSec) * time.Second)
	topologyService := service.NewTopologyService(store, builder, graphCache)

	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.StructuredLog)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	rest.SetupRoutes(api, rest.NewHandler(topologyService))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}).Handler(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.RequestTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
	}

	go func() {
		log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("stopped")
}
