package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ectopass/vault/internal/config"
	"github.com/ectopass/vault/internal/crypto"
	"github.com/ectopass/vault/internal/handler"
	"github.com/ectopass/vault/internal/middleware"
	"github.com/ectopass/vault/internal/repository"
	"github.com/ectopass/vault/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStartup()

	var store repository.VaultStore
	client, coll, err := repository.NewMongoCollection(startupCtx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	if err != nil {
		if cfg.Env == "production" {
			slog.Error("mongodb connection failed", "error", err)
			os.Exit(1)
		}
		slog.Warn("mongodb connection failed — falling back to in-memory store", "error", err)
		store = repository.NewMemoryVaultStore()
	} else {
		store = repository.NewMongoVaultStore(coll)
	}

	resolver := crypto.NewIdentityResolver(cfg.AuthUserClaim, cfg.AuthJWTSecret)

	vaultService := service.NewVaultService(store, cfg.HistoryLimit)
	vaultHandler := handler.NewVaultHandler(vaultService)

	genService := service.NewGeneratorService()
	genHandler := handler.NewGeneratorHandler(genService)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics(registry))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(resolver))
		r.Get("/api/v1/passwords", vaultHandler.HandleList)
		r.Post("/api/v1/passwords", vaultHandler.HandleAdd)
		r.Put("/api/v1/passwords", vaultHandler.HandleUpdate)
		r.Delete("/api/v1/passwords", vaultHandler.HandleDelete)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			slog.Error("mongodb disconnect failed", "error", err)
		}
	}

	slog.Info("server stopped")
}
