package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yashasviy/overdraft-ledger-api/api"
	"github.com/yashasviy/overdraft-ledger-api/cache"
	"github.com/yashasviy/overdraft-ledger-api/config"
	"github.com/yashasviy/overdraft-ledger-api/logger"
	"github.com/yashasviy/overdraft-ledger-api/service"
	"github.com/yashasviy/overdraft-ledger-api/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	st, err := store.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer st.Close()

	schemaCtx, cancel := context.WithTimeout(context.Background(), cfg.ConnectionTimeout)
	err = st.EnsureSchema(schemaCtx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	kv, err := cache.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer kv.Close()

	router := api.NewRouter(api.Deps{
		Transactions:   service.NewTransactionService(st, kv, log),
		Statements:     service.NewStatementService(st, kv, cfg.CacheTTL, log),
		Store:          st,
		Cache:          kv,
		CacheKeyBudget: cfg.MaxCacheKeys,
		Logger:         log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
