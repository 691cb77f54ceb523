package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgetkeeper/internal/app/server/api"
	"budgetkeeper/internal/app/server/config"
	"budgetkeeper/internal/infrastructure/storage"
	"budgetkeeper/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	db, err := storage.Open(cfg)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := &http.Server{
		Addr:         cfg.Server.RunAddress,
		Handler:      api.New(db, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "address", cfg.Server.RunAddress, "driver", cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
