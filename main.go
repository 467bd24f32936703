package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("helpcenter: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", envOr("HELPCENTER_CONFIG", defaultConfigPath), "path to the YAML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := newLogger(cfg.Log, os.Stdout)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed, err := loadSeed(ctx, cfg.Seed, logger)
	if err != nil {
		return fmt.Errorf("load seed cards: %w", err)
	}
	store, err := NewCardStore(newIDGenerator(cfg.IDs, seed), seed)
	if err != nil {
		return fmt.Errorf("init card store: %w", err)
	}
	logger.Info("card store ready", "cards", store.Len(), "seed", cfg.Seed.Source, "ids", cfg.IDs)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(store, logger, cfg.StaticDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("help center server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
