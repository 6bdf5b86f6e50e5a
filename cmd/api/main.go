package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/whisperwall/backend/internal/config"
	"github.com/whisperwall/backend/internal/db"
	"github.com/whisperwall/backend/internal/model"
	"github.com/whisperwall/backend/internal/server"
	"github.com/whisperwall/backend/internal/sweeper"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	srv := server.New(nil)
	addr := ":" + cfg.Port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", addr)
		errCh <- srv.Start(addr)
	}()

	// The server never waits on the database; requests fail with a
	// generic server error until the pool is injected.
	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			logger.Error("db connect failed", "error", err)
			return
		}
		if err := conn.AutoMigrate(&model.Whisper{}, &model.Reply{}); err != nil {
			logger.Error("auto migrate failed", "error", err)
			return
		}
		srv.SetDB(conn)
		logger.Info("database ready", "db", cfg.DBName)

		sw := sweeper.New(srv.WhisperRepo(), cfg.RetentionWindow, cfg.SweepInterval,
			logger.With("component", "sweeper"))
		go sw.Run(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}
}
