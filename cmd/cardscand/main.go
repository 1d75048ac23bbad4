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

	"github.com/vizitka/card-scanner/internal/common"
	"github.com/vizitka/card-scanner/internal/llm/gigachat"
	"github.com/vizitka/card-scanner/internal/pdftext"
	"github.com/vizitka/card-scanner/internal/scan"
	"github.com/vizitka/card-scanner/internal/server"
	"github.com/vizitka/card-scanner/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	if err := os.MkdirAll(cfg.Catalog.Dir, 0o755); err != nil {
		logger.Error("create catalog dir", "dir", cfg.Catalog.Dir, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := gigachat.NewClient(gigachat.Config{
		AuthURL:     cfg.GigaChat.AuthURL,
		BaseURL:     cfg.GigaChat.BaseURL,
		APIKey:      cfg.GigaChat.APIKey,
		Model:       cfg.GigaChat.Model,
		Scope:       cfg.GigaChat.Scope,
		Timeout:     cfg.GigaChat.Timeout,
		AuthTimeout: cfg.GigaChat.AuthTimeout,
		Insecure:    cfg.GigaChat.Insecure,
	}, logger)

	pdf := pdftext.NewExtractor(pdftext.Config{Pdftotext: cfg.PDFText.Pdftotext}, logger)
	orc := scan.NewOrchestrator(client, pdf, logger)
	catalog := store.NewFileStore(cfg.Catalog.Dir, logger)

	var db *store.PGStore
	if cfg.Database.DSN != "" {
		var err error
		db, err = store.Open(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error("open database", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("close database", "error", err)
			}
		}()
	} else {
		logger.Warn("DB_URL not set, saving to database is disabled")
	}

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: server.New(orc, catalog, db, logger).Router(),
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
