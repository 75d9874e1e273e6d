package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rc-service/internal/config"
	"rc-service/internal/db"
	httpapi "rc-service/internal/http"
	"rc-service/internal/logger"
	"rc-service/internal/parser"
	"rc-service/internal/repository"
	"rc-service/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.New(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	rcParser := parser.New(parser.Options{NoiseThreshold: cfg.Parser.NoiseThreshold})
	repo := repository.NewRCRepository(gdb)
	rcService := service.NewRCService(repo, rcParser, log)

	if cfg.Records.RetentionDays > 0 {
		go rcService.RunRetention(ctx, cfg.Records.RetentionDays, cfg.Records.PurgeInterval)
		log.Info().
			Int("retention_days", cfg.Records.RetentionDays).
			Dur("interval", cfg.Records.PurgeInterval).
			Msg("record retention enabled")
	}

	handler := httpapi.NewHandler(rcService, log)
	router := httpapi.NewRouter(handler, cfg, log)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Float64("noise_threshold", rcParser.NoiseThreshold()).
			Msg("rc-service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
