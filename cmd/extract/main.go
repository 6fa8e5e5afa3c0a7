// Package main is the entry point for the extraction pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/redcarpet-collective/gala/internal/config"
	"github.com/redcarpet-collective/gala/internal/kb"
	"github.com/redcarpet-collective/gala/internal/logging"
	"github.com/redcarpet-collective/gala/internal/message"
	"github.com/redcarpet-collective/gala/internal/pipeline"
	"github.com/redcarpet-collective/gala/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	inputPath := flag.String("input", "", "path to the corpus JSON file (required)")
	year := flag.String("year", "", "ceremony year, overrides config")
	help := flag.Bool("help", false, "display help message")
	flag.Parse()

	if *help {
		fmt.Println("Gala Extraction Pipeline")
		fmt.Println()
		fmt.Println("Usage: extract -input corpus.json [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "error: -input is required")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "config error:", err)
		}
		os.Exit(1)
	}
	if *year != "" {
		cfg.Year = *year
	}

	logger := logging.NewLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "config", cfg.LogSummary())

	// Cancel the run on SIGINT/SIGTERM so partial work is not written.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []pipeline.Option

	if cfg.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		metrics := pipeline.NewMetrics()
		if err := metrics.Register(registry); err != nil {
			logger.Error("failed to register metrics", "error", err)
			os.Exit(1)
		}
		opts = append(opts, pipeline.WithMetrics(metrics))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		server := &http.Server{
			Addr:         cfg.MetricsAddr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info("metrics listener starting", "addr", cfg.MetricsAddr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics listener error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics listener shutdown", "error", err)
			}
		}()
	}

	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid redis url", "error", err)
			os.Exit(1)
		}
		client := kb.NewRedisClient(redis.NewClient(redisOpts), "gala:kb")
		if err := client.HealthCheck(ctx); err != nil {
			logger.Warn("knowledge base unreachable, running without validation", "error", err)
		} else {
			validator := kb.NewValidator(client, logger,
				kb.WithRateLimit(cfg.KBRateLimitPerSecond, int(cfg.KBRateLimitPerSecond)*2),
				kb.WithTTL(time.Duration(cfg.KBCacheTTLSeconds)*time.Second))
			opts = append(opts, pipeline.WithValidator(validator))
		}
	}

	if cfg.DatabaseURL != "" {
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("audit store unreachable, running without audit", "error", err)
		} else {
			defer db.Close()
			opts = append(opts, pipeline.WithAudit(store.NewPostgresRunRepository(db, logger)))
		}
	}

	source := message.NewFileSource(*inputPath, logger)
	p := pipeline.New(cfg, source, logger, opts...)

	results, err := p.Run(ctx)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	jsonPath, err := results.WriteJSON(cfg.OutputDir)
	if err != nil {
		logger.Error("failed to write results", "error", err)
		os.Exit(1)
	}
	textPath, err := results.WriteText(cfg.OutputDir)
	if err != nil {
		logger.Error("failed to write report", "error", err)
		os.Exit(1)
	}

	logger.Info("results written", "json", jsonPath, "report", textPath)
}
