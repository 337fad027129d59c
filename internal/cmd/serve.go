package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nameforge/nameforge/internal/config"
	"github.com/nameforge/nameforge/internal/core/checker"
	"github.com/nameforge/nameforge/internal/core/scanner"
	errwrap "github.com/nameforge/nameforge/internal/errors"
	"github.com/nameforge/nameforge/internal/metrics"
	"github.com/nameforge/nameforge/internal/observability"
	"github.com/nameforge/nameforge/internal/server"
	"github.com/nameforge/nameforge/internal/server/handlers"
	"github.com/nameforge/nameforge/internal/suggest"
)

// signalHealthChecker implements HealthChecker for signal system
type signalHealthChecker struct{}

func (s signalHealthChecker) CheckHealth(ctx context.Context) error {
	return nil // Signal handlers are registered and ready
}

// telemetryHealthChecker ensures telemetry system and exporter are available
type telemetryHealthChecker struct{}

func (telemetryHealthChecker) CheckHealth(ctx context.Context) error {
	if observability.TelemetrySystem == nil || observability.PrometheusExporter == nil {
		return errwrap.NewInternalError("telemetry system not initialized")
	}
	return nil
}

// providerHealthChecker validates completion provider configuration. A missing
// API key is not fatal for liveness, but readiness should surface it: every
// suggestion request would degrade to the no-results notice.
type providerHealthChecker struct {
	apiKey string
	model  string
}

func (p providerHealthChecker) CheckHealth(ctx context.Context) error {
	switch {
	case p.apiKey == "":
		return errwrap.NewConfigInvalidError("completion provider api key not configured")
	case p.model == "":
		return errwrap.NewConfigInvalidError("completion model not configured")
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server with graceful shutdown support.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Config reload (placeholder - restart recommended)

The server will cleanly shut down the HTTP server and flush logs on shutdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Configuration is invalid",
				errwrap.WrapConfigInvalid(cmd.Context(), err, "configuration is invalid"))
		}

		// Initialize server logger
		observability.InitServerLogger(AppName, cfg.Logging.Level)

		if cfg.Metrics.Enabled {
			metricsPort := cfg.Metrics.Port
			if metricsPort == 0 {
				metricsPort = 9090
			}

			if err := observability.InitMetrics(AppName, metricsPort); err != nil {
				ExitWithCode(observability.ServerLogger, foundry.ExitConfigInvalid, "Failed to initialize metrics",
					errwrap.WrapInternal(cmd.Context(), err, "metrics initialization failed"))
			}
		}

		metrics.SetServerStartTime(time.Now().Unix())

		observability.ServerLogger.Info("Initializing server",
			zap.String("service", AppName),
			zap.String("version", versionInfo.Version),
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
			zap.String("lookup_driver", cfg.Lookup.Driver),
			zap.Int("scan_max_results", cfg.Scan.MaxResults),
			zap.Int("scan_concurrency", cfg.Scan.Concurrency))

		// Wire the suggestion pipeline: completion service, availability
		// checker, and the bounded scan between them.
		svc, err := suggest.NewService(cfg.Suggest)
		if err != nil {
			ExitWithCode(observability.ServerLogger, foundry.ExitConfigInvalid, "Completion provider setup failed",
				errwrap.WrapConfigInvalid(cmd.Context(), err, "completion provider setup failed"))
		}

		chk, err := checker.New(cfg.Lookup)
		if err != nil {
			ExitWithCode(observability.ServerLogger, foundry.ExitConfigInvalid, "Lookup driver setup failed",
				errwrap.WrapConfigInvalid(cmd.Context(), err, "lookup driver setup failed"))
		}

		scan := &scanner.Scanner{
			Checker:       chk,
			MaxResults:    cfg.Scan.MaxResults,
			Concurrency:   cfg.Scan.Concurrency,
			LookupTimeout: cfg.Scan.LookupTimeout,
			Logger:        observability.ServerLogger,
		}

		suggestHandler := &handlers.SuggestHandler{
			Suggester: svc,
			Scanner:   scan,
		}

		// Initialize health manager
		hm := handlers.NewHealthManager(versionInfo.Version)
		hm.RegisterChecker("signal_handlers", signalHealthChecker{})
		if cfg.Metrics.Enabled {
			hm.RegisterChecker("telemetry", telemetryHealthChecker{})
		}
		hm.RegisterChecker("completion_provider", providerHealthChecker{
			apiKey: cfg.Suggest.APIKey,
			model:  cfg.Suggest.Model,
		})

		// Create server
		srv := server.New(cfg.Server.Host, cfg.Server.Port, suggestHandler, hm)

		// Get shutdown timeout from config
		shutdownTimeout := cfg.Server.ShutdownTimeout
		if shutdownTimeout == 0 {
			shutdownTimeout = 10 * time.Second
		}

		// Register graceful shutdown handlers (LIFO order - last registered, first executed)
		// Handler 1: Flush logger (executed last)
		signals.OnShutdown(func(ctx context.Context) error {
			observability.ServerLogger.Info("Flushing logger...")
			if err := observability.ServerLogger.Sync(); err != nil {
				// Sync errors are often benign (stdout/stderr already closed)
				observability.ServerLogger.Warn("Logger sync returned error (may be benign)",
					zap.Error(err))
			}
			return nil
		})

		// Handler 2: Shutdown HTTP server (executed first)
		signals.OnShutdown(func(ctx context.Context) error {
			observability.ServerLogger.Info("Shutting down HTTP server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return errwrap.WrapInternal(ctx, err, "server shutdown failed")
			}

			observability.ServerLogger.Info("HTTP server stopped gracefully")
			return nil
		})

		// Register config reload handler (SIGHUP)
		signals.OnReload(func(ctx context.Context) error {
			observability.ServerLogger.Info("Received SIGHUP: attempting config reload")

			if err := viper.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); ok {
					observability.ServerLogger.Info("No config file found - using defaults and environment variables")
					return nil
				}
				observability.ServerLogger.Error("Failed to reload config file",
					zap.String("file", viper.ConfigFileUsed()),
					zap.Error(err))
				return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
			}

			if _, err := config.Load(); err != nil {
				observability.ServerLogger.Error("Reloaded config failed validation",
					zap.Error(err))
				return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
			}

			observability.ServerLogger.Info("Configuration reloaded successfully",
				zap.String("file", viper.ConfigFileUsed()))

			// Scan and lookup settings take effect on restart; reload only
			// refreshes the shared config snapshot.
			return nil
		})

		// Enable double-tap force quit (Ctrl+C within 2 seconds)
		if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
			Window:  2 * time.Second,
			Message: "Press Ctrl+C again within 2 seconds to force quit",
		}); err != nil {
			observability.ServerLogger.Warn("Failed to enable double-tap force quit",
				zap.Error(err))
		}

		// Start server in background goroutine
		errChan := make(chan error, 1)
		go func() {
			observability.ServerLogger.Info("Starting HTTP server...",
				zap.String("host", cfg.Server.Host),
				zap.Int("port", cfg.Server.Port))
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				errChan <- err
			}
		}()

		// Start signal listener in background
		go func() {
			if err := signals.Listen(cmd.Context()); err != nil {
				observability.ServerLogger.Error("Signal handler error", zap.Error(err))
				errChan <- err
			}
		}()

		// Wait for error or shutdown completion
		if err := <-errChan; err != nil {
			return errwrap.WrapInternal(cmd.Context(), err, "server error")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}
