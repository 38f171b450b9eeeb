package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dshills/gochunk/internal/executor"
	"github.com/dshills/gochunk/internal/mcp"
)

// newServeCommand returns the command that runs the MCP server on stdio
func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Run the MCP tool server on stdin/stdout. Logs are written to stderr.
When --metrics-addr is set, Prometheus metrics are served over HTTP at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())

			server, err := mcp.NewServer(cfg,
				mcp.WithLogger(log),
				mcp.WithMetrics(executor.NewMetrics(reg)),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr := v.GetString("metrics-addr"); addr != "" {
				shutdown := serveMetrics(addr, reg, log)
				defer shutdown()
			}

			log.Info("gochunk MCP server starting", zap.String("version", version))
			if err := server.Listen(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info("server stopped")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("metrics-addr", "", "host:port to serve Prometheus metrics on (disabled when empty)")
	mustBindPFlag(v, "metrics-addr", flags.Lookup("metrics-addr"))
	mustBindEnv(v, "metrics-addr", "GOCHUNK_METRICS_ADDR")

	return cmd
}

// serveMetrics exposes reg over HTTP and returns a shutdown func
func serveMetrics(addr string, reg *prometheus.Registry, log *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("metrics server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
