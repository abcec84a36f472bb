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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/c360studio/steering/registry"
	"github.com/c360studio/steering/service"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var (
		httpAddr string
		natsURL  string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve document resolution over HTTP and optionally NATS",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if httpAddr != "" {
				cfg.Server.HTTPAddr = httpAddr
			}
			if natsURL != "" {
				cfg.Server.NATSURL = natsURL
			}
			if watch {
				cfg.Watch.Enabled = true
			}

			reg, _, err := loadRegistry(cfg)
			if err != nil {
				return err
			}

			logger := slog.Default()

			promReg := prometheus.NewRegistry()
			promReg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			svc := service.New(reg, cfg, logger, promReg)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Watch.Enabled {
				watcher, err := registry.NewWatcher(reg, cfg.Watch, logger)
				if err != nil {
					return err
				}
				if err := watcher.Start(ctx); err != nil {
					return err
				}
				defer watcher.Stop()
			}

			var natsEndpoint *service.NATSEndpoint
			if cfg.Server.NATSURL != "" {
				natsEndpoint, err = service.NewNATSEndpoint(cfg.Server.NATSURL, svc, logger)
				if err != nil {
					return err
				}
				if err := natsEndpoint.Start(); err != nil {
					return err
				}
				defer natsEndpoint.Stop()
			}

			mux := http.NewServeMux()
			svc.RegisterHTTPHandlers("/api/", mux)
			mux.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))

			server := &http.Server{
				Addr:              cfg.Server.HTTPAddr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server listening", "addr", cfg.Server.HTTPAddr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				logger.Info("Shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&httpAddr, "addr", "", "HTTP listen address (overrides config)")
	cmd.Flags().StringVar(&natsURL, "nats", "", "NATS server URL (overrides config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload on document changes")

	return cmd
}
