package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/skyclock/internal/httpapi"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API with /healthz and /metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, err := a.cfg.Calculator()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			srv, err := httpapi.New(httpapi.Options{
				Logger:       a.logger,
				Calculator:   calc,
				Registry:     reg,
				Location:     a.location(),
				RateLimit:    a.cfg.Server.RateLimit,
				Burst:        a.cfg.Server.Burst,
				ReadTimeout:  a.cfg.GetReadTimeout(),
				WriteTimeout: a.cfg.GetWriteTimeout(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("Serving skyclock API",
				zap.String("addr", a.cfg.Server.Addr),
				zap.Float64("rate_limit", a.cfg.Server.RateLimit))
			return srv.ListenAndServe(ctx, a.cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides server.addr)")
	return cmd
}
