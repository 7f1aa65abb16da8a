package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/uyouii/score-predictor/predictor"
	"github.com/uyouii/score-predictor/web"
	"go.uber.org/zap"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive score form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}

			opts, err := cfg.PredictorOptions()
			if err != nil {
				return err
			}

			srv, err := web.New(web.Config{
				Addr:          cfg.Server.Addr,
				DefaultScores: cfg.DefaultScores,
				Logger:        zap.L(),
			}, predictor.New(opts, newSource(cfg.Predictor.Seed)))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides server.addr")
	return cmd
}
