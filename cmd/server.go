package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/frarold/internal/webhook"
)

func newServerCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve the fulfillment webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if addr == "" {
				addr = a.cfg.ListenAddr
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			ws := &webhook.Server{Fulfillment: a.svc, Log: a.log}
			a.log.Info("listening",
				zap.String("addr", addr),
				zap.String("search_mode", a.cfg.Search.Mode),
				zap.String("search_policy", a.cfg.Search.Policy),
				zap.Duration("menu_timeout", a.cfg.MenuAPI.Timeout),
			)
			return webhook.Start(ctx, addr, ws.Routes())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from LISTEN_ADDR)")
	return cmd
}
