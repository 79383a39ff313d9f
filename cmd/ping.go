package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newPingCmd() *cobra.Command {
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "ping",
		Short: "Check that the menu API is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := a.menus.Ping(ctx, a.svc.Dates.Resolve("")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "menu API at %s: ok\n", a.cfg.MenuAPI.BaseURL)
			return nil
		},
	}

	c.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "give up after this long")
	return c
}
