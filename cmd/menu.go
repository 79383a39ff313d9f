package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/frarold/internal/fulfillment"
)

func newMenuCmd() *cobra.Command {
	var hall, meal, date string

	c := &cobra.Command{
		Use:   "menu",
		Short: "Say what one dining hall is serving",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			out, err := a.svc.Fulfill(cmd.Context(), fulfillment.Request{
				Intent: fulfillment.IntentFoodList,
				Hall:   hall,
				Meal:   meal,
				Date:   date,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	c.Flags().StringVar(&hall, "hall", "", "dining hall (frary, frank, collins, scripps, pitzer, oldenburg)")
	c.Flags().StringVar(&meal, "meal", "", "breakfast, brunch, lunch or dinner")
	c.Flags().StringVar(&date, "date", "", "YYYY-MM-DD (default today)")
	_ = c.MarkFlagRequired("hall")
	_ = c.MarkFlagRequired("meal")
	return c
}
