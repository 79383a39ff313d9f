package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/frarold/internal/fulfillment"
)

func newSearchCmd() *cobra.Command {
	var item, meal, date string

	c := &cobra.Command{
		Use:   "search",
		Short: "Find which dining halls serve a food",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			out, err := a.svc.Fulfill(cmd.Context(), fulfillment.Request{
				Intent:   fulfillment.IntentFoodSearch,
				FoodItem: item,
				Meal:     meal,
				Date:     date,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	c.Flags().StringVar(&item, "item", "", "food to look for")
	c.Flags().StringVar(&meal, "meal", "", "breakfast, brunch, lunch or dinner")
	c.Flags().StringVar(&date, "date", "", "YYYY-MM-DD (default today)")
	_ = c.MarkFlagRequired("item")
	_ = c.MarkFlagRequired("meal")
	return c
}
