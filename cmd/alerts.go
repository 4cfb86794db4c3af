package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/iksnae/digifarmer-sync/internal"
	"github.com/spf13/cobra"
)

var (
	alertCrop  string
	alertPrice float64
	alertAbove bool
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Manage price alerts",
	Long:  `Save and list price alerts. Alerts are stored locally; they are not checked against prices.`,
}

var alertsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a price alert",
	RunE: func(cmd *cobra.Command, args []string) error {
		layer, err := openLayer()
		if err != nil {
			return err
		}
		defer layer.Close()

		alerts, err := layer.Alerts.Add(context.Background(), internal.PriceAlert{
			Crop:        alertCrop,
			TargetPrice: alertPrice,
			IsAbove:     alertAbove,
		})
		if err != nil {
			return err
		}
		internal.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Saved alert (%d total)", len(alerts)))
		return nil
	},
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved price alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		layer, err := openLayer()
		if err != nil {
			return err
		}
		defer layer.Close()

		displayAlerts(cmd.OutOrStdout(), layer.Alerts.List(context.Background()))
		return nil
	},
}

func displayAlerts(w io.Writer, alerts []internal.PriceAlert) {
	if len(alerts) == 0 {
		fmt.Fprintln(w, headerStyle.Render("No price alerts"))
		return
	}
	for i, a := range alerts {
		direction := "below"
		if a.IsAbove {
			direction = "above"
		}
		fmt.Fprintf(w, "%s %s %s %s\n",
			idStyle.Render(fmt.Sprintf("%d.", i+1)), a.Crop, direction, countStyle.Render(fmt.Sprintf("%.2f", a.TargetPrice)))
	}
}

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsAddCmd, alertsListCmd)

	alertsAddCmd.Flags().StringVar(&alertCrop, "crop", "", "Crop to watch")
	alertsAddCmd.Flags().Float64Var(&alertPrice, "price", 0, "Target price per kg")
	alertsAddCmd.Flags().BoolVar(&alertAbove, "above", false, "Alert when the price rises above the target (default: falls below)")
	_ = alertsAddCmd.MarkFlagRequired("crop")
	_ = alertsAddCmd.MarkFlagRequired("price")
}
