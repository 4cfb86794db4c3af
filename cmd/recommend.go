package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/digifarmer-sync/internal"
	"github.com/spf13/cobra"
)

var (
	recommendConditions internal.CropConditions
	recommendHistory    bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend crops for your field",
	Long: `Ask the advisory service which crops suit your soil and location.

Delivered recommendations are saved. Offline, the newest saved
recommendation for the same conditions is shown, or general advice when
there is none.

Examples:
  digifarmer recommend --location Nashik --soil black --ph 6.8 --moisture medium
  digifarmer recommend --history`,
	RunE: func(cmd *cobra.Command, args []string) error {
		layer, err := openLayer()
		if err != nil {
			return err
		}
		defer layer.Close()

		ctx := context.Background()
		if recommendHistory {
			displayRecommendationHistory(cmd.OutOrStdout(), layer.Crops.History(ctx), time.Now())
			return nil
		}

		var rec internal.CropRecommendation
		err = internal.ShowProgress(ctx, "Finding crops...", func() error {
			var recErr error
			rec, recErr = layer.Crops.Recommend(ctx, recommendConditions)
			return recErr
		})
		if err != nil {
			return err
		}

		displayRecommendation(cmd.OutOrStdout(), rec)
		if rec.Offline {
			internal.PrintWarning(cmd.ErrOrStderr(), internal.OfflineNotice)
		}
		return nil
	},
}

func displayRecommendation(w io.Writer, rec internal.CropRecommendation) {
	c := rec.Conditions
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s, %s soil, pH %.1f, %s moisture", c.Location, c.SoilType, c.PHLevel, c.MoistureLevel)))

	if len(rec.RecommendedCrops) > 0 {
		fmt.Fprintf(w, "  Crops:       %s\n", strings.Join(rec.RecommendedCrops, ", "))
		fmt.Fprintf(w, "  Confidence:  %.0f%%\n", rec.ConfidenceScore*100)
	}
	if rec.Cached {
		fmt.Fprintln(w, dateStyle.Render("  (saved recommendation)"))
	}

	if rec.Advice != "" {
		fmt.Fprintln(w)
		style := replyStyle
		if rec.Offline && !rec.Cached {
			style = offlineReplyStyle
		}
		fmt.Fprintln(w, style.Render(rec.Advice))
	}
}

func displayRecommendationHistory(w io.Writer, entries []internal.CacheEntry[internal.CropRecommendation], now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, headerStyle.Render("No saved recommendations"))
		return
	}
	for _, e := range entries {
		r := e.Payload
		fmt.Fprintf(w, "%s  %-12s %-8s pH %4.1f  %s\n",
			dateStyle.Render(formatWhen(e.Timestamp, now)), r.Conditions.Location, r.Conditions.SoilType,
			r.Conditions.PHLevel, strings.Join(r.RecommendedCrops, ", "))
	}
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	f := recommendCmd.Flags()
	f.StringVar(&recommendConditions.Location, "location", "", "Field location")
	f.StringVar(&recommendConditions.SoilType, "soil", "", "Soil type (e.g. black, alluvial, red)")
	f.Float64Var(&recommendConditions.PHLevel, "ph", 7, "Soil pH")
	f.StringVar(&recommendConditions.MoistureLevel, "moisture", "", "Moisture level (low, medium, high)")
	f.BoolVar(&recommendHistory, "history", false, "Show saved recommendations instead")
}
