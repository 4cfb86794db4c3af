package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/iksnae/digifarmer-sync/internal"
	"github.com/spf13/cobra"
)

var (
	priceCrops   []string
	pricesCached bool
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Show market prices",
	Long: `Fetch the latest market prices and keep them for offline use.

Crops that cannot be fetched keep their last saved prices. Use --cached to
show saved prices without contacting the service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		layer, err := openLayer()
		if err != nil {
			return err
		}
		defer layer.Close()

		ctx := context.Background()
		if pricesCached {
			displaySnapshots(cmd.OutOrStdout(), layer.Market.Cached(ctx), time.Now())
			return nil
		}

		var refresh internal.MarketRefresh
		_ = internal.ShowProgress(ctx, "Fetching market prices...", func() error {
			refresh = layer.Market.Refresh(ctx, priceCrops)
			return nil
		})

		if refresh.Stale() {
			crops := make([]string, 0, len(refresh.Failed))
			for crop := range refresh.Failed {
				crops = append(crops, crop)
			}
			sort.Strings(crops)
			internal.PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("Could not refresh %v; showing saved prices where available", crops))
		}
		displaySnapshots(cmd.OutOrStdout(), refresh.Snapshots, time.Now())
		return nil
	},
}

func displaySnapshots(out io.Writer, snapshots []internal.CacheEntry[internal.MarketSnapshot], now time.Time) {
	if len(snapshots) == 0 {
		fmt.Fprintln(out, headerStyle.Render("No market prices saved"))
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Crop")+"\t"+titleStyle.Render("Market")+"\t"+titleStyle.Render("Location")+"\t"+titleStyle.Render("Price/kg")+"\t"+titleStyle.Render("Fetched")+"\t")
	for _, entry := range snapshots {
		fetched := dateStyle.Render(formatWhen(entry.Timestamp, now))
		if len(entry.Payload.Prices) == 0 {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", entry.Payload.Crop, "—", "—", "—", fetched)
			continue
		}
		for _, p := range entry.Payload.Prices {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
				p.CropName, p.MarketName, p.Location,
				countStyle.Render(fmt.Sprintf("%.2f", p.PricePerKg)), fetched)
		}
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(pricesCmd)
	pricesCmd.Flags().StringSliceVar(&priceCrops, "crop", nil, "Crop to fetch (repeatable; all crops when omitted)")
	pricesCmd.Flags().BoolVar(&pricesCached, "cached", false, "Show saved prices without contacting the service")
}
