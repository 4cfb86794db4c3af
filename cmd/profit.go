package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/digifarmer-sync/internal"
	"github.com/spf13/cobra"
)

var (
	profitCrop     string
	profitLocation string
	profitInput    internal.ProfitInput
	profitLocal    bool
	profitHistory  bool
)

var (
	gainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

var profitCmd = &cobra.Command{
	Use:   "profit",
	Short: "Estimate profit for a crop",
	Long: `Compute cost, revenue and profit for a crop from per-acre costs, yield
and price. When the service is reachable its analysis is added; either way
the result is saved to the profit history.

Yield is in quintals per acre (1 quintal = 100 kg); price is per kg.

Examples:
  digifarmer profit --crop Wheat --area 2 --yield 25 --price 25.5 \
    --seeds 3000 --fertilizer 8000 --irrigation 12000 --labor 15000
  digifarmer profit --history`,
	RunE: func(cmd *cobra.Command, args []string) error {
		layer, err := openLayer()
		if err != nil {
			return err
		}
		defer layer.Close()

		ctx := context.Background()
		if profitHistory {
			displayProfitHistory(cmd.OutOrStdout(), layer.Profit.History(ctx), time.Now())
			return nil
		}
		if profitCrop == "" {
			return fmt.Errorf("--crop is required")
		}

		analyzer := layer.Profit
		if profitLocal {
			analyzer = internal.NewProfitAnalyzer(nil, layer.ProfitHistory, layer.Clock)
		}

		var analysis internal.ProfitAnalysis
		err = internal.ShowProgress(ctx, "Analyzing profit...", func() error {
			var analyzeErr error
			analysis, analyzeErr = analyzer.Analyze(ctx, profitCrop, profitLocation, profitInput)
			return analyzeErr
		})
		if err != nil {
			return err
		}

		displayProfit(cmd.OutOrStdout(), analysis)
		if analysis.Offline && !profitLocal {
			internal.PrintWarning(cmd.ErrOrStderr(), "Service unavailable; showing the local estimate only")
		}
		return nil
	},
}

func displayProfit(w io.Writer, a internal.ProfitAnalysis) {
	r := a.Result
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s, %.2f acre(s)", a.Crop, a.AreaAcres)))
	fmt.Fprintf(w, "  Total cost:    %.2f\n", r.TotalCost)
	fmt.Fprintf(w, "  Total yield:   %.0f kg\n", r.TotalYieldKg)
	fmt.Fprintf(w, "  Revenue:       %.2f\n", r.TotalRevenue)

	net := fmt.Sprintf("%.2f", r.NetProfit)
	if r.NetProfit < 0 {
		net = lossStyle.Render(net)
	} else {
		net = gainStyle.Render(net)
	}
	fmt.Fprintf(w, "  Net profit:    %s\n", net)

	if margin, ok := r.Margin(); ok {
		fmt.Fprintf(w, "  Margin:        %.2f%%\n", margin)
	} else {
		fmt.Fprintln(w, "  Margin:        n/a (no revenue)")
	}

	if a.AIAnalysis != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, replyStyle.Render(a.AIAnalysis))
	}
}

func displayProfitHistory(w io.Writer, entries []internal.CacheEntry[internal.ProfitAnalysis], now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, headerStyle.Render("No saved profit analyses"))
		return
	}
	for _, e := range entries {
		a := e.Payload
		fmt.Fprintf(w, "%s  %-12s %8.2f acre(s)  net %12.2f\n",
			dateStyle.Render(formatWhen(e.Timestamp, now)), a.Crop, a.AreaAcres, a.Result.NetProfit)
	}
}

func init() {
	rootCmd.AddCommand(profitCmd)
	f := profitCmd.Flags()
	f.StringVar(&profitCrop, "crop", "", "Crop name")
	f.StringVar(&profitLocation, "location", "", "Field location sent with the prediction request")
	f.Float64Var(&profitInput.AreaAcres, "area", 0, "Area in acres")
	f.Float64Var(&profitInput.YieldPerAcre, "yield", 0, "Expected yield in quintals per acre")
	f.Float64Var(&profitInput.PricePerKg, "price", 0, "Expected price per kg")
	f.Float64Var(&profitInput.CostPerAcre.Seeds, "seeds", 0, "Seed cost per acre")
	f.Float64Var(&profitInput.CostPerAcre.Fertilizer, "fertilizer", 0, "Fertilizer cost per acre")
	f.Float64Var(&profitInput.CostPerAcre.Irrigation, "irrigation", 0, "Irrigation cost per acre")
	f.Float64Var(&profitInput.CostPerAcre.Labor, "labor", 0, "Labor cost per acre")
	f.Float64Var(&profitInput.CostPerAcre.Pesticides, "pesticides", 0, "Pesticide cost per acre")
	f.Float64Var(&profitInput.CostPerAcre.Equipment, "equipment", 0, "Equipment cost per acre")
	f.Float64Var(&profitInput.CostPerAcre.Transportation, "transportation", 0, "Transportation cost per acre")
	f.BoolVar(&profitLocal, "local", false, "Skip the service and compute locally")
	f.BoolVar(&profitHistory, "history", false, "Show saved profit analyses instead")
}
