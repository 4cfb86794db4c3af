package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/digifarmer-sync/internal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check the local store and the advisory service",
	Long: `Check the health of digifarmer by verifying:
  • The local store opens and answers queries
  • The advisory service responds on its root endpoint

An unreachable service is reported as a warning, since everything keeps
working offline. A broken local store fails the check.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("DigiFarmer Health Check"))
		fmt.Fprintln(out)

		layer, err := openLayer()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Local store:"), err)
			return err
		}
		defer layer.Close()

		var (
			storeErr       error
			serviceFailure *internal.Failure
			storeTook      time.Duration
			serviceTook    time.Duration
		)

		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			start := time.Now()
			storeErr = layer.Store.Ping(ctx)
			storeTook = time.Since(start)
			return nil
		})
		g.Go(func() error {
			start := time.Now()
			serviceFailure = layer.Client.Ping(ctx)
			serviceTook = time.Since(start)
			return nil
		})
		_ = g.Wait()

		if storeErr != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Local store:"), storeErr)
		} else {
			fmt.Fprintln(out, successStyle.Render("✅ Local store OK"))
		}
		if healthcheckVerbose {
			fmt.Fprintf(out, "   Path: %s (%s)\n", cfg.StorePath, storeTook.Round(time.Millisecond))
		}

		if serviceFailure != nil {
			fmt.Fprintln(out, warningStyle.Render("⚠️  Advisory service unreachable:"), serviceFailure)
		} else {
			fmt.Fprintln(out, successStyle.Render("✅ Advisory service reachable"))
		}
		if healthcheckVerbose {
			fmt.Fprintf(out, "   URL: %s (%s)\n", cfg.APIBaseURL, serviceTook.Round(time.Millisecond))
		}

		if storeErr != nil {
			return fmt.Errorf("local store check failed: %w", storeErr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "details", false, "Show paths and timings")
}
