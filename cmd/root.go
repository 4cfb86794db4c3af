package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/iksnae/digifarmer-sync/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	verbose    bool
	configFile string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"

	cfg *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "digifarmer",
	Short: "Offline-first client for the DigiFarmer advisory service",
	Long: `A CLI for the DigiFarmer advisory service that keeps working offline.

Chat sessions, profit analyses, market prices and price alerts are kept in a
local store. When the service cannot be reached a fixed offline reply is
recorded instead, so every question keeps its answer.

Quick Start:
  digifarmer chat "When should I sow wheat?"    # Ask a question
  digifarmer chat --image leaf.jpg               # Ask about a plant photo
  digifarmer list                                # List saved sessions
  digifarmer prices --crop Wheat                 # Refresh market prices
  digifarmer profit --crop Wheat --area 5 ...    # Estimate profit

Settings come from flags, DIGIFARMER_* environment variables and
~/.digifarmer.yaml, in that order.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.SetVerbose(verbose)

		v := internal.NewViper()
		if err := bindFlags(v, cmd.Root().PersistentFlags()); err != nil {
			return err
		}
		if configFile != "" {
			v.SetConfigFile(configFile)
		}

		loaded, err := internal.LoadConfig(v)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bindFlags lets explicitly set flags override env and config file values
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		internal.KeyStorePath:  "store",
		internal.KeyAPIBaseURL: "api",
		internal.KeyAPITimeout: "timeout",
		internal.KeyLanguage:   "language",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

// openLayer opens the local store and remote client using the loaded config
func openLayer() (*internal.Layer, error) {
	layer, err := internal.OpenLayer(cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return layer, nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&configFile, "config", "", "Config file (default is ./.digifarmer.yaml or ~/.digifarmer.yaml)")
	flags.String("store", "", "Path to the local store database")
	flags.String("api", "", "Base URL of the advisory service")
	flags.Duration("timeout", internal.DefaultRequestTimeout, "Timeout for each request to the service")
	flags.String("language", "", "Preferred reply language (e.g. en, hi, ta)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// formatWhen renders a timestamp relative to now, like the session list does
func formatWhen(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	t = t.Local()
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}
