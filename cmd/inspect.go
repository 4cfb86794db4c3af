package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/iksnae/digifarmer-sync/internal"
	"github.com/spf13/cobra"
)

var (
	inspectFormat string
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [key-prefix]",
	Short: "Inspect the local store",
	Long: `List the keys in the local store with the schema, save time and item
count of each value. Values that cannot be read are flagged.

Examples:
  digifarmer inspect                   # Every key
  digifarmer inspect session:          # Only sessions
  digifarmer inspect --format json     # Machine readable`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if len(args) > 0 {
			prefix = args[0]
		}

		layer, err := openLayer()
		if err != nil {
			return err
		}
		defer layer.Close()

		infos, err := inspectStore(context.Background(), layer.Store, prefix)
		if err != nil {
			return err
		}

		switch inspectFormat {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		case "text":
			displayValueInfos(cmd.OutOrStdout(), infos)
			return nil
		default:
			return fmt.Errorf("unsupported format: %s (supported: text, json)", inspectFormat)
		}
	},
}

func inspectStore(ctx context.Context, store *internal.SQLiteStore, prefix string) ([]internal.ValueInfo, error) {
	keys, err := store.Keys(ctx, prefix)
	if err != nil {
		return nil, err
	}

	infos := make([]internal.ValueInfo, 0, len(keys))
	for _, key := range keys {
		raw, ok, err := store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		infos = append(infos, internal.DescribeValue(key, raw))
	}
	return infos, nil
}

func displayValueInfos(out io.Writer, infos []internal.ValueInfo) {
	if len(infos) == 0 {
		fmt.Fprintln(out, headerStyle.Render("Store is empty"))
		return
	}

	now := time.Now()
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Key")+"\t"+titleStyle.Render("Schema")+"\t"+titleStyle.Render("Items")+"\t"+titleStyle.Render("Bytes")+"\t"+titleStyle.Render("Saved")+"\t")
	for _, info := range infos {
		schema := info.Schema
		if info.Problem != "" {
			schema = warningStyle.Render("⚠️  " + info.Problem)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t\n",
			info.Key, schema, info.Items, info.Bytes, dateStyle.Render(formatWhen(info.SavedAt, now)))
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text", "Output format (text, json)")
}
