package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/digifarmer-sync/internal"
	"github.com/iksnae/digifarmer-sync/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
	sessionID string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions to file",
	Long: `Export chat sessions to various formats (jsonl, md, yaml, json).

Exports every saved session unless --session is given. Without --output the
result is written to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		layer, err := openLayer()
		if err != nil {
			return err
		}
		defer layer.Close()

		ctx := context.Background()
		ids := []string{sessionID}
		if sessionID == "" {
			if ids, err = layer.Sessions.List(ctx); err != nil {
				return err
			}
		}
		if len(ids) == 0 {
			internal.PrintInfo(cmd.ErrOrStderr(), "No sessions to export")
			return nil
		}

		if outputDir == "" {
			for _, id := range ids {
				if err := exporter.Export(layer.Sessions.Load(ctx, id), cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("failed to export session %s: %w", id, err)
				}
			}
			return nil
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		exported := 0
		for _, id := range ids {
			path, err := exportPath(outputDir, id, exporter.Extension())
			if err != nil {
				internal.LogWarn("Skipping session: %v", err)
				continue
			}
			if err := exportToFile(exporter, layer.Sessions.Load(ctx, id), path); err != nil {
				internal.LogWarn("Failed to export session %s: %v", id, err)
				continue
			}
			exported++
			internal.LogDebug("Exported %s", path)
		}

		internal.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Exported %d session(s) to %s", exported, outputDir))
		return nil
	},
}

// exportPath returns the file for a session inside dir. Ids that would
// leave dir are refused.
func exportPath(dir, id, ext string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) || filepath.Base(id) != id {
		return "", fmt.Errorf("session id %q cannot be used as a file name", id)
	}
	return filepath.Join(dir, id+"."+ext), nil
}

func exportToFile(exporter export.Exporter, session *internal.Session, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := exporter.Export(session, file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format ("+strings.Join(export.Formats(), ", ")+")")
	exportCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (stdout when empty)")
	exportCmd.Flags().StringVar(&sessionID, "session", "", "Export only this session")
}
