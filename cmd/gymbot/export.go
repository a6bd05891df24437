// ABOUTME: CLI commands for exporting and importing exercise records.
// ABOUTME: Supports JSON, YAML, and Markdown export and JSON import.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/gymbot/internal/export"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export exercise records",
	Long: `Export every exercise record in the record store.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export grouped by category and exercise
  markdown   Markdown grid tables, one per category

EXAMPLES:

  gymbot export json                 # Export all records as JSON
  gymbot export json -o backup.json  # Save to file
  gymbot export yaml
  gymbot export markdown -o gym.md`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := client.ListExercises(cmd.Context())
		if err != nil {
			return storeErr(err)
		}
		data := export.New(records, time.Now())

		var out []byte
		switch args[0] {
		case "json":
			out, err = export.JSON(data)
		case "yaml":
			out, err = export.YAML(data)
		case "markdown", "md":
			out = []byte(export.Markdown(data))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, out, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported %d records to %s\n", len(records), exportOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import exercise records from JSON",
	Long: `Import exercise records from a JSON file.

Accepts a 'gymbot export json' file or a bare JSON array of records. The
record store assigns new ids. Records whose week and exercise already
exist are skipped.

EXAMPLES:

  gymbot import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		data, err := export.ParseJSON(raw)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		summary, err := export.Import(cmd.Context(), client, data)
		if err != nil {
			return fmt.Errorf("import failed after %d records: %w", summary.Created, storeErr(err))
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Imported %d records", summary.Created)
		if summary.Skipped > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), " (%d already present)", summary.Skipped)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
