package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/micaelyMelo/OficinaMecanica/internal/export"
)

var exportCmd = &cobra.Command{
	Use:     "export <sqlite|yaml|xlsx> [file]",
	GroupID: "tools",
	Short:   "Export all records to SQLite, YAML or a spreadsheet",
	Long: `Write a snapshot of clients, vehicles and service orders.

  sqlite  tables clients, vehicles and orders in a SQLite database; an
          existing export file is replaced in one transaction
  yaml    one document with the three collections
  xlsx    one sheet per collection with owner and vehicle resolved

Without a file, yaml and xlsx are written to stdout.

The record files are never modified.`,
	Example: `  oficina export sqlite oficina.db
  oficina export yaml > backup.yaml
  oficina export xlsx relatorio.xlsx`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{string(export.FormatSQLite), string(export.FormatYAML), string(export.FormatXLSX)},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := export.Format(args[0])
		snap := export.Take(store, now())
		exp := export.New(logger)

		if len(args) == 1 {
			switch {
			case format == export.FormatSQLite:
				return fmt.Errorf("export %s needs an output file", format)
			case format == export.FormatXLSX && isTerminalOut(cmd):
				return fmt.Errorf("refusing to write a spreadsheet to the terminal; give an output file")
			}
			_, err := exp.To(cmd.OutOrStdout(), format, snap)
			return err
		}

		path := args[1]
		st, err := exp.ToFile(cmd.Context(), format, path, snap)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %s to %s\n", render.Pass("✓"), st, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func isTerminalOut(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
