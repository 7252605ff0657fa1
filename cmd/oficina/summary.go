package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	GroupID: "records",
	Short:   "Show record counts and orders per status",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		clients, vehicles, _ := store.Counts()
		fmt.Fprint(cmd.OutOrStdout(), render.Summary(clients, vehicles, store.Orders().CountByStatus()))
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
