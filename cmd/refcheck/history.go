// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [entry-id]",
	Short: "Show the audit history of past checks",
	Long: `History lists past check outcomes from the SQLite audit database,
newest first, optionally filtered to a single entry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("history-db", "refcheck-history.db", "SQLite audit history database")
	historyCmd.Flags().Int("limit", 50, "maximum number of records to list")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath := stringSetting(cmd, "history-db", fileConfig().History.DBPath)
	limit, _ := cmd.Flags().GetInt("limit")

	entryID := ""
	if len(args) > 0 {
		entryID = args[0]
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(entryID, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "No check history.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-28s  %-10s  %-6s  %s\n", "Checked", "Entry", "Status", "Sev", "Provider")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, r := range records {
		fmt.Fprintf(os.Stdout, "%-20s  %-28s  %-10s  %-6s  %s\n",
			r.CheckedAt.Format("2006-01-02 15:04:05"), r.EntryID, r.Status, r.Severity, r.CheckedWith)
	}
	return nil
}
