// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/check"
	"github.com/pdiddy/refcheck/internal/history"
	"github.com/pdiddy/refcheck/internal/vault"
	"github.com/pdiddy/refcheck/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify vault entries against external catalogs",
	Long: `Check looks each vault entry up in the selected bibliographic catalog,
compares title, authors, year, venue, and DOI, classifies mismatches as minor
or major, and writes a check_log record back into the entry's frontmatter.

Entries with a fresh check_log are skipped unless --force is given or the log
is older than --stale-days. Long batches can be resumed with --skip,
--start-from, and --limit; completed entries are never re-done.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("vault", ".", "vault directory of markdown entry files")
	checkCmd.Flags().String("provider", "auto", "lookup provider (auto, dblp, crossref, semanticscholar, openalex)")
	checkCmd.Flags().Bool("force", false, "re-check entries with a fresh check_log")
	checkCmd.Flags().Bool("dry-run", false, "do not write check logs back")
	checkCmd.Flags().Duration("delay", 250*time.Millisecond, "delay between provider dispatches")
	checkCmd.Flags().Int("stale-days", check.DefaultStaleAfterDays, "re-check entries whose log is older than this many days")
	checkCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	checkCmd.Flags().Int("skip", 0, "skip the first N entries")
	checkCmd.Flags().Int("limit", 0, "check at most N entries (0 = no limit)")
	checkCmd.Flags().String("start-from", "", "start from the entry with this id")
	checkCmd.Flags().String("history-db", "", "SQLite audit history database (empty disables)")
	checkCmd.Flags().Bool("json", false, "output the summary as JSON")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	fc := fileConfig()

	vaultDir := stringSetting(cmd, "vault", fc.Vault.Dir)
	force, _ := cmd.Flags().GetBool("force")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	skip, _ := cmd.Flags().GetInt("skip")
	limit, _ := cmd.Flags().GetInt("limit")
	startFrom, _ := cmd.Flags().GetString("start-from")
	historyDB := stringSetting(cmd, "history-db", fc.History.DBPath)
	asJSON, _ := cmd.Flags().GetBool("json")

	userAgent := defaultUserAgent
	if fc.Check.UserAgent != "" {
		userAgent = fc.Check.UserAgent
	}

	cfg := types.CheckConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   durationSetting(cmd, "timeout", fc.Check.Timeout),
			UserAgent: userAgent,
		},
		Provider:       stringSetting(cmd, "provider", fc.Check.Provider),
		RequestDelay:   durationSetting(cmd, "delay", fc.Check.RequestDelay),
		StaleAfterDays: intSetting(cmd, "stale-days", fc.Check.StaleAfterDays),
		Force:          force,
		DryRun:         dryRun,
		Thresholds:     resolveThresholds(fc.Check.Thresholds),
	}

	client := &http.Client{Timeout: cfg.Timeout}
	registry := buildRegistry(client, cfg.HTTPConfig,
		loadedSecrets.Get("semantic-scholar-api-key", fc.Check.SemanticScholarAPIKey),
		loadedSecrets.Get("openalex-email", loadedSecrets.Get("crossref-mailto", fc.Check.Mailto)))

	prov, err := registry.Get(cfg.Provider)
	if err != nil {
		return err
	}

	v, err := vault.Open(vaultDir)
	if err != nil {
		return err
	}
	entries, err := v.Entries()
	if err != nil {
		return err
	}
	entries, err = sliceEntries(entries, startFrom, skip, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "No entries to check.")
		return nil
	}

	writeLog := check.WriteLogFunc(v.WriteCheckLog)
	if historyDB != "" {
		store, err := history.Open(historyDB)
		if err != nil {
			return err
		}
		defer store.Close()
		writeLog = func(entryID string, log *types.CheckLog) error {
			if err := store.Record(entryID, log); err != nil {
				fmt.Fprintf(os.Stderr, "warning: recording history for %s: %v\n", entryID, err)
			}
			return v.WriteCheckLog(entryID, log)
		}
	}

	runner := check.NewRunner(prov, cfg, writeLog, func(message string) {
		fmt.Fprintln(os.Stderr, message)
	})

	summary := runner.Run(cmd.Context(), entries)

	if asJSON {
		return check.WriteJSON(summary, os.Stdout)
	}
	check.WriteReport(summary, os.Stdout)
	return nil
}

// sliceEntries applies the resumability flags: --start-from, then
// --skip, then --limit.
func sliceEntries(entries []types.EntryMetadata, startFrom string, skip, limit int) ([]types.EntryMetadata, error) {
	if startFrom != "" {
		idx := -1
		for i, e := range entries {
			if e.ID == startFrom {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("start-from entry %q not found in vault", startFrom)
		}
		entries = entries[idx:]
	}
	if skip > 0 {
		if skip >= len(entries) {
			return nil, nil
		}
		entries = entries[skip:]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
