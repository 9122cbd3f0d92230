// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/vault"
	"github.com/pdiddy/refcheck/internal/vaultmatch"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Find the vault entry a web page corresponds to",
	Long: `Match resolves a visited page to a vault entry through a cascade of
strategies, stopping at the first hit: exact URL, DOI extracted from the URL,
arXiv id extracted from the URL, then fuzzy title similarity.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().String("vault", ".", "vault directory of markdown entry files")
	matchCmd.Flags().String("url", "", "visited page URL")
	matchCmd.Flags().String("title", "", "visited page title")
	matchCmd.Flags().Float64("title-threshold", vaultmatch.DefaultTitleThreshold, "minimum title similarity for a fuzzy match")
	matchCmd.Flags().Bool("json", false, "output the match as JSON")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	fc := fileConfig()
	vaultDir := stringSetting(cmd, "vault", fc.Vault.Dir)
	pageURL, _ := cmd.Flags().GetString("url")
	pageTitle, _ := cmd.Flags().GetString("title")
	threshold := float64Setting(cmd, "title-threshold", fc.Match.TitleThreshold)
	asJSON, _ := cmd.Flags().GetBool("json")

	if pageURL == "" && pageTitle == "" {
		return fmt.Errorf("provide --url and/or --title")
	}

	v, err := vault.Open(vaultDir)
	if err != nil {
		return err
	}
	entries, err := v.Entries()
	if err != nil {
		return err
	}

	result, found := vaultmatch.MatchPage(pageURL, pageTitle, entries, threshold)
	if !found {
		fmt.Fprintln(os.Stdout, "No matching entry.")
		return nil
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	fmt.Fprintf(os.Stdout, "%s (%s match, confidence %.2f)\n", result.Entry.ID, result.Type, result.Confidence)
	return nil
}
