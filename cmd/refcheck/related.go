// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/vault"
	"github.com/pdiddy/refcheck/internal/vaultmatch"
)

var relatedCmd = &cobra.Command{
	Use:   "related [entry-id]",
	Short: "List vault entries related to an entry",
	Long: `Related scores other vault entries against the given entry by shared
authors, venue similarity, matching year, and moderate title similarity, and
lists the highest-scoring candidates.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelated,
}

func init() {
	relatedCmd.Flags().String("vault", ".", "vault directory of markdown entry files")
	relatedCmd.Flags().Int("limit", 10, "maximum number of related entries to list")

	rootCmd.AddCommand(relatedCmd)
}

func runRelated(cmd *cobra.Command, args []string) error {
	fc := fileConfig()
	vaultDir := stringSetting(cmd, "vault", fc.Vault.Dir)
	limit, _ := cmd.Flags().GetInt("limit")

	v, err := vault.Open(vaultDir)
	if err != nil {
		return err
	}
	entries, err := v.Entries()
	if err != nil {
		return err
	}

	target := -1
	for i := range entries {
		if entries[i].ID == args[0] {
			target = i
			break
		}
	}
	if target < 0 {
		return fmt.Errorf("entry %q not found in vault", args[0])
	}

	related := vaultmatch.FindRelated(entries[target], entries, limit)
	if len(related) == 0 {
		fmt.Fprintln(os.Stdout, "No related entries.")
		return nil
	}
	for _, r := range related {
		fmt.Fprintf(os.Stdout, "%6.2f  %s  %s\n", r.Score, r.Entry.ID, r.Entry.Title)
	}
	return nil
}
