// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the refcheck CLI, which verifies
// the bibliographic entries of a personal content vault against
// external catalogs (DBLP, Crossref, Semantic Scholar, OpenAlex).
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/refcheck/internal/provider"
	"github.com/pdiddy/refcheck/internal/secrets"
	"github.com/pdiddy/refcheck/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "refcheck/0.1"
)

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the refcheck CLI.
var rootCmd = &cobra.Command{
	Use:   "refcheck",
	Short: "Verify vault reference entries against bibliographic catalogs",
	Long: `refcheck verifies bibliographic reference entries (title, authors, year,
venue, DOI) held in a markdown vault against authoritative external catalogs:
DBLP, Crossref, Semantic Scholar, and OpenAlex.

Each entry's verification outcome is written back into its frontmatter as a
check_log record and optionally appended to a SQLite audit history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./refcheck.yaml or ~/.config/refcheck/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("refcheck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "refcheck"))
		}
	}

	viper.SetEnvPrefix("REFCHECK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildRegistry constructs the provider registry in the auto-priority
// order: dblp, crossref, semanticscholar, openalex, then the composite
// itself.
func buildRegistry(client *http.Client, httpCfg types.HTTPConfig, s2Key, mailto string) *provider.Registry {
	dblp := &provider.DBLP{Client: client, Cfg: httpCfg}
	crossref := &provider.Crossref{Client: client, Cfg: httpCfg, Mailto: mailto}
	s2 := &provider.SemanticScholar{Client: client, Cfg: httpCfg, APIKey: s2Key}
	openalex := &provider.OpenAlex{Client: client, Cfg: httpCfg, Email: mailto}
	auto := provider.NewAuto(dblp, crossref, s2, openalex)
	return provider.NewRegistry(dblp, crossref, s2, openalex, auto)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
