// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/refcheck/pkg/types"
)

// fileConfig assembles the loaded configuration file's values. Zero
// values mean the key is absent; flags supply the defaults and, when
// set explicitly, override the file.
func fileConfig() types.Config {
	var cfg types.Config

	cfg.Check.Timeout = viper.GetDuration("check.timeout")
	cfg.Check.UserAgent = viper.GetString("check.user_agent")
	cfg.Check.Provider = viper.GetString("check.provider")
	cfg.Check.RequestDelay = viper.GetDuration("check.request_delay")
	cfg.Check.StaleAfterDays = viper.GetInt("check.stale_after_days")
	cfg.Check.Thresholds.Title = viper.GetFloat64("check.thresholds.title")
	cfg.Check.Thresholds.Venue = viper.GetFloat64("check.thresholds.venue")
	cfg.Check.SemanticScholarAPIKey = viper.GetString("check.semantic_scholar_api_key")
	cfg.Check.Mailto = viper.GetString("check.mailto")

	cfg.Match.TitleThreshold = viper.GetFloat64("match.title_threshold")
	cfg.History.DBPath = viper.GetString("history.db_path")
	cfg.Vault.Dir = viper.GetString("vault.dir")

	return cfg
}

// The setting helpers resolve one value from its flag and its
// configuration-file counterpart: an explicitly set flag wins, then a
// present file value, then the flag's default.

func stringSetting(cmd *cobra.Command, flag, fileVal string) string {
	v, _ := cmd.Flags().GetString(flag)
	if !cmd.Flags().Changed(flag) && fileVal != "" {
		return fileVal
	}
	return v
}

func intSetting(cmd *cobra.Command, flag string, fileVal int) int {
	v, _ := cmd.Flags().GetInt(flag)
	if !cmd.Flags().Changed(flag) && fileVal != 0 {
		return fileVal
	}
	return v
}

func float64Setting(cmd *cobra.Command, flag string, fileVal float64) float64 {
	v, _ := cmd.Flags().GetFloat64(flag)
	if !cmd.Flags().Changed(flag) && fileVal != 0 {
		return fileVal
	}
	return v
}

func durationSetting(cmd *cobra.Command, flag string, fileVal time.Duration) time.Duration {
	v, _ := cmd.Flags().GetDuration(flag)
	if !cmd.Flags().Changed(flag) && fileVal != 0 {
		return fileVal
	}
	return v
}

// resolveThresholds layers file values over the comparator defaults.
func resolveThresholds(fileVal types.Thresholds) types.Thresholds {
	th := types.DefaultThresholds()
	if fileVal.Title > 0 {
		th.Title = fileVal.Title
	}
	if fileVal.Venue > 0 {
		th.Venue = fileVal.Venue
	}
	return th
}
