// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/refcheck/pkg/types"
)

func TestFileConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("check.provider", "dblp")
	viper.Set("check.request_delay", "500ms")
	viper.Set("check.stale_after_days", 7)
	viper.Set("check.thresholds.title", 0.95)
	viper.Set("check.mailto", "user@example.com")
	viper.Set("match.title_threshold", 0.7)
	viper.Set("history.db_path", "audit.db")
	viper.Set("vault.dir", "/srv/vault")

	cfg := fileConfig()

	if cfg.Check.Provider != "dblp" {
		t.Errorf("Check.Provider = %q", cfg.Check.Provider)
	}
	if cfg.Check.RequestDelay != 500*time.Millisecond {
		t.Errorf("Check.RequestDelay = %v", cfg.Check.RequestDelay)
	}
	if cfg.Check.StaleAfterDays != 7 {
		t.Errorf("Check.StaleAfterDays = %d", cfg.Check.StaleAfterDays)
	}
	if cfg.Check.Thresholds.Title != 0.95 {
		t.Errorf("Check.Thresholds.Title = %v", cfg.Check.Thresholds.Title)
	}
	if cfg.Check.Mailto != "user@example.com" {
		t.Errorf("Check.Mailto = %q", cfg.Check.Mailto)
	}
	if cfg.Match.TitleThreshold != 0.7 {
		t.Errorf("Match.TitleThreshold = %v", cfg.Match.TitleThreshold)
	}
	if cfg.History.DBPath != "audit.db" {
		t.Errorf("History.DBPath = %q", cfg.History.DBPath)
	}
	if cfg.Vault.Dir != "/srv/vault" {
		t.Errorf("Vault.Dir = %q", cfg.Vault.Dir)
	}
}

func TestFileConfigAbsentKeys(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()

	cfg := fileConfig()
	if cfg != (types.Config{}) {
		t.Errorf("fileConfig with no file = %+v, want zero value", cfg)
	}
}

func settingTestCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("vault", ".", "")
	cmd.Flags().Duration("delay", 250*time.Millisecond, "")
	return cmd
}

func TestSettingPrecedence(t *testing.T) {
	t.Run("file value beats flag default", func(t *testing.T) {
		cmd := settingTestCmd()
		if got := stringSetting(cmd, "vault", "/srv/vault"); got != "/srv/vault" {
			t.Errorf("got %q, want file value", got)
		}
		if got := durationSetting(cmd, "delay", time.Second); got != time.Second {
			t.Errorf("got %v, want file value", got)
		}
	})

	t.Run("explicit flag beats file value", func(t *testing.T) {
		cmd := settingTestCmd()
		if err := cmd.Flags().Set("vault", "/flag/vault"); err != nil {
			t.Fatal(err)
		}
		if got := stringSetting(cmd, "vault", "/srv/vault"); got != "/flag/vault" {
			t.Errorf("got %q, want flag value", got)
		}
	})

	t.Run("absent file value falls back to flag default", func(t *testing.T) {
		cmd := settingTestCmd()
		if got := stringSetting(cmd, "vault", ""); got != "." {
			t.Errorf("got %q, want flag default", got)
		}
		if got := durationSetting(cmd, "delay", 0); got != 250*time.Millisecond {
			t.Errorf("got %v, want flag default", got)
		}
	})
}

func TestResolveThresholds(t *testing.T) {
	if got := resolveThresholds(types.Thresholds{}); got != types.DefaultThresholds() {
		t.Errorf("empty file thresholds = %+v, want defaults", got)
	}

	got := resolveThresholds(types.Thresholds{Title: 0.95})
	if got.Title != 0.95 {
		t.Errorf("Title = %v, want file value", got.Title)
	}
	if got.Venue != types.DefaultThresholds().Venue {
		t.Errorf("Venue = %v, want default", got.Venue)
	}
}
