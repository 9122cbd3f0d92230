package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "refcheck/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// Thresholds holds the similarity cutoffs used by the field comparators.
type Thresholds struct {
	// Title is the minimum Jaccard similarity for a title match (default 0.90).
	Title float64 `json:"title" yaml:"title"`

	// Venue is the minimum Jaccard similarity for a venue match (default 0.80).
	Venue float64 `json:"venue" yaml:"venue"`
}

// DefaultThresholds returns the default comparator thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Title: 0.90, Venue: 0.80}
}

// CheckConfig holds settings for the batch reconciliation driver.
type CheckConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the lookup provider by registry name (default "auto").
	Provider string `json:"provider" yaml:"provider"`

	// RequestDelay is awaited after each provider dispatch (default
	// 250ms). It throttles outbound request rate; skipped entries
	// consume no delay.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// StaleAfterDays is the age in days after which an existing CheckLog
	// is eligible for re-check without --force (default 30).
	StaleAfterDays int `json:"stale_after_days" yaml:"stale_after_days"`

	// Force re-checks entries even when a fresh CheckLog exists.
	Force bool `json:"force" yaml:"force"`

	// DryRun suppresses CheckLog persistence.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Thresholds configures the field comparators.
	Thresholds Thresholds `json:"thresholds" yaml:"thresholds"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// Mailto is sent to Crossref and OpenAlex for polite-pool access.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`
}

// MatchConfig holds settings for the page-to-vault match cascade.
type MatchConfig struct {
	// TitleThreshold is the minimum Jaccard similarity for a fuzzy title
	// match (default 0.85).
	TitleThreshold float64 `json:"title_threshold" yaml:"title_threshold"`
}

// HistoryConfig holds settings for the check-history audit store.
type HistoryConfig struct {
	// DBPath is the SQLite database file. Empty disables history
	// recording.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// VaultConfig holds settings for the vault loader.
type VaultConfig struct {
	// Dir is the directory scanned for markdown entry files.
	Dir string `json:"dir" yaml:"dir"`
}

// Config groups all component configurations.
type Config struct {
	Check   CheckConfig   `json:"check" yaml:"check"`
	Match   MatchConfig   `json:"match" yaml:"match"`
	History HistoryConfig `json:"history" yaml:"history"`
	Vault   VaultConfig   `json:"vault" yaml:"vault"`
}
