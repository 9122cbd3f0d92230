// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CheckStatus is the terminal state of a single verification.
type CheckStatus string

const (
	StatusConfirmed CheckStatus = "confirmed"
	StatusMismatch  CheckStatus = "mismatch"
	StatusNotFound  CheckStatus = "not_found"
	StatusError     CheckStatus = "error"
	StatusSkipped   CheckStatus = "skipped"
)

// Severity weights a detected mismatch for human review.
type Severity string

const (
	// SeverityMinor marks mismatches that are likely false positives
	// (punctuation drift, preprint-vs-publication year skew).
	SeverityMinor Severity = "minor"

	// SeverityMajor marks mismatches that need human review (wrong paper
	// matched, different DOI).
	SeverityMajor Severity = "major"
)

// FieldCheck is the verdict for a scalar field (title, venue, DOI).
// When Match is true the distance is zero; on a mismatch Distance holds
// the edit distance of the normalized forms when both sides are present.
type FieldCheck struct {
	Match    bool   `json:"match" yaml:"match"`
	Local    string `json:"local,omitempty" yaml:"local,omitempty"`
	Remote   string `json:"remote,omitempty" yaml:"remote,omitempty"`
	Distance int    `json:"distance,omitempty" yaml:"distance,omitempty"`
}

// YearCheck is the verdict for the year field. Diff is populated only
// when both sides parse to a year and they differ; it is signed
// (remote minus local).
type YearCheck struct {
	Match  bool   `json:"match" yaml:"match"`
	Local  string `json:"local,omitempty" yaml:"local,omitempty"`
	Remote string `json:"remote,omitempty" yaml:"remote,omitempty"`
	Diff   *int   `json:"year_diff,omitempty" yaml:"year_diff,omitempty"`
}

// AuthorDetail is the per-position comparison of one aligned author pair.
type AuthorDetail struct {
	Local      string `json:"local" yaml:"local"`
	Remote     string `json:"remote" yaml:"remote"`
	FirstMatch bool   `json:"first_match" yaml:"first_match"`
	LastMatch  bool   `json:"last_match" yaml:"last_match"`
}

// AuthorCheck is the verdict for the author list. Details is populated
// only when the local and remote counts are equal and non-zero; an
// index-aligned comparison is meaningless otherwise.
type AuthorCheck struct {
	CountMatch  bool           `json:"count_match" yaml:"count_match"`
	LocalCount  int            `json:"local_count" yaml:"local_count"`
	RemoteCount int            `json:"remote_count" yaml:"remote_count"`
	Details     []AuthorDetail `json:"details,omitempty" yaml:"details,omitempty"`
}

// FieldChecks bundles the five per-field verdicts of one comparison.
type FieldChecks struct {
	Title   FieldCheck  `json:"title" yaml:"title"`
	Authors AuthorCheck `json:"authors" yaml:"authors"`
	Year    YearCheck   `json:"year" yaml:"year"`
	Venue   FieldCheck  `json:"venue" yaml:"venue"`
	DOI     FieldCheck  `json:"doi" yaml:"doi"`
}

// RemoteValues is the snapshot of provider field values stored alongside
// a mismatch so the vault record can be corrected without re-querying.
type RemoteValues struct {
	Title   string   `json:"title,omitempty" yaml:"title,omitempty"`
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year    string   `json:"year,omitempty" yaml:"year,omitempty"`
	Venue   string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	DOI     string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	URL     string   `json:"url,omitempty" yaml:"url,omitempty"`
}

// ManualVerification is a human sign-off recorded on an entry. It is
// authored outside the engine and must be carried forward verbatim when
// a new CheckLog replaces the old one.
type ManualVerification struct {
	Verified bool      `json:"verified" yaml:"verified"`
	Date     time.Time `json:"date,omitempty" yaml:"date,omitempty"`
	Note     string    `json:"note,omitempty" yaml:"note,omitempty"`
}

// CheckLog is the persisted outcome of one verification. Each check
// produces a fresh CheckLog that fully replaces the previous one, except
// ManuallyVerified and CanonicalSource which are human-authored and
// preserved by the check engine.
type CheckLog struct {
	// CheckedAt is the time the check completed.
	CheckedAt time.Time `json:"checked_at" yaml:"checked_at"`

	// CheckedWith names the provider used, "auto:<actual>" when the
	// composite strategy resolved it.
	CheckedWith string `json:"checked_with" yaml:"checked_with"`

	// Status is the terminal state of the check.
	Status CheckStatus `json:"status" yaml:"status"`

	// MismatchSeverity is present iff Status is mismatch.
	MismatchSeverity Severity `json:"mismatch_severity,omitempty" yaml:"mismatch_severity,omitempty"`

	// PaperID is the provider-local id of the matched record.
	PaperID string `json:"paper_id,omitempty" yaml:"paper_id,omitempty"`

	// Err describes the failure when Status is error.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`

	// Fields holds the per-field verdicts for confirmed and mismatch
	// outcomes.
	Fields *FieldChecks `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Remote snapshots the provider's field values.
	Remote *RemoteValues `json:"remote,omitempty" yaml:"remote,omitempty"`

	// BibTeX is the raw external bibliographic record when captured.
	BibTeX string `json:"bibtex,omitempty" yaml:"bibtex,omitempty"`

	// ManuallyVerified is a human sign-off, preserved across re-checks.
	ManuallyVerified *ManualVerification `json:"manually_verified,omitempty" yaml:"manually_verified,omitempty"`

	// CanonicalSource is a human-chosen authoritative source, preserved
	// across re-checks.
	CanonicalSource string `json:"canonical_source,omitempty" yaml:"canonical_source,omitempty"`
}
