// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the refcheck pipeline:
// vault entries, provider lookup results, per-field comparison verdicts,
// and the persisted CheckLog record.
package types

// EntryMetadata is the local bibliographic record awaiting verification.
// It is an immutable input to a check; the engine never mutates it in
// place, it only produces the next CheckLog for the owning vault entry.
type EntryMetadata struct {
	// ID is the stable vault identifier (e.g. the note filename stem).
	ID string `json:"id" yaml:"id"`

	// Title is the work's title as recorded in the vault.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in vault order. May be empty.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is the recorded publication year. Vault frontmatter stores it
	// as either a bare number or a string; both decode into this field.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	// Venue is the journal, conference, or publisher name.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// DOI is the recorded DOI, in any of the accepted prefix forms.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL is the canonical link recorded for the work.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Key is the citation key used when exporting BibTeX.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// CheckLog is the outcome of the most recent verification, if any.
	CheckLog *CheckLog `json:"check_log,omitempty" yaml:"check_log,omitempty"`
}

// PaperMetadata is a provider's view of a matched paper. It is transient:
// discarded after comparison except for the fields copied into
// CheckLog.Remote.
type PaperMetadata struct {
	// ID is the provider-local identifier (DBLP key, DOI, S2 paper id,
	// OpenAlex work id).
	ID string `json:"id" yaml:"id"`

	Title    string   `json:"title" yaml:"title"`
	Authors  []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year     string   `json:"year,omitempty" yaml:"year,omitempty"`
	Venue    string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	DOI      string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	Abstract string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	URL      string   `json:"url,omitempty" yaml:"url,omitempty"`

	// BibTeX is the raw bibliographic record when the provider exposes
	// one (DBLP's canonical export).
	BibTeX string `json:"bibtex,omitempty" yaml:"bibtex,omitempty"`
}

// LookupResult is the ephemeral response of a single provider lookup. It
// is never persisted directly; the check engine converts it into a
// CheckLog.
type LookupResult struct {
	// Found reports whether the provider matched the entry to a record.
	Found bool `json:"found"`

	// Paper holds the matched record when Found is true.
	Paper *PaperMetadata `json:"paper,omitempty"`

	// Err describes a provider-level failure (network error, non-2xx
	// response). Empty for clean not-found outcomes.
	Err string `json:"error,omitempty"`

	// Provider names the adapter that produced this result. The auto
	// composite rewrites it to "auto:<actual>".
	Provider string `json:"provider"`
}
