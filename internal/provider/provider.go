// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider implements lookups against external bibliographic
// catalogs (DBLP, Crossref, Semantic Scholar, OpenAlex) behind a uniform
// Provider interface, plus an explicit registry and a composite "auto"
// provider that tries catalogs in priority order.
package provider

import (
	"context"
	"fmt"

	"github.com/pdiddy/refcheck/internal/normalize"
	"github.com/pdiddy/refcheck/pkg/types"
)

// Provider looks a vault entry up in one external catalog. Lookup never
// panics and never returns a Go error: adapter failures are carried in
// LookupResult.Err so one bad catalog cannot abort a batch.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, entry types.EntryMetadata) types.LookupResult
}

// minTitleSimilarity is the Jaccard floor below which a search hit is
// treated as not found even when the catalog returned results.
const minTitleSimilarity = 0.7

// bestTitleMatch selects the candidate whose title is most similar to
// the local title, requiring at least minTitleSimilarity. The first
// maximal candidate in iteration order wins ties. Returns nil when no
// candidate clears the floor.
func bestTitleMatch(localTitle string, candidates []*types.PaperMetadata) *types.PaperMetadata {
	var best *types.PaperMetadata
	bestScore := 0.0
	for _, c := range candidates {
		score := normalize.Jaccard(localTitle, c.Title)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore < minTitleSimilarity {
		return nil
	}
	return best
}

// entryDOI returns the entry's canonical DOI, falling back to a DOI
// embedded in its URL.
func entryDOI(entry types.EntryMetadata) string {
	if entry.DOI != "" {
		return normalize.DOI(entry.DOI)
	}
	return normalize.ExtractDOI(entry.URL)
}

// entryArxivID returns the arXiv id embedded in the entry's URL, or "".
func entryArxivID(entry types.EntryMetadata) string {
	if entry.URL == "" {
		return ""
	}
	return normalize.ExtractArxivID(entry.URL)
}

// errorResult wraps an adapter failure into a LookupResult.
func errorResult(name string, err error) types.LookupResult {
	return types.LookupResult{Provider: name, Err: err.Error()}
}

// notFoundResult is a clean miss from the named provider.
func notFoundResult(name string) types.LookupResult {
	return types.LookupResult{Provider: name}
}

// foundResult wraps a matched record into a LookupResult.
func foundResult(name string, paper *types.PaperMetadata) types.LookupResult {
	return types.LookupResult{Found: true, Paper: paper, Provider: name}
}

// Registry is an ordered name-to-provider mapping, constructed
// explicitly at startup and passed to the consumers that need it.
type Registry struct {
	names     []string
	providers map[string]Provider
}

// NewRegistry builds a registry from providers in the given order.
// Duplicate names keep the first registration.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range providers {
		if _, ok := r.providers[p.Name()]; ok {
			continue
		}
		r.names = append(r.names, p.Name())
		r.providers[p.Name()] = p
	}
	return r
}

// Get returns the provider registered under name. An unknown name is a
// hard error, raised before any network activity, never a silent
// fallback.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (available: %v)", name, r.names)
	}
	return p, nil
}

// Names lists registered provider names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
