// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vaultmatch maps a visited web page back to the vault entry it
// corresponds to, via a short-circuiting cascade of matching strategies,
// and scores loosely related entries for discovery.
package vaultmatch

import (
	"sort"
	"strings"

	"github.com/pdiddy/refcheck/internal/normalize"
	"github.com/pdiddy/refcheck/pkg/types"
)

// MatchType identifies which cascade stage produced a match.
type MatchType string

const (
	MatchURL   MatchType = "url"
	MatchDOI   MatchType = "doi"
	MatchArxiv MatchType = "arxiv"
	MatchTitle MatchType = "title"
)

// DefaultTitleThreshold is the minimum Jaccard similarity for the fuzzy
// title stage.
const DefaultTitleThreshold = 0.85

// Result is a successful page-to-entry match. Confidence is fixed per
// match type (url 1.0, doi and arxiv 0.95) except for title matches,
// which report the achieved similarity.
type Result struct {
	Entry      types.EntryMetadata `json:"entry"`
	Type       MatchType           `json:"match_type"`
	Confidence float64             `json:"confidence"`
}

// MatchPage finds the vault entry a visited page corresponds to. The
// cascade short-circuits on the first hit: exact normalized URL, DOI
// extracted from the page URL, arXiv id extracted from the page URL,
// then best fuzzy title above threshold (zero threshold uses the
// default). The second return value reports whether a match was found.
func MatchPage(pageURL, pageTitle string, entries []types.EntryMetadata, titleThreshold float64) (Result, bool) {
	if titleThreshold <= 0 {
		titleThreshold = DefaultTitleThreshold
	}

	if pageURL != "" {
		normURL := normalize.URL(pageURL)
		for _, e := range entries {
			if e.URL != "" && normalize.URL(e.URL) == normURL {
				return Result{Entry: e, Type: MatchURL, Confidence: 1.0}, true
			}
		}

		if doi := normalize.ExtractDOI(pageURL); doi != "" {
			for _, e := range entries {
				if e.DOI != "" && normalize.DOI(e.DOI) == doi {
					return Result{Entry: e, Type: MatchDOI, Confidence: 0.95}, true
				}
			}
		}

		if arxivID := normalize.ExtractArxivID(pageURL); arxivID != "" {
			for _, e := range entries {
				if e.URL != "" && normalize.ExtractArxivID(e.URL) == arxivID {
					return Result{Entry: e, Type: MatchArxiv, Confidence: 0.95}, true
				}
			}
		}
	}

	if pageTitle != "" {
		var best *types.EntryMetadata
		bestScore := 0.0
		for i, e := range entries {
			score := normalize.Jaccard(pageTitle, e.Title)
			if score >= titleThreshold && score > bestScore {
				best = &entries[i]
				bestScore = score
			}
		}
		if best != nil {
			return Result{Entry: *best, Type: MatchTitle, Confidence: bestScore}, true
		}
	}

	return Result{}, false
}

// Related is a candidate entry scored for relatedness to a reference
// entry.
type Related struct {
	Entry types.EntryMetadata `json:"entry"`
	Score float64             `json:"score"`
}

// titleSimilarity brackets for relatedness: candidates above the upper
// bound are likely the same paper, not a related one.
const (
	relatedTitleLow  = 0.3
	relatedTitleHigh = 0.85
)

// FindRelated scores candidates by shared authors (+2 per shared last
// name), venue similarity above 0.8 (+1), equal years (+0.5), and a
// title similarity strictly between 0.3 and 0.85 (+ the similarity).
// Results are sorted descending by score and truncated to limit. The
// reference entry itself is excluded by id.
func FindRelated(entry types.EntryMetadata, candidates []types.EntryMetadata, limit int) []Related {
	var scored []Related
	for _, c := range candidates {
		if c.ID == entry.ID {
			continue
		}
		score := relatednessScore(entry, c)
		if score > 0 {
			scored = append(scored, Related{Entry: c, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func relatednessScore(entry, candidate types.EntryMetadata) float64 {
	score := 0.0

	for _, ca := range candidate.Authors {
		last := normalize.String(normalize.SplitName(ca).Last)
		if last == "" {
			continue
		}
		for _, la := range entry.Authors {
			if containsToken(normalize.String(la), last) {
				score += 2
				break
			}
		}
	}

	if entry.Venue != "" && candidate.Venue != "" &&
		normalize.Jaccard(entry.Venue, candidate.Venue) > 0.8 {
		score += 1
	}

	if ly, lok := normalize.ParseYear(entry.Year); lok {
		if cy, cok := normalize.ParseYear(candidate.Year); cok && ly == cy {
			score += 0.5
		}
	}

	if sim := normalize.Jaccard(entry.Title, candidate.Title); sim > relatedTitleLow && sim < relatedTitleHigh {
		score += sim
	}

	return score
}

// containsToken reports whether needle appears as a substring of
// haystack. Author last names commonly appear inside full name strings
// in either name order.
func containsToken(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}
