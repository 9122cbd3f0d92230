// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compare

import (
	"strings"

	"github.com/pdiddy/refcheck/internal/normalize"
	"github.com/pdiddy/refcheck/pkg/types"
)

// publisherKeywords mark venues that look like book publishers. The
// lists are English-language heuristics; non-English venues will
// misclassify.
var publisherKeywords = []string{
	"press",
	"publishing",
	"publishers",
	"books",
	"springer",
	"wiley",
	"elsevier",
	"routledge",
	"penguin",
	"macmillan",
	"harpercollins",
	"oxford university",
	"cambridge university",
	"mit press",
}

// journalKeywords mark venues that look like journals or review outlets.
var journalKeywords = []string{
	"journal",
	"review",
	"proceedings",
	"transactions",
	"quarterly",
	"annals",
	"bulletin",
	"letters",
}

// preprintKeywords mark preprint-style venues.
var preprintKeywords = []string{
	"arxiv",
	"corr",
	"preprint",
	"biorxiv",
	"medrxiv",
	"ssrn",
}

func venueContainsAny(venue string, keywords []string) bool {
	v := normalize.String(venue)
	for _, kw := range keywords {
		if strings.Contains(v, kw) {
			return true
		}
	}
	return false
}

// ClassifySeverity labels a mismatched field bundle as minor (likely
// false positive) or major (needs human review). It is a decision list
// evaluated top to bottom; the first applicable rule wins, so title and
// author identity failures dominate the venue/year/DOI heuristics.
func ClassifySeverity(fields types.FieldChecks) types.Severity {
	// Rule 1: a title mismatch means the wrong paper is likely matched.
	if !fields.Title.Match {
		return types.SeverityMajor
	}

	// Rule 2: any last-name disagreement at an aligned position.
	for _, d := range fields.Authors.Details {
		if !d.LastMatch {
			return types.SeverityMajor
		}
	}

	// Rule 3: a large count discrepancy on a small author list is
	// suspicious; other count mismatches fall through as minor.
	if !fields.Authors.CountMatch {
		lo, hi := fields.Authors.LocalCount, fields.Authors.RemoteCount
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi > 0 && float64(lo)/float64(hi) < 0.5 && fields.Authors.LocalCount < 10 {
			return types.SeverityMajor
		}
	}

	if !fields.Venue.Match {
		// Rule 4: a book matched to a review of the book.
		if venueContainsAny(fields.Venue.Local, publisherKeywords) &&
			venueContainsAny(fields.Venue.Remote, journalKeywords) {
			return types.SeverityMajor
		}
		// Rule 5: conference-vs-preprint is common and benign.
		if !venueContainsAny(fields.Venue.Local, preprintKeywords) &&
			venueContainsAny(fields.Venue.Remote, preprintKeywords) {
			return types.SeverityMinor
		}
	}

	// Rule 6: a year off by more than one; off-by-one is preprint
	// timing skew.
	if !fields.Year.Match && fields.Year.Diff != nil {
		diff := *fields.Year.Diff
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			return types.SeverityMajor
		}
	}

	// Rule 7: two present, differing DOIs almost always mean two
	// different records.
	if !fields.DOI.Match && fields.DOI.Local != "" && fields.DOI.Remote != "" {
		return types.SeverityMajor
	}

	return types.SeverityMinor
}
