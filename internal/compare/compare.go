// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compare implements per-field comparison of vault entries
// against provider records, and the minor/major severity classifier for
// mismatches. Every comparator is pure and total.
package compare

import (
	"strings"

	"github.com/pdiddy/refcheck/internal/normalize"
	"github.com/pdiddy/refcheck/pkg/types"
)

// Title compares two titles. Both empty is a match; exactly one empty is
// a mismatch with no distance. Otherwise titles match when their Jaccard
// similarity clears threshold; mismatches carry the edit distance of the
// strict-normalized forms.
func Title(local, remote string, threshold float64) types.FieldCheck {
	check := types.FieldCheck{Local: local, Remote: remote}

	localNorm, remoteNorm := normalize.Strict(local), normalize.Strict(remote)
	if localNorm == "" && remoteNorm == "" {
		check.Match = true
		return check
	}
	if localNorm == "" || remoteNorm == "" {
		return check
	}
	if normalize.Jaccard(local, remote) >= threshold {
		check.Match = true
		return check
	}
	check.Distance = normalize.Levenshtein(localNorm, remoteNorm)
	return check
}

// Authors compares author lists position by position. Details are
// populated only when both lists are non-empty and the counts are equal;
// an index-aligned comparison is meaningless otherwise.
func Authors(local, remote []string) types.AuthorCheck {
	check := types.AuthorCheck{
		CountMatch:  len(local) == len(remote),
		LocalCount:  len(local),
		RemoteCount: len(remote),
	}
	if !check.CountMatch || len(local) == 0 {
		return check
	}

	for i := range local {
		lp := normalize.SplitName(local[i])
		rp := normalize.SplitName(remote[i])
		check.Details = append(check.Details, types.AuthorDetail{
			Local:      local[i],
			Remote:     remote[i],
			FirstMatch: firstNamesMatch(lp.First, rp.First),
			LastMatch:  normalize.String(lp.Last) == normalize.String(rp.Last),
		})
	}
	return check
}

// firstNamesMatch compares given names leniently: equal after
// normalization, or the shorter name is a prefix of the longer one, so
// initials and abbreviations match their full form ("J" or "J." vs
// "John", "Rob" vs "Robert").
func firstNamesMatch(a, b string) bool {
	a = strings.TrimSuffix(normalize.String(a), ".")
	b = strings.TrimSuffix(normalize.String(b), ".")
	if a == "" || b == "" {
		return a == b
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	return strings.HasPrefix(b, a)
}

// AuthorsMatch reports whether an author check counts as a pass: the
// counts agree and every aligned pair agrees on the last name. First-name
// mismatches alone never fail the check.
func AuthorsMatch(check types.AuthorCheck) bool {
	if !check.CountMatch {
		return false
	}
	for _, d := range check.Details {
		if !d.LastMatch {
			return false
		}
	}
	return true
}

// Year compares two year values after tolerant parsing. On a mismatch
// where both sides parse, Diff carries the signed remote-minus-local
// difference.
func Year(local, remote string) types.YearCheck {
	check := types.YearCheck{Local: local, Remote: remote}

	ly, lok := normalize.ParseYear(local)
	ry, rok := normalize.ParseYear(remote)
	if !lok || !rok {
		// A year missing on either side is not penalized.
		check.Match = true
		return check
	}
	if ly == ry {
		check.Match = true
		return check
	}
	diff := ry - ly
	check.Diff = &diff
	return check
}

// Venue compares venue names. Missing venue data on either side is not
// penalized: a venue recorded only locally or only remotely is a match.
func Venue(local, remote string, threshold float64) types.FieldCheck {
	check := types.FieldCheck{Local: local, Remote: remote}

	localNorm, remoteNorm := normalize.Strict(local), normalize.Strict(remote)
	if localNorm == "" || remoteNorm == "" {
		check.Match = true
		return check
	}
	if normalize.Jaccard(local, remote) >= threshold {
		check.Match = true
		return check
	}
	check.Distance = normalize.Levenshtein(localNorm, remoteNorm)
	return check
}

// DOI compares DOIs by exact equality after canonicalization. A DOI
// present on only one side is a match, same rationale as Venue.
func DOI(local, remote string) types.FieldCheck {
	check := types.FieldCheck{Local: local, Remote: remote}

	localNorm, remoteNorm := normalize.DOI(local), normalize.DOI(remote)
	if localNorm == "" || remoteNorm == "" || localNorm == remoteNorm {
		check.Match = true
		return check
	}
	check.Distance = normalize.Levenshtein(localNorm, remoteNorm)
	return check
}

// Fields bundles the five per-field comparisons of an entry against a
// provider record.
func Fields(entry types.EntryMetadata, paper *types.PaperMetadata, th types.Thresholds) types.FieldChecks {
	return types.FieldChecks{
		Title:   Title(entry.Title, paper.Title, th.Title),
		Authors: Authors(entry.Authors, paper.Authors),
		Year:    Year(entry.Year, paper.Year),
		Venue:   Venue(entry.Venue, paper.Venue, th.Venue),
		DOI:     DOI(entry.DOI, paper.DOI),
	}
}

// Status reduces a field bundle to confirmed or mismatch. Title, author,
// and year failures always count; venue and DOI failures count only when
// both sides carried a value (the comparators already treat one-sided
// values as matches).
func Status(fields types.FieldChecks) types.CheckStatus {
	mismatch := !fields.Title.Match ||
		!AuthorsMatch(fields.Authors) ||
		!fields.Year.Match ||
		!fields.Venue.Match ||
		!fields.DOI.Match
	if mismatch {
		return types.StatusMismatch
	}
	return types.StatusConfirmed
}
