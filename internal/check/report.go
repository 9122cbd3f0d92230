// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/refcheck/pkg/types"
)

// WriteReport writes the batch summary as a human-readable table to w.
func WriteReport(summary Summary, w io.Writer) {
	if len(summary.Results) == 0 {
		fmt.Fprintln(w, "No entries checked.")
		return
	}

	fmt.Fprintf(w, "%-28s  %-10s  %-6s  %s\n", "Entry", "Status", "Sev", "Detail")
	fmt.Fprintln(w, strings.Repeat("-", 72))

	for _, result := range summary.Results {
		severity := ""
		detail := ""
		if log := result.Log; log != nil {
			if log.Status == types.StatusMismatch {
				severity = string(log.MismatchSeverity)
				detail = mismatchDetail(log.Fields)
			}
			if log.Status == types.StatusError {
				detail = log.Err
			}
		}
		id := result.EntryID
		if len(id) > 28 {
			id = id[:25] + "..."
		}
		if len(detail) > 40 {
			detail = detail[:37] + "..."
		}
		fmt.Fprintf(w, "%-28s  %-10s  %-6s  %s\n", id, result.Status, severity, detail)
	}

	fmt.Fprintf(w, "\n%d entries: %d confirmed, %d mismatches (%d minor, %d major), %d not found, %d errors, %d skipped\n",
		summary.Total(), summary.Confirmed,
		summary.MismatchMinor+summary.MismatchMajor, summary.MismatchMinor, summary.MismatchMajor,
		summary.NotFound, summary.Errors, summary.Skipped)
}

// mismatchDetail names the fields that failed comparison.
func mismatchDetail(fields *types.FieldChecks) string {
	if fields == nil {
		return ""
	}
	var failed []string
	if !fields.Title.Match {
		failed = append(failed, "title")
	}
	if !fields.Authors.CountMatch || anyLastNameMismatch(fields.Authors) {
		failed = append(failed, "authors")
	}
	if !fields.Year.Match {
		failed = append(failed, "year")
	}
	if !fields.Venue.Match {
		failed = append(failed, "venue")
	}
	if !fields.DOI.Match {
		failed = append(failed, "doi")
	}
	return strings.Join(failed, ", ")
}

func anyLastNameMismatch(check types.AuthorCheck) bool {
	for _, d := range check.Details {
		if !d.LastMatch {
			return true
		}
	}
	return false
}

// WriteJSON writes the full batch summary as indented JSON to w.
func WriteJSON(summary Summary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
