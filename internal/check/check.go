// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package check runs the reconciliation of vault entries against
// external catalogs: single-entry checks, CheckLog construction,
// staleness policy, and the rate-limited sequential batch driver.
package check

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/refcheck/internal/compare"
	"github.com/pdiddy/refcheck/internal/provider"
	"github.com/pdiddy/refcheck/pkg/types"
)

// DefaultStaleAfterDays is the CheckLog age after which an entry is
// re-checked without --force.
const DefaultStaleAfterDays = 30

// Stale reports whether a CheckLog is eligible for automatic re-check:
// older than maxAge days, or a previous error outcome.
func Stale(log *types.CheckLog, maxAgeDays int) bool {
	if log == nil {
		return true
	}
	if log.Status == types.StatusError {
		return true
	}
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultStaleAfterDays
	}
	age := time.Since(log.CheckedAt)
	return age > time.Duration(maxAgeDays)*24*time.Hour
}

// WriteLogFunc persists a fresh CheckLog for the identified entry. It is
// injected by the caller and rewrites only the entry's check log,
// leaving all other stored fields untouched.
type WriteLogFunc func(entryID string, log *types.CheckLog) error

// ProgressFunc receives a one-line status message after each entry's
// outcome is known. It must not block; the driver does not wait for
// consumers.
type ProgressFunc func(message string)

// Runner drives reconciliation of entries against a provider.
type Runner struct {
	Provider provider.Provider
	Cfg      types.CheckConfig

	// WriteLog persists CheckLogs. Nil or DryRun suppresses writes.
	WriteLog WriteLogFunc

	// Progress streams per-entry status lines. May be nil.
	Progress ProgressFunc

	// now and sleep are injection points for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewRunner builds a Runner with real clock and sleep functions.
func NewRunner(p provider.Provider, cfg types.CheckConfig, writeLog WriteLogFunc, progress ProgressFunc) *Runner {
	return &Runner{
		Provider: p,
		Cfg:      cfg,
		WriteLog: writeLog,
		Progress: progress,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// CheckEntry verifies a single entry and builds its fresh CheckLog. The
// previous log's human-authored fields (manual sign-off, canonical
// source) are carried forward; everything else is replaced.
func (r *Runner) CheckEntry(ctx context.Context, entry types.EntryMetadata) *types.CheckLog {
	log := &types.CheckLog{
		CheckedAt:   r.now(),
		CheckedWith: r.Provider.Name(),
	}
	if prev := entry.CheckLog; prev != nil {
		log.ManuallyVerified = prev.ManuallyVerified
		log.CanonicalSource = prev.CanonicalSource
	}

	result := r.Provider.Lookup(ctx, entry)
	if result.Provider != "" {
		log.CheckedWith = result.Provider
	}

	switch {
	case result.Err != "":
		log.Status = types.StatusError
		log.Err = result.Err
	case !result.Found:
		log.Status = types.StatusNotFound
	default:
		paper := result.Paper
		fields := compare.Fields(entry, paper, r.thresholds())
		log.Status = compare.Status(fields)
		log.PaperID = paper.ID
		log.Fields = &fields
		log.Remote = &types.RemoteValues{
			Title:   paper.Title,
			Authors: paper.Authors,
			Year:    paper.Year,
			Venue:   paper.Venue,
			DOI:     paper.DOI,
			URL:     paper.URL,
		}
		log.BibTeX = paper.BibTeX
		if log.Status == types.StatusMismatch {
			log.MismatchSeverity = compare.ClassifySeverity(fields)
		}
	}
	return log
}

func (r *Runner) thresholds() types.Thresholds {
	th := r.Cfg.Thresholds
	if th.Title == 0 {
		th.Title = types.DefaultThresholds().Title
	}
	if th.Venue == 0 {
		th.Venue = types.DefaultThresholds().Venue
	}
	return th
}

// Result is the per-entry outcome of a batch run.
type Result struct {
	EntryID string            `json:"entry_id"`
	Title   string            `json:"title,omitempty"`
	Status  types.CheckStatus `json:"status"`
	Log     *types.CheckLog   `json:"log,omitempty"`
	Err     string            `json:"error,omitempty"`
}

// Summary aggregates a batch run.
type Summary struct {
	Confirmed     int      `json:"confirmed"`
	MismatchMinor int      `json:"mismatch_minor"`
	MismatchMajor int      `json:"mismatch_major"`
	NotFound      int      `json:"not_found"`
	Errors        int      `json:"errors"`
	Skipped       int      `json:"skipped"`
	Results       []Result `json:"results"`
}

// Total returns the number of entries processed.
func (s Summary) Total() int {
	return s.Confirmed + s.MismatchMinor + s.MismatchMajor + s.NotFound + s.Errors + s.Skipped
}

// Run checks entries strictly sequentially, in the order supplied.
// Entries with a fresh CheckLog are skipped without a network call or
// rate-limit delay unless Force is set. A RequestDelay is awaited after
// every dispatch, never before the first one. One entry's failure never
// aborts the batch.
func (r *Runner) Run(ctx context.Context, entries []types.EntryMetadata) Summary {
	var summary Summary

	for _, entry := range entries {
		if !r.Cfg.Force && entry.CheckLog != nil && !Stale(entry.CheckLog, r.Cfg.StaleAfterDays) {
			summary.Skipped++
			summary.Results = append(summary.Results, Result{
				EntryID: entry.ID,
				Title:   entry.Title,
				Status:  types.StatusSkipped,
			})
			r.report(fmt.Sprintf("skipped: %s (checked %s)", entry.ID, entry.CheckLog.CheckedAt.Format("2006-01-02")))
			continue
		}

		log := r.CheckEntry(ctx, entry)
		result := Result{
			EntryID: entry.ID,
			Title:   entry.Title,
			Status:  log.Status,
			Log:     log,
			Err:     log.Err,
		}

		if !r.Cfg.DryRun && r.WriteLog != nil {
			if err := r.WriteLog(entry.ID, log); err != nil {
				result.Status = types.StatusError
				result.Err = fmt.Sprintf("persisting check log: %v", err)
			}
		}

		summary.count(result, log)
		summary.Results = append(summary.Results, result)
		r.report(progressLine(result, log))

		if r.Cfg.RequestDelay > 0 {
			r.sleep(r.Cfg.RequestDelay)
		}
	}
	return summary
}

func (s *Summary) count(result Result, log *types.CheckLog) {
	switch result.Status {
	case types.StatusConfirmed:
		s.Confirmed++
	case types.StatusMismatch:
		if log.MismatchSeverity == types.SeverityMajor {
			s.MismatchMajor++
		} else {
			s.MismatchMinor++
		}
	case types.StatusNotFound:
		s.NotFound++
	default:
		s.Errors++
	}
}

func (r *Runner) report(message string) {
	if r.Progress != nil {
		r.Progress(message)
	}
}

func progressLine(result Result, log *types.CheckLog) string {
	switch result.Status {
	case types.StatusConfirmed:
		return fmt.Sprintf("confirmed: %s (%s)", result.EntryID, log.CheckedWith)
	case types.StatusMismatch:
		return fmt.Sprintf("mismatch (%s): %s (%s)", log.MismatchSeverity, result.EntryID, log.CheckedWith)
	case types.StatusNotFound:
		return fmt.Sprintf("not found: %s", result.EntryID)
	default:
		return fmt.Sprintf("error: %s (%s)", result.EntryID, result.Err)
	}
}
