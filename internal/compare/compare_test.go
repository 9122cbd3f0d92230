// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compare

import (
	"testing"

	"github.com/pdiddy/refcheck/pkg/types"
)

func defaults() types.Thresholds { return types.DefaultThresholds() }

func TestTitle(t *testing.T) {
	tests := []struct {
		name          string
		local, remote string
		wantMatch     bool
	}{
		{"identical", "Attention Is All You Need", "Attention Is All You Need", true},
		{"case and punctuation", "attention is all you need!", "Attention Is All You Need", true},
		{"both empty", "", "", true},
		{"one empty is a mismatch", "", "Nature", false},
		{"different papers", "Attention Is All You Need", "Deep Residual Learning for Image Recognition", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Title(tt.local, tt.remote, defaults().Title)
			if got.Match != tt.wantMatch {
				t.Errorf("Title(%q, %q).Match = %v, want %v", tt.local, tt.remote, got.Match, tt.wantMatch)
			}
		})
	}
}

func TestTitleMismatchCarriesDistance(t *testing.T) {
	got := Title("Attention Is All You Need", "Deep Residual Learning", defaults().Title)
	if got.Match {
		t.Fatal("expected mismatch")
	}
	if got.Distance == 0 {
		t.Error("expected nonzero edit distance on a both-sided mismatch")
	}

	oneEmpty := Title("", "Nature", defaults().Title)
	if oneEmpty.Match {
		t.Fatal("expected mismatch for missing local title")
	}
	if oneEmpty.Distance != 0 {
		t.Errorf("one-empty mismatch should carry no distance, got %d", oneEmpty.Distance)
	}
}

func TestAuthors(t *testing.T) {
	t.Run("count mismatch has no details", func(t *testing.T) {
		got := Authors([]string{"A Smith"}, []string{"A Smith", "B Jones"})
		if got.CountMatch {
			t.Error("CountMatch = true, want false")
		}
		if got.Details != nil {
			t.Errorf("Details = %v, want nil", got.Details)
		}
	})

	t.Run("aligned match", func(t *testing.T) {
		got := Authors([]string{"Ashish Vaswani", "Noam Shazeer"}, []string{"A. Vaswani", "N. Shazeer"})
		if !got.CountMatch {
			t.Fatal("CountMatch = false, want true")
		}
		if len(got.Details) != 2 {
			t.Fatalf("len(Details) = %d, want 2", len(got.Details))
		}
		for i, d := range got.Details {
			if !d.LastMatch {
				t.Errorf("Details[%d].LastMatch = false, want true", i)
			}
		}
		if !AuthorsMatch(got) {
			t.Error("AuthorsMatch = false, want true")
		}
	})

	t.Run("first name detail", func(t *testing.T) {
		tests := []struct {
			name           string
			local, remote  string
			wantFirstMatch bool
		}{
			{"bare initial", "A Vaswani", "Ashish Vaswani", true},
			{"dotted initial", "J. Smith", "John Smith", true},
			{"abbreviation is a prefix", "Rob Smith", "Robert Smith", true},
			{"spelling variant is not a prefix", "Jon Smith", "John Smith", false},
			{"different name", "Bob Smith", "Robert Smith", false},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := Authors([]string{tt.local}, []string{tt.remote})
				if len(got.Details) != 1 {
					t.Fatalf("len(Details) = %d, want 1", len(got.Details))
				}
				if got.Details[0].FirstMatch != tt.wantFirstMatch {
					t.Errorf("FirstMatch = %v, want %v", got.Details[0].FirstMatch, tt.wantFirstMatch)
				}
			})
		}
	})

	t.Run("comma form matches plain form", func(t *testing.T) {
		got := Authors([]string{"Knuth, Donald"}, []string{"Donald Knuth"})
		if !AuthorsMatch(got) {
			t.Error("AuthorsMatch = false, want true")
		}
	})

	t.Run("last name disagreement fails", func(t *testing.T) {
		got := Authors([]string{"Alice Smith"}, []string{"Alice Jones"})
		if AuthorsMatch(got) {
			t.Error("AuthorsMatch = true, want false")
		}
	})

	t.Run("first name disagreement alone passes", func(t *testing.T) {
		got := Authors([]string{"Robert Smith"}, []string{"Bob Smith"})
		if !AuthorsMatch(got) {
			t.Error("AuthorsMatch = false, want true: first-name mismatches do not fail the check")
		}
	})

	t.Run("both empty", func(t *testing.T) {
		got := Authors(nil, nil)
		if !got.CountMatch || got.Details != nil {
			t.Errorf("Authors(nil, nil) = %+v, want empty count match", got)
		}
		if !AuthorsMatch(got) {
			t.Error("AuthorsMatch = false, want true for two empty lists")
		}
	})
}

func TestYear(t *testing.T) {
	t.Run("equal", func(t *testing.T) {
		got := Year("2019", "2019")
		if !got.Match || got.Diff != nil {
			t.Errorf("Year(2019, 2019) = %+v, want match", got)
		}
	})

	t.Run("signed diff", func(t *testing.T) {
		got := Year("2019", "2021")
		if got.Match {
			t.Fatal("expected mismatch")
		}
		if got.Diff == nil || *got.Diff != 2 {
			t.Errorf("Diff = %v, want 2", got.Diff)
		}

		got = Year("2021", "2019")
		if got.Diff == nil || *got.Diff != -2 {
			t.Errorf("Diff = %v, want -2", got.Diff)
		}
	})

	t.Run("missing side is not penalized", func(t *testing.T) {
		if got := Year("", "2019"); !got.Match {
			t.Errorf("Year(\"\", 2019) = %+v, want match", got)
		}
		if got := Year("2019", ""); !got.Match {
			t.Errorf("Year(2019, \"\") = %+v, want match", got)
		}
	})

	t.Run("tolerant parsing", func(t *testing.T) {
		if got := Year("March 2019", "2019"); !got.Match {
			t.Errorf("Year(\"March 2019\", 2019) = %+v, want match", got)
		}
	})
}

func TestVenue(t *testing.T) {
	tests := []struct {
		name          string
		local, remote string
		wantMatch     bool
	}{
		{"equal", "NeurIPS", "NeurIPS", true},
		{"missing local is not penalized", "", "Nature", true},
		{"missing remote is not penalized", "Nature", "", true},
		{"similar", "Advances in Neural Information Processing Systems", "Neural Information Processing Systems", true},
		{"different", "Journal of Botany", "Quantum Computing Letters", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Venue(tt.local, tt.remote, defaults().Venue)
			if got.Match != tt.wantMatch {
				t.Errorf("Venue(%q, %q).Match = %v, want %v", tt.local, tt.remote, got.Match, tt.wantMatch)
			}
		})
	}
}

func TestDOI(t *testing.T) {
	tests := []struct {
		name          string
		local, remote string
		wantMatch     bool
	}{
		{"equal after normalization", "https://doi.org/10.1234/ABC", "10.1234/abc", true},
		{"missing local", "", "10.1234/abc", true},
		{"missing remote", "10.1234/abc", "", true},
		{"different", "10.1234/abc", "10.9999/zzz", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DOI(tt.local, tt.remote)
			if got.Match != tt.wantMatch {
				t.Errorf("DOI(%q, %q).Match = %v, want %v", tt.local, tt.remote, got.Match, tt.wantMatch)
			}
		})
	}
}

func matchedFields() types.FieldChecks {
	return types.FieldChecks{
		Title:   types.FieldCheck{Match: true},
		Authors: types.AuthorCheck{CountMatch: true},
		Year:    types.YearCheck{Match: true},
		Venue:   types.FieldCheck{Match: true},
		DOI:     types.FieldCheck{Match: true},
	}
}

func TestStatus(t *testing.T) {
	t.Run("all match", func(t *testing.T) {
		if got := Status(matchedFields()); got != types.StatusConfirmed {
			t.Errorf("Status = %v, want confirmed", got)
		}
	})

	t.Run("title failure", func(t *testing.T) {
		fields := matchedFields()
		fields.Title = types.FieldCheck{Match: false}
		if got := Status(fields); got != types.StatusMismatch {
			t.Errorf("Status = %v, want mismatch", got)
		}
	})

	t.Run("author count failure", func(t *testing.T) {
		fields := matchedFields()
		fields.Authors = types.AuthorCheck{CountMatch: false, LocalCount: 1, RemoteCount: 2}
		if got := Status(fields); got != types.StatusMismatch {
			t.Errorf("Status = %v, want mismatch", got)
		}
	})
}

func TestClassifySeverity(t *testing.T) {
	intp := func(v int) *int { return &v }

	t.Run("title mismatch always major", func(t *testing.T) {
		fields := matchedFields()
		fields.Title = types.FieldCheck{Match: false, Local: "A", Remote: "B"}
		if got := ClassifySeverity(fields); got != types.SeverityMajor {
			t.Errorf("severity = %v, want major", got)
		}
	})

	t.Run("last name disagreement major", func(t *testing.T) {
		fields := matchedFields()
		fields.Authors = types.AuthorCheck{
			CountMatch:  true,
			LocalCount:  1,
			RemoteCount: 1,
			Details:     []types.AuthorDetail{{Local: "A Smith", Remote: "A Jones", FirstMatch: true, LastMatch: false}},
		}
		if got := ClassifySeverity(fields); got != types.SeverityMajor {
			t.Errorf("severity = %v, want major", got)
		}
	})

	t.Run("large count discrepancy on small list major", func(t *testing.T) {
		fields := matchedFields()
		fields.Authors = types.AuthorCheck{CountMatch: false, LocalCount: 1, RemoteCount: 4}
		if got := ClassifySeverity(fields); got != types.SeverityMajor {
			t.Errorf("severity = %v, want major", got)
		}
	})

	t.Run("modest count discrepancy minor", func(t *testing.T) {
		fields := matchedFields()
		fields.Authors = types.AuthorCheck{CountMatch: false, LocalCount: 3, RemoteCount: 4}
		if got := ClassifySeverity(fields); got != types.SeverityMinor {
			t.Errorf("severity = %v, want minor", got)
		}
	})

	t.Run("book matched to review major", func(t *testing.T) {
		fields := matchedFields()
		fields.Venue = types.FieldCheck{Match: false, Local: "Oxford University Press", Remote: "Journal of Modern History"}
		if got := ClassifySeverity(fields); got != types.SeverityMajor {
			t.Errorf("severity = %v, want major", got)
		}
	})

	t.Run("conference vs preprint minor", func(t *testing.T) {
		fields := matchedFields()
		fields.Venue = types.FieldCheck{Match: false, Local: "NeurIPS", Remote: "arXiv preprint"}
		if got := ClassifySeverity(fields); got != types.SeverityMinor {
			t.Errorf("severity = %v, want minor", got)
		}
	})

	t.Run("year off by one minor", func(t *testing.T) {
		fields := matchedFields()
		fields.Year = types.YearCheck{Match: false, Local: "2019", Remote: "2020", Diff: intp(1)}
		if got := ClassifySeverity(fields); got != types.SeverityMinor {
			t.Errorf("severity = %v, want minor", got)
		}
	})

	t.Run("year off by two major", func(t *testing.T) {
		fields := matchedFields()
		fields.Year = types.YearCheck{Match: false, Local: "2019", Remote: "2021", Diff: intp(2)}
		if got := ClassifySeverity(fields); got != types.SeverityMajor {
			t.Errorf("severity = %v, want major", got)
		}
	})

	t.Run("differing present DOIs major", func(t *testing.T) {
		fields := matchedFields()
		fields.DOI = types.FieldCheck{Match: false, Local: "10.1/a", Remote: "10.2/b"}
		if got := ClassifySeverity(fields); got != types.SeverityMajor {
			t.Errorf("severity = %v, want major", got)
		}
	})

	t.Run("default minor", func(t *testing.T) {
		fields := matchedFields()
		fields.Venue = types.FieldCheck{Match: false, Local: "ICML", Remote: "ICLR"}
		if got := ClassifySeverity(fields); got != types.SeverityMinor {
			t.Errorf("severity = %v, want minor", got)
		}
	})
}
