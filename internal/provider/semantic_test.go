// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/refcheck/internal/httputil"
	"github.com/pdiddy/refcheck/pkg/types"
)

func init() {
	// Keep 429 retry backoff out of test wall time.
	httputil.RetryBaseDelay = time.Millisecond
}

const semanticPaperBody = `{
  "paperId": "abc123",
  "title": "Attention Is All You Need",
  "abstract": "The dominant sequence transduction models...",
  "year": 2017,
  "venue": "NeurIPS",
  "url": "https://www.semanticscholar.org/paper/abc123",
  "authors": [{"authorId": "1", "name": "Ashish Vaswani"}],
  "externalIds": {"DOI": "10.5555/3295222.3295349", "ArXiv": "1706.03762"}
}`

const semanticSearchBody = `{
  "total": 2,
  "data": [
    {
      "paperId": "abc123",
      "title": "Attention Is All You Need",
      "year": 2017,
      "venue": "NeurIPS",
      "authors": [{"authorId": "1", "name": "Ashish Vaswani"}],
      "externalIds": {"DOI": "10.5555/3295222.3295349"}
    },
    {
      "paperId": "zzz999",
      "title": "Unrelated Robotics Paper",
      "year": 2017,
      "externalIds": {}
    }
  ]
}`

func newSemanticServer(t *testing.T, handler http.HandlerFunc) *SemanticScholar {
	t.Helper()
	ts := httptest.NewServer(handler)

	old := semanticGraphBase
	semanticGraphBase = ts.URL + "/graph/v1/paper"
	t.Cleanup(func() {
		semanticGraphBase = old
		ts.Close()
	})

	return &SemanticScholar{Client: ts.Client(), Cfg: types.HTTPConfig{UserAgent: "test/0.1"}}
}

func TestSemanticScholarDOILookup(t *testing.T) {
	var gotPath string
	p := newSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, semanticPaperBody)
	})

	result := p.Lookup(context.Background(), types.EntryMetadata{
		Title: "Attention Is All You Need",
		DOI:   "10.5555/3295222.3295349",
	})
	if !result.Found {
		t.Fatalf("Found = false (err %q)", result.Err)
	}
	if !strings.Contains(gotPath, "DOI:") {
		t.Errorf("path = %q, want DOI lookup", gotPath)
	}
	if result.Paper.Year != "2017" || result.Paper.Venue != "NeurIPS" {
		t.Errorf("Year/Venue = %q/%q", result.Paper.Year, result.Paper.Venue)
	}
	if result.Paper.DOI != "10.5555/3295222.3295349" {
		t.Errorf("DOI = %q", result.Paper.DOI)
	}
}

func TestSemanticScholarArxivFallback(t *testing.T) {
	var paths []string
	p := newSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if strings.Contains(r.URL.Path, "arXiv:") {
			fmt.Fprint(w, semanticPaperBody)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	result := p.Lookup(context.Background(), types.EntryMetadata{
		Title: "Attention Is All You Need",
		DOI:   "10.9999/unknown",
		URL:   "https://arxiv.org/abs/1706.03762",
	})
	if !result.Found {
		t.Fatalf("Found = false (err %q), paths %v", result.Err, paths)
	}
	if len(paths) < 2 {
		t.Errorf("paths = %v, want DOI attempt then arXiv attempt", paths)
	}
}

func TestSemanticScholarTitleSearch(t *testing.T) {
	var gotYear string
	p := newSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/search") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotYear = r.URL.Query().Get("year")
		fmt.Fprint(w, semanticSearchBody)
	})

	result := p.Lookup(context.Background(), types.EntryMetadata{
		Title: "Attention Is All You Need",
		Year:  "2017",
	})
	if !result.Found {
		t.Fatalf("Found = false (err %q)", result.Err)
	}
	if gotYear != "2017" {
		t.Errorf("year param = %q, want 2017", gotYear)
	}
	if result.Paper.ID != "abc123" {
		t.Errorf("Paper.ID = %q, want abc123", result.Paper.ID)
	}
}

func TestSemanticScholarRetriesRateLimit(t *testing.T) {
	calls := 0
	p := newSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, semanticPaperBody)
	})

	result := p.Lookup(context.Background(), types.EntryMetadata{
		Title: "Attention Is All You Need",
		DOI:   "10.5555/3295222.3295349",
	})
	if !result.Found {
		t.Fatalf("Found = false (err %q)", result.Err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want a retry after 429", calls)
	}
}
