// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/refcheck/internal/normalize"
	"github.com/pdiddy/refcheck/pkg/types"
)

// DBLP API endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	dblpSearchBase = "https://dblp.org/search/publ/api"
	dblpRecBase    = "https://dblp.org/rec/"
)

// DBLP queries the DBLP computer science bibliography. DBLP has no DOI
// lookup endpoint, so the adapter always goes through title search; it
// additionally fetches the canonical BibTeX record for the match.
type DBLP struct {
	Client *http.Client
	Cfg    types.HTTPConfig
}

// Name returns the provider identifier.
func (p *DBLP) Name() string { return "dblp" }

// Lookup searches DBLP for the entry by title.
func (p *DBLP) Lookup(ctx context.Context, entry types.EntryMetadata) types.LookupResult {
	paper, err := p.lookup(ctx, entry)
	if err != nil {
		return errorResult(p.Name(), err)
	}
	if paper == nil {
		return notFoundResult(p.Name())
	}
	return foundResult(p.Name(), paper)
}

func (p *DBLP) lookup(ctx context.Context, entry types.EntryMetadata) (*types.PaperMetadata, error) {
	if strings.TrimSpace(entry.Title) == "" {
		return nil, nil
	}

	params := url.Values{
		"q":      {entry.Title},
		"format": {"json"},
		"h":      {"10"},
	}
	reqURL := dblpSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.Cfg.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("DBLP API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DBLP API returned HTTP %d", resp.StatusCode)
	}

	var dr dblpResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("parsing DBLP response: %w", err)
	}

	year, yearOK := normalize.ParseYear(entry.Year)
	var candidates []*types.PaperMetadata
	for _, hit := range dr.Result.Hits.Hit {
		paper := hit.Info.toPaper()
		if yearOK {
			if hy, ok := normalize.ParseYear(paper.Year); ok && hy != year {
				continue
			}
		}
		candidates = append(candidates, paper)
	}

	best := bestTitleMatch(entry.Title, candidates)
	if best == nil {
		return nil, nil
	}

	// The BibTeX record is a nice-to-have; a failed fetch does not fail
	// the lookup.
	if bib, err := p.fetchBibTeX(ctx, best.ID, entry.Key); err == nil {
		best.BibTeX = bib
	}
	return best, nil
}

// bibKeyLine matches the "@type{key," opening line of a BibTeX record.
var bibKeyLine = regexp.MustCompile(`@(\w+)\{[^,]+,`)

// fetchBibTeX retrieves the canonical BibTeX text for a DBLP record key
// and substitutes citeKey into the opening line when provided.
func (p *DBLP) fetchBibTeX(ctx context.Context, dblpKey, citeKey string) (string, error) {
	reqURL := dblpRecBase + dblpKey + ".bib"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.Cfg.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("DBLP BibTeX request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("DBLP BibTeX fetch returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading BibTeX body: %w", err)
	}

	bib := strings.TrimSpace(string(data))
	if citeKey != "" {
		bib = bibKeyLine.ReplaceAllString(bib, "@$1{"+citeKey+",")
	}
	return bib, nil
}

// DBLP API JSON structures.
type dblpResponse struct {
	Result dblpResult `json:"result"`
}

type dblpResult struct {
	Hits dblpHits `json:"hits"`
}

type dblpHits struct {
	Hit []dblpHit `json:"hit"`
}

type dblpHit struct {
	Info dblpInfo `json:"info"`
}

type dblpInfo struct {
	Key     string      `json:"key"`
	Title   string      `json:"title"`
	Venue   string      `json:"venue"`
	Year    string      `json:"year"`
	DOI     string      `json:"doi"`
	URL     string      `json:"url"`
	Authors dblpAuthors `json:"authors"`
}

func (info dblpInfo) toPaper() *types.PaperMetadata {
	paper := &types.PaperMetadata{
		ID:    info.Key,
		Title: strings.TrimSuffix(strings.TrimSpace(info.Title), "."),
		Venue: info.Venue,
		Year:  info.Year,
		DOI:   normalize.DOI(info.DOI),
		URL:   info.URL,
	}
	for _, a := range info.Authors.Author {
		paper.Authors = append(paper.Authors, a.Name())
	}
	return paper
}

type dblpAuthors struct {
	Author []dblpAuthor `json:"author"`
}

// UnmarshalJSON accepts both array-of-authors and the single-object form
// DBLP returns for single-author records.
func (a *dblpAuthors) UnmarshalJSON(data []byte) error {
	var multi struct {
		Author []dblpAuthor `json:"author"`
	}
	if err := json.Unmarshal(data, &multi); err == nil {
		a.Author = multi.Author
		return nil
	}
	var single struct {
		Author dblpAuthor `json:"author"`
	}
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	a.Author = []dblpAuthor{single.Author}
	return nil
}

type dblpAuthor struct {
	PID  string `json:"@pid"`
	Text string `json:"text"`
}

// dblpDisambiguation strips DBLP's numeric disambiguation suffix
// ("John Smith 0002" -> "John Smith").
var dblpDisambiguation = regexp.MustCompile(` \d{4}$`)

func (a dblpAuthor) Name() string {
	return dblpDisambiguation.ReplaceAllString(strings.TrimSpace(a.Text), "")
}
