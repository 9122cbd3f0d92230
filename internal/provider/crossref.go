// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/refcheck/internal/normalize"
	"github.com/pdiddy/refcheck/pkg/types"
)

// crossrefWorksBase is the Crossref Works API endpoint. Declared as a
// var so tests can substitute an httptest server.
var crossrefWorksBase = "https://api.crossref.org/works"

// Crossref queries the Crossref Works API. A DOI lookup is tried first
// when the entry carries one; otherwise a title search restricted by the
// entry's year.
type Crossref struct {
	Client *http.Client
	Cfg    types.HTTPConfig

	// Mailto is sent as the mailto query parameter for polite-pool access.
	Mailto string
}

// Name returns the provider identifier.
func (p *Crossref) Name() string { return "crossref" }

// Lookup resolves the entry against Crossref.
func (p *Crossref) Lookup(ctx context.Context, entry types.EntryMetadata) types.LookupResult {
	paper, err := p.lookup(ctx, entry)
	if err != nil {
		return errorResult(p.Name(), err)
	}
	if paper == nil {
		return notFoundResult(p.Name())
	}
	return foundResult(p.Name(), paper)
}

func (p *Crossref) lookup(ctx context.Context, entry types.EntryMetadata) (*types.PaperMetadata, error) {
	if doi := entryDOI(entry); doi != "" {
		paper, err := p.lookupDOI(ctx, doi)
		if err != nil {
			return nil, err
		}
		if paper != nil {
			return paper, nil
		}
		// DOI unknown to Crossref; fall through to title search.
	}
	return p.searchTitle(ctx, entry)
}

// lookupDOI fetches /works/<doi>. A 404 is a miss, not an error.
func (p *Crossref) lookupDOI(ctx context.Context, doi string) (*types.PaperMetadata, error) {
	reqURL := crossrefWorksBase + "/" + url.PathEscape(doi)
	if p.Mailto != "" {
		reqURL += "?mailto=" + url.QueryEscape(p.Mailto)
	}

	var cr crossrefSingleResponse
	status, err := p.get(ctx, reqURL, &cr)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	return cr.Message.toPaper(), nil
}

// searchTitle queries /works?query.title= restricted to the entry's
// publication year when parseable.
func (p *Crossref) searchTitle(ctx context.Context, entry types.EntryMetadata) (*types.PaperMetadata, error) {
	if strings.TrimSpace(entry.Title) == "" {
		return nil, nil
	}

	params := url.Values{
		"query.title": {entry.Title},
		"rows":        {"5"},
	}
	if year, ok := normalize.ParseYear(entry.Year); ok {
		y := strconv.Itoa(year)
		params.Set("filter", "from-pub-date:"+y+"-01-01,until-pub-date:"+y+"-12-31")
	}
	if p.Mailto != "" {
		params.Set("mailto", p.Mailto)
	}

	var cr crossrefListResponse
	status, err := p.get(ctx, crossrefWorksBase+"?"+params.Encode(), &cr)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}

	candidates := make([]*types.PaperMetadata, 0, len(cr.Message.Items))
	for _, item := range cr.Message.Items {
		candidates = append(candidates, item.toPaper())
	}
	return bestTitleMatch(entry.Title, candidates), nil
}

// get performs a GET and decodes the JSON body. 404 is returned as a
// status for the caller to interpret; other non-2xx codes are errors.
func (p *Crossref) get(ctx context.Context, reqURL string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.Cfg.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("parsing Crossref response: %w", err)
	}
	return resp.StatusCode, nil
}

// Crossref API JSON structures.
type crossrefSingleResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefListResponse struct {
	Message struct {
		Items []crossrefWork `json:"items"`
	} `json:"message"`
}

type crossrefWork struct {
	DOI            string           `json:"DOI"`
	Title          []string         `json:"title"`
	ContainerTitle []string         `json:"container-title"`
	Author         []crossrefAuthor `json:"author"`
	Issued         crossrefDate     `json:"issued"`
	URL            string           `json:"URL"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

func (w crossrefWork) toPaper() *types.PaperMetadata {
	paper := &types.PaperMetadata{
		ID:  normalize.DOI(w.DOI),
		DOI: normalize.DOI(w.DOI),
		URL: w.URL,
	}
	if len(w.Title) > 0 {
		paper.Title = w.Title[0]
	}
	if len(w.ContainerTitle) > 0 {
		paper.Venue = w.ContainerTitle[0]
	}
	for _, a := range w.Author {
		paper.Authors = append(paper.Authors, strings.TrimSpace(a.Given+" "+a.Family))
	}
	if len(w.Issued.DateParts) > 0 && len(w.Issued.DateParts[0]) > 0 {
		paper.Year = strconv.Itoa(w.Issued.DateParts[0][0])
	}
	return paper
}
