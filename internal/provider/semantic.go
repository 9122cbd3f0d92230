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

	"github.com/pdiddy/refcheck/internal/httputil"
	"github.com/pdiddy/refcheck/internal/normalize"
	"github.com/pdiddy/refcheck/pkg/types"
)

// semanticGraphBase is the Semantic Scholar Graph API paper endpoint.
// Declared as a var so tests can substitute an httptest server.
var semanticGraphBase = "https://api.semanticscholar.org/graph/v1/paper"

const semanticFields = "title,abstract,authors,year,venue,externalIds,url"

// SemanticScholar queries the Semantic Scholar Graph API. Lookup order:
// DOI, arXiv id from the entry URL, then relevance search by title.
type SemanticScholar struct {
	Client *http.Client
	Cfg    types.HTTPConfig
	APIKey string
}

// Name returns the provider identifier.
func (p *SemanticScholar) Name() string { return "semanticscholar" }

// Lookup resolves the entry against Semantic Scholar.
func (p *SemanticScholar) Lookup(ctx context.Context, entry types.EntryMetadata) types.LookupResult {
	paper, err := p.lookup(ctx, entry)
	if err != nil {
		return errorResult(p.Name(), err)
	}
	if paper == nil {
		return notFoundResult(p.Name())
	}
	return foundResult(p.Name(), paper)
}

func (p *SemanticScholar) lookup(ctx context.Context, entry types.EntryMetadata) (*types.PaperMetadata, error) {
	if doi := entryDOI(entry); doi != "" {
		paper, err := p.lookupByID(ctx, "DOI:"+doi)
		if err != nil {
			return nil, err
		}
		if paper != nil {
			return paper, nil
		}
	}
	if arxivID := entryArxivID(entry); arxivID != "" {
		paper, err := p.lookupByID(ctx, "arXiv:"+arxivID)
		if err != nil {
			return nil, err
		}
		if paper != nil {
			return paper, nil
		}
	}
	return p.searchTitle(ctx, entry)
}

// lookupByID fetches /paper/<id> where id is "DOI:..." or "arXiv:...".
// A 404 is a miss, not an error.
func (p *SemanticScholar) lookupByID(ctx context.Context, id string) (*types.PaperMetadata, error) {
	reqURL := semanticGraphBase + "/" + url.PathEscape(id) + "?fields=" + semanticFields

	var paper semanticPaper
	status, err := p.get(ctx, reqURL, &paper)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	return paper.toPaper(), nil
}

// searchTitle queries /paper/search restricted by the entry's year.
func (p *SemanticScholar) searchTitle(ctx context.Context, entry types.EntryMetadata) (*types.PaperMetadata, error) {
	if strings.TrimSpace(entry.Title) == "" {
		return nil, nil
	}

	params := url.Values{
		"query":  {entry.Title},
		"limit":  {"10"},
		"fields": {semanticFields},
	}
	if year, ok := normalize.ParseYear(entry.Year); ok {
		params.Set("year", strconv.Itoa(year))
	}

	var sr semanticSearchResponse
	status, err := p.get(ctx, semanticGraphBase+"/search?"+params.Encode(), &sr)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}

	candidates := make([]*types.PaperMetadata, 0, len(sr.Data))
	for _, sp := range sr.Data {
		candidates = append(candidates, sp.toPaper())
	}
	return bestTitleMatch(entry.Title, candidates), nil
}

// get performs a GET with 429 retry and decodes the JSON body. 404 is
// returned as a status for the caller; other non-2xx codes are errors.
func (p *SemanticScholar) get(ctx context.Context, reqURL string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.Cfg.UserAgent)
	if p.APIKey != "" {
		req.Header.Set("x-api-key", p.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return 0, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	return resp.StatusCode, nil
}

// Semantic Scholar API JSON structures.
type semanticSearchResponse struct {
	Total int             `json:"total"`
	Data  []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID     string              `json:"paperId"`
	Title       string              `json:"title"`
	Abstract    string              `json:"abstract"`
	Year        int                 `json:"year"`
	Venue       string              `json:"venue"`
	URL         string              `json:"url"`
	Authors     []semanticAuthor    `json:"authors"`
	ExternalIDs semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}

func (sp semanticPaper) toPaper() *types.PaperMetadata {
	paper := &types.PaperMetadata{
		ID:       sp.PaperID,
		Title:    sp.Title,
		Abstract: sp.Abstract,
		Venue:    sp.Venue,
		URL:      sp.URL,
		DOI:      normalize.DOI(sp.ExternalIDs.DOI),
	}
	if sp.Year > 0 {
		paper.Year = strconv.Itoa(sp.Year)
	}
	for _, a := range sp.Authors {
		paper.Authors = append(paper.Authors, a.Name)
	}
	return paper
}
