// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/refcheck/internal/normalize"
	"github.com/pdiddy/refcheck/pkg/types"
)

// openAlexWorksBase is the OpenAlex Works API endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexWorksBase = "https://api.openalex.org/works"

// OpenAlex queries the OpenAlex Works API. A DOI filter lookup is tried
// first; otherwise a full-text search restricted by publication year.
type OpenAlex struct {
	Client *http.Client
	Cfg    types.HTTPConfig

	// Email is sent as the mailto parameter for polite pool access.
	Email string
}

// Name returns the provider identifier.
func (p *OpenAlex) Name() string { return "openalex" }

// Lookup resolves the entry against OpenAlex.
func (p *OpenAlex) Lookup(ctx context.Context, entry types.EntryMetadata) types.LookupResult {
	paper, err := p.lookup(ctx, entry)
	if err != nil {
		return errorResult(p.Name(), err)
	}
	if paper == nil {
		return notFoundResult(p.Name())
	}
	return foundResult(p.Name(), paper)
}

func (p *OpenAlex) lookup(ctx context.Context, entry types.EntryMetadata) (*types.PaperMetadata, error) {
	if doi := entryDOI(entry); doi != "" {
		params := url.Values{"filter": {"doi:" + doi}}
		works, err := p.fetch(ctx, params)
		if err != nil {
			return nil, err
		}
		if len(works) > 0 {
			return works[0].toPaper(), nil
		}
	}

	if strings.TrimSpace(entry.Title) == "" {
		return nil, nil
	}

	params := url.Values{
		"search":   {entry.Title},
		"per_page": {"10"},
	}
	if year, ok := normalize.ParseYear(entry.Year); ok {
		params.Set("filter", "publication_year:"+strconv.Itoa(year))
	}

	works, err := p.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	candidates := make([]*types.PaperMetadata, 0, len(works))
	for _, w := range works {
		candidates = append(candidates, w.toPaper())
	}
	return bestTitleMatch(entry.Title, candidates), nil
}

func (p *OpenAlex) fetch(ctx context.Context, params url.Values) ([]openAlexWork, error) {
	if p.Email != "" {
		params.Set("mailto", p.Email)
	}
	reqURL := openAlexWorksBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.Cfg.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var oar openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	return oar.Results, nil
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back
// to plain text. The inverted index maps each word to the positions
// where it appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	PublicationYear       int                  `json:"publication_year"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	PrimaryLocation       openAlexLocation     `json:"primary_location"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexLocation struct {
	Source openAlexSource `json:"source"`
}

type openAlexSource struct {
	DisplayName string `json:"display_name"`
}

func (w openAlexWork) toPaper() *types.PaperMetadata {
	paper := &types.PaperMetadata{
		ID:       w.ID,
		Title:    w.Title,
		DOI:      normalize.DOI(w.DOI),
		Venue:    w.PrimaryLocation.Source.DisplayName,
		URL:      w.ID,
		Abstract: reconstructAbstract(w.AbstractInvertedIndex),
	}
	if w.PublicationYear > 0 {
		paper.Year = strconv.Itoa(w.PublicationYear)
	}
	for _, authorship := range w.Authorships {
		if authorship.Author.DisplayName != "" {
			paper.Authors = append(paper.Authors, authorship.Author.DisplayName)
		}
	}
	return paper
}
