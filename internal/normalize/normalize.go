// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize provides the pure string and date functions the
// comparison and matching layers are built on: diacritic-insensitive
// folding, identifier extraction, edit distance, token-set similarity,
// author-name splitting, and tolerant year parsing.
package normalize

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes to NFD, drops combining marks, and
// recomposes, stripping diacritics ("Gödel" -> "Godel"). Non-Latin
// scripts pass through unchanged.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// String lowercases s, strips diacritics, collapses whitespace, and trims.
func String(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// Strict applies String and then removes every character outside
// [a-z0-9] and whitespace. CJK, Greek, and other non-ASCII letters are
// removed entirely; the result feeds token-set similarity over Latin
// academic titles and is lossy for anything else.
func Strict(s string) string {
	var b strings.Builder
	for _, r := range String(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// doiPrefixes are stripped from DOI strings; the first matching prefix wins.
var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi:",
}

// DOI canonicalizes a DOI: lowercase, resolver and scheme prefixes stripped.
func DOI(doi string) string {
	doi = strings.ToLower(strings.TrimSpace(doi))
	for _, prefix := range doiPrefixes {
		if strings.HasPrefix(doi, prefix) {
			return doi[len(prefix):]
		}
	}
	return doi
}

var doiPattern = regexp.MustCompile(`(?i)10\.\d{4,}/\S+`)

// ExtractDOI returns the first DOI found in text, canonicalized, or "".
func ExtractDOI(text string) string {
	m := doiPattern.FindString(text)
	if m == "" {
		return ""
	}
	return DOI(m)
}

var (
	arxivURLPattern  = regexp.MustCompile(`arxiv\.org/(?:abs|pdf)/(\d{4}\.\d{4,5})`)
	arxivBarePattern = regexp.MustCompile(`\d{4}\.\d{4,5}(?:v\d+)?`)
	arxivVersion     = regexp.MustCompile(`v\d+$`)
)

// ExtractArxivID returns the arXiv identifier found in text, or "". When
// text contains an arxiv.org URL the /abs/ or /pdf/ path segment is used;
// otherwise the bare NNNN.NNNNN pattern is matched anywhere. Version
// suffixes are always stripped.
func ExtractArxivID(text string) string {
	if strings.Contains(text, "arxiv.org") {
		m := arxivURLPattern.FindStringSubmatch(text)
		if m == nil {
			return ""
		}
		return m[1]
	}
	m := arxivBarePattern.FindString(text)
	if m == "" {
		return ""
	}
	return arxivVersion.ReplaceAllString(m, "")
}

// Levenshtein returns the classic edit distance between a and b. It is
// case-sensitive; callers wanting case-insensitive distance normalize
// first.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, min(cur[j-1]+1, prev[j-1]+cost))
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

// minTokenLen drops very short tokens ("a", "of", "in") before set
// comparison.
const minTokenLen = 3

// tokenSet splits the strict-normalized form of s into a set of tokens
// of at least minTokenLen characters.
func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(Strict(s)) {
		if len(tok) >= minTokenLen {
			set[tok] = struct{}{}
		}
	}
	return set
}

// Jaccard returns the token-set similarity of a and b in [0,1]. Two
// empty token sets are vacuously identical (1); exactly one empty set
// yields 0.
func Jaccard(a, b string) float64 {
	sa, sb := tokenSet(a), tokenSet(b)
	if len(sa) == 0 && len(sb) == 0 {
		return 1
	}
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	intersection := 0
	for tok := range sa {
		if _, ok := sb[tok]; ok {
			intersection++
		}
	}
	union := len(sa) + len(sb) - intersection
	return float64(intersection) / float64(union)
}

// NameParts is an author name split into its given and family parts.
type NameParts struct {
	First string
	Last  string
}

// SplitName splits an author name into first/last parts. "Last, First"
// forms split on the first comma; otherwise the final whitespace token
// is the last name. Single-token names have an empty first part.
func SplitName(name string) NameParts {
	name = strings.TrimSpace(name)
	if idx := strings.Index(name, ","); idx >= 0 {
		return NameParts{
			First: strings.TrimSpace(name[idx+1:]),
			Last:  strings.TrimSpace(name[:idx]),
		}
	}
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return NameParts{}
	case 1:
		return NameParts{Last: fields[0]}
	default:
		return NameParts{
			First: strings.Join(fields[:len(fields)-1], " "),
			Last:  fields[len(fields)-1],
		}
	}
}

// URL canonicalizes a URL to lowercase scheme://host/path, discarding
// query and fragment. Unparseable URLs fall back to the trimmed
// lowercase of the raw string.
func URL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return strings.ToLower(u.Scheme + "://" + u.Host + u.Path)
}

const (
	minYear = 1900
	maxYear = 2100
)

var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// ParseYear parses a year from a string or numeric value. Values outside
// [1900,2100] are rejected. String input tries a direct integer parse
// first, then falls back to extracting a 19xx/20xx substring. The second
// return value reports whether a year was found.
func ParseYear(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return boundYear(v)
	case int64:
		return boundYear(int(v))
	case float64:
		return boundYear(int(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.Atoi(s); err == nil {
			return boundYear(n)
		}
		if m := yearPattern.FindString(s); m != "" {
			n, _ := strconv.Atoi(m)
			return n, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func boundYear(y int) (int, bool) {
	if y < minYear || y > maxYear {
		return 0, false
	}
	return y, true
}
