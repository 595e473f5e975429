package gap

import (
	"sort"
	"strings"
	"unicode"

	"github.com/seolab/gapscout/searchdata"
)

// DefaultCount is the number of gap terms returned by Analyze.
const DefaultCount = 10

// Term is one vocabulary gap: a token present in a page's user search queries
// and its occurrence count across those queries.
type Term struct {
	Token     string
	Frequency int
}

// Analyzer ranks the vocabulary of a page's search queries. The stopword set
// is injected so the analyzer carries no dictionary or network dependency and
// stays deterministic in tests.
type Analyzer struct {
	stopwords map[string]struct{}
}

func NewAnalyzer(stopwords []string) *Analyzer {
	set := make(map[string]struct{}, len(stopwords))
	for _, word := range stopwords {
		set[strings.ToLower(word)] = struct{}{}
	}
	return &Analyzer{stopwords: set}
}

// Analyze returns the top DefaultCount gap terms for the page identified by
// targetKey.
func (a *Analyzer) Analyze(table *searchdata.Table, targetKey string) []Term {
	return a.AnalyzeTop(table, targetKey, DefaultCount)
}

// AnalyzeTop ranks the tokens of the distinct query strings recorded for
// targetKey: whitespace-split, lowercased, stopwords and non-word tokens
// dropped, counted across every occurrence, sorted by frequency descending
// with ties broken by first occurrence. Fewer than count distinct tokens is
// not an error; neither is a targetKey matching no rows.
func (a *Analyzer) AnalyzeTop(table *searchdata.Table, targetKey string, count int) []Term {
	counts := make(map[string]int)
	var order []string

	for _, query := range distinctQueries(table, targetKey) {
		for _, raw := range strings.Fields(query) {
			token := strings.ToLower(raw)
			if !isWord(token) {
				continue
			}
			if _, stopped := a.stopwords[token]; stopped {
				continue
			}
			if _, seen := counts[token]; !seen {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	terms := make([]Term, 0, len(order))
	for _, token := range order {
		terms = append(terms, Term{Token: token, Frequency: counts[token]})
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Frequency > terms[j].Frequency
	})

	if count < 0 {
		count = 0
	}
	if len(terms) > count {
		terms = terms[:count]
	}
	return terms
}

// QueryStats is the per-query click/impression roll-up for one page. It is
// computed for display alongside the gap terms; it is not an input to the
// ranking.
type QueryStats struct {
	Query       string
	Clicks      int64
	Impressions int64
}

// Stats aggregates clicks and impressions by query for the page identified by
// targetKey, in first-seen query order.
func Stats(table *searchdata.Table, targetKey string) []QueryStats {
	pageIdx := table.Filter.DimensionIndex(searchdata.DimensionPage)
	queryIdx := table.Filter.DimensionIndex(searchdata.DimensionQuery)
	if pageIdx < 0 || queryIdx < 0 {
		return nil
	}

	index := make(map[string]int)
	var stats []QueryStats
	for _, row := range table.Rows {
		if pageIdx >= len(row.Keys) || queryIdx >= len(row.Keys) {
			continue
		}
		if row.Keys[pageIdx] != targetKey {
			continue
		}
		query := row.Keys[queryIdx]
		i, ok := index[query]
		if !ok {
			i = len(stats)
			index[query] = i
			stats = append(stats, QueryStats{Query: query})
		}
		stats[i].Clicks += row.Clicks
		stats[i].Impressions += row.Impressions
	}
	return stats
}

// distinctQueries returns the distinct query strings recorded for targetKey,
// in first-seen order.
func distinctQueries(table *searchdata.Table, targetKey string) []string {
	pageIdx := table.Filter.DimensionIndex(searchdata.DimensionPage)
	queryIdx := table.Filter.DimensionIndex(searchdata.DimensionQuery)
	if pageIdx < 0 || queryIdx < 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var queries []string
	for _, row := range table.Rows {
		if pageIdx >= len(row.Keys) || queryIdx >= len(row.Keys) {
			continue
		}
		if row.Keys[pageIdx] != targetKey {
			continue
		}
		query := row.Keys[queryIdx]
		if _, ok := seen[query]; ok {
			continue
		}
		seen[query] = struct{}{}
		queries = append(queries, query)
	}
	return queries
}

// isWord reports whether the token carries at least one letter or digit.
// Source query strings are not pre-cleaned, so splitting can yield pure
// punctuation.
func isWord(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
