package searchdata

import "strings"

// Row is one search analytics result: one key per requested dimension, in the
// filter's dimension order, plus the four metrics. Clicks never exceeds
// Impressions; rows violating that are rejected at decode time.
type Row struct {
	Keys        []string
	Clicks      int64
	Impressions int64
	CTR         float64
	Position    float64
}

// Table is an ordered set of rows sharing one QueryFilter's dimension schema.
// Row order follows fetch order and carries no meaning beyond stable grouping.
// The table is owned by the caller that requested the fetch; analyzers get a
// read-only view.
type Table struct {
	Filter QueryFilter
	Rows   []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Pages returns the distinct values of the page dimension in first-seen order.
func (t *Table) Pages() []string {
	return t.MatchingPages("")
}

// MatchingPages returns the distinct page-dimension values containing the
// given substring, in first-seen order. An empty pattern matches every page.
// A table without a page dimension has no pages.
func (t *Table) MatchingPages(pattern string) []string {
	idx := t.Filter.DimensionIndex(DimensionPage)
	if idx < 0 {
		return nil
	}
	seen := make(map[string]struct{})
	var pages []string
	for _, row := range t.Rows {
		if idx >= len(row.Keys) {
			continue
		}
		page := row.Keys[idx]
		if pattern != "" && !strings.Contains(page, pattern) {
			continue
		}
		if _, ok := seen[page]; ok {
			continue
		}
		seen[page] = struct{}{}
		pages = append(pages, page)
	}
	return pages
}
