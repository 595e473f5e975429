package searchdata

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/seolab/gapscout/session"
)

// DefaultPageSize is the fixed row limit requested per page.
const DefaultPageSize = 25000

// Fetcher drains a cursor-paged search analytics query into one complete
// table. Page requests are strictly sequential: the cursor for the next page
// is the row count accumulated so far.
type Fetcher struct {
	querier  PageQuerier
	pageSize int64
}

// FetcherOption defines a function type to modify the Fetcher instance.
type FetcherOption func(*Fetcher)

// WithPageSize overrides the per-page row limit (primarily for testing).
func WithPageSize(pageSize int64) FetcherOption {
	return func(f *Fetcher) {
		f.pageSize = pageSize
	}
}

func NewFetcher(querier PageQuerier, options ...FetcherOption) (*Fetcher, error) {
	if querier == nil {
		return nil, errors.New("[NewFetcher] querier is required")
	}
	f := &Fetcher{
		querier:  querier,
		pageSize: DefaultPageSize,
	}
	for _, opt := range options {
		opt(f)
	}
	if f.pageSize <= 0 {
		return nil, errors.New("[NewFetcher] page size must be positive")
	}
	return f, nil
}

// Fetch drains the query described by filter into one table. The fetch is
// all-or-nothing: any failed page aborts it and no partial table is returned.
// A legitimately empty result is a zero-row table, not an error. The session
// is borrowed for the duration of the fetch and never mutated or persisted.
func (f *Fetcher) Fetch(ctx context.Context, sess *session.Session, siteURL string, filter QueryFilter) (*Table, error) {
	if sess == nil {
		return nil, errors.New("[Fetcher.Fetch] session is required")
	}

	table := &Table{Filter: filter}
	var startRow int64

	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "[Fetcher.Fetch] cancelled")
		}

		page, err := f.querier.QueryPage(ctx, sess, siteURL, filter, startRow, f.pageSize)
		if err != nil {
			return nil, errors.Wrapf(ErrRemoteQuery, "[Fetcher.Fetch] page at row %d: %v", startRow, err)
		}

		if len(page.Rows) == 0 {
			break
		}

		table.Rows = append(table.Rows, page.Rows...)
		startRow += int64(len(page.Rows))

		if int64(len(page.Rows)) < f.pageSize {
			break
		}
		// A full page always forces one more request; it may legitimately come
		// back empty and terminate on the branch above.
	}

	log.Debug().Str("site", siteURL).Int("rows", table.Len()).Msg("fetch complete")
	return table, nil
}
