package searchdata_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/seolab/gapscout/searchdata"
	"github.com/seolab/gapscout/searchdata/querierfakes"
	"github.com/seolab/gapscout/session"
)

const testSite = "https://example.com"

func testSession() *session.Session {
	return &session.Session{
		AccessToken: "test-token",
		Expiry:      time.Now().Add(time.Hour),
	}
}

func testFilter() searchdata.QueryFilter {
	return searchdata.QueryFilter{
		StartDate:  "2026-07-01",
		EndDate:    "2026-07-31",
		Dimensions: []string{searchdata.DimensionDate, searchdata.DimensionPage, searchdata.DimensionQuery},
	}
}

func makeRows(n int) []searchdata.Row {
	rows := make([]searchdata.Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, searchdata.Row{
			Keys:        []string{"2026-07-01", testSite + "/p", fmt.Sprintf("query %d", i)},
			Clicks:      int64(i % 5),
			Impressions: int64(i%5 + 10),
			CTR:         0.1,
			Position:    3.4,
		})
	}
	return rows
}

func TestFetcher_FullPageThenEmptyPage(t *testing.T) {
	querier := querierfakes.NewFakeQuerier(
		querierfakes.Response{Page: &searchdata.Page{Rows: makeRows(25000)}},
		querierfakes.Response{Page: &searchdata.Page{}},
	)
	fetcher, err := searchdata.NewFetcher(querier)
	require.NoError(t, err)

	table, err := fetcher.Fetch(context.Background(), testSession(), testSite, testFilter())
	require.NoError(t, err)
	require.Equal(t, 25000, table.Len())

	// A full page always forces one more request, which terminates on the
	// empty-response branch.
	calls := querier.Calls()
	require.Len(t, calls, 2)
	require.Equal(t, int64(0), calls[0].StartRow)
	require.Equal(t, int64(25000), calls[0].RowLimit)
	require.Equal(t, int64(25000), calls[1].StartRow)
}

func TestFetcher_ShortPageTerminates(t *testing.T) {
	querier := querierfakes.NewFakeQuerier(
		querierfakes.Response{Page: &searchdata.Page{Rows: makeRows(100)}},
	)
	fetcher, err := searchdata.NewFetcher(querier)
	require.NoError(t, err)

	table, err := fetcher.Fetch(context.Background(), testSession(), testSite, testFilter())
	require.NoError(t, err)
	require.Equal(t, 100, table.Len())
	require.Equal(t, 1, querier.CallCount())
}

func TestFetcher_EmptyResultIsNotAnError(t *testing.T) {
	querier := querierfakes.NewFakeQuerier(
		querierfakes.Response{Page: &searchdata.Page{}},
	)
	fetcher, err := searchdata.NewFetcher(querier)
	require.NoError(t, err)

	table, err := fetcher.Fetch(context.Background(), testSession(), testSite, testFilter())
	require.NoError(t, err)
	require.Equal(t, 0, table.Len())
	require.Equal(t, 1, querier.CallCount())
}

func TestFetcher_PageErrorAbortsWholeFetch(t *testing.T) {
	querier := querierfakes.NewFakeQuerier(
		querierfakes.Response{Page: &searchdata.Page{Rows: makeRows(25000)}},
		querierfakes.Response{Err: errors.New("quota exceeded")},
	)
	fetcher, err := searchdata.NewFetcher(querier)
	require.NoError(t, err)

	table, err := fetcher.Fetch(context.Background(), testSession(), testSite, testFilter())
	require.ErrorIs(t, err, searchdata.ErrRemoteQuery)
	require.Contains(t, err.Error(), "quota exceeded")

	// No partial table is ever returned as success.
	require.Nil(t, table)
}

func TestFetcher_CursorAdvancesByRowsReturned(t *testing.T) {
	querier := querierfakes.NewFakeQuerier(
		querierfakes.Response{Page: &searchdata.Page{Rows: makeRows(3)}},
		querierfakes.Response{Page: &searchdata.Page{Rows: makeRows(3)}},
		querierfakes.Response{Page: &searchdata.Page{Rows: makeRows(1)}},
	)
	fetcher, err := searchdata.NewFetcher(querier, searchdata.WithPageSize(3))
	require.NoError(t, err)

	table, err := fetcher.Fetch(context.Background(), testSession(), testSite, testFilter())
	require.NoError(t, err)
	require.Equal(t, 7, table.Len())

	calls := querier.Calls()
	require.Len(t, calls, 3)
	require.Equal(t, int64(0), calls[0].StartRow)
	require.Equal(t, int64(3), calls[1].StartRow)
	require.Equal(t, int64(6), calls[2].StartRow)
}

func TestFetcher_SchemaAndRowInvariant(t *testing.T) {
	querier := querierfakes.NewFakeQuerier(
		querierfakes.Response{Page: &searchdata.Page{Rows: makeRows(50)}},
	)
	fetcher, err := searchdata.NewFetcher(querier)
	require.NoError(t, err)

	filter := testFilter()
	table, err := fetcher.Fetch(context.Background(), testSession(), testSite, filter)
	require.NoError(t, err)

	wantColumns := append(append([]string{}, filter.Dimensions...), "clicks", "impressions", "ctr", "position")
	require.Equal(t, wantColumns, table.Filter.Columns())

	for _, row := range table.Rows {
		require.Len(t, row.Keys, len(filter.Dimensions))
		require.LessOrEqual(t, row.Clicks, row.Impressions)
	}
}

func TestFetcher_CancelledBetweenPages(t *testing.T) {
	querier := querierfakes.NewFakeQuerier()
	fetcher, err := searchdata.NewFetcher(querier)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, testSession(), testSite, testFilter())
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, querier.CallCount())
}

func TestFetcher_NilSession(t *testing.T) {
	fetcher, err := searchdata.NewFetcher(querierfakes.NewFakeQuerier())
	require.NoError(t, err)

	_, err = fetcher.Fetch(context.Background(), nil, testSite, testFilter())
	require.Error(t, err)
}

func TestNewFetcher_Validation(t *testing.T) {
	t.Run("missing querier", func(t *testing.T) {
		_, err := searchdata.NewFetcher(nil)
		require.Error(t, err)
	})

	t.Run("non-positive page size", func(t *testing.T) {
		_, err := searchdata.NewFetcher(querierfakes.NewFakeQuerier(), searchdata.WithPageSize(0))
		require.Error(t, err)
	})
}
