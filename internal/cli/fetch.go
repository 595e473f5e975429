package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/seolab/gapscout/searchdata"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch search analytics rows for a site",
	Long: `Drain the search analytics query for the given site and date range into a
table and print it as CSV on stdout.

Examples:
  gapscout fetch --site https://example.com --start 2026-07-01 --end 2026-07-31
  gapscout fetch --site https://example.com --start 2026-07-01 --end 2026-07-31 --dimension page --dimension query`,
	RunE: runFetch,
}

var (
	fetchSite       string
	fetchStart      string
	fetchEnd        string
	fetchDimensions []string
)

func init() {
	fetchCmd.Flags().StringVar(&fetchSite, "site", "", "Site URL as registered in Search Console")
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "Start date (YYYY-MM-DD, inclusive)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "End date (YYYY-MM-DD, inclusive)")
	fetchCmd.Flags().StringArrayVar(&fetchDimensions, "dimension", []string{searchdata.DimensionDate, searchdata.DimensionPage, searchdata.DimensionQuery}, "Dimension order of the query")
	_ = fetchCmd.MarkFlagRequired("site")
	_ = fetchCmd.MarkFlagRequired("start")
	_ = fetchCmd.MarkFlagRequired("end")
}

func runFetch(cmd *cobra.Command, args []string) error {
	start, end, err := parseWindow(fetchStart, fetchEnd)
	if err != nil {
		return err
	}

	manager, err := newAuthManager()
	if err != nil {
		return err
	}
	fetcher, err := newFetcher()
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, err := manager.GetSession(ctx)
	if err != nil {
		return err
	}

	filter := searchdata.NewQueryFilter(start, end, fetchDimensions...)
	table, err := fetcher.Fetch(ctx, sess, fetchSite, filter)
	if err != nil {
		return err
	}

	if table.Len() == 0 {
		fmt.Fprintln(os.Stderr, "No data available for the selected parameters")
		return nil
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write(filter.Columns()); err != nil {
		return err
	}
	for _, row := range table.Rows {
		record := append([]string{}, row.Keys...)
		record = append(record,
			strconv.FormatInt(row.Clicks, 10),
			strconv.FormatInt(row.Impressions, 10),
			strconv.FormatFloat(row.CTR, 'f', -1, 64),
			strconv.FormatFloat(row.Position, 'f', -1, 64),
		)
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func parseWindow(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(searchdata.DateFormat, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q (use YYYY-MM-DD)", startStr)
	}
	end, err := time.Parse(searchdata.DateFormat, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q (use YYYY-MM-DD)", endStr)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s precedes start date %s", endStr, startStr)
	}
	return start, end, nil
}
