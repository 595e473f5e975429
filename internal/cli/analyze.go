package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seolab/gapscout/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank vocabulary gaps and suggest copy for matching pages",
	Long: `Fetch search analytics rows for the window, then for every page whose URL
contains the pattern: probe its current title and meta description, rank the
query vocabulary missing from them, and (when an OpenAI key is configured)
generate candidate copy.

Examples:
  gapscout analyze --site https://example.com --start 2026-07-01 --end 2026-07-31 --pattern /products/`,
	RunE: runAnalyze,
}

var (
	analyzeSite    string
	analyzeStart   string
	analyzeEnd     string
	analyzePattern string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSite, "site", "", "Site URL as registered in Search Console")
	analyzeCmd.Flags().StringVar(&analyzeStart, "start", "", "Start date (YYYY-MM-DD, inclusive)")
	analyzeCmd.Flags().StringVar(&analyzeEnd, "end", "", "End date (YYYY-MM-DD, inclusive)")
	analyzeCmd.Flags().StringVar(&analyzePattern, "pattern", "", "URL substring selecting the pages to analyze (empty selects all)")
	_ = analyzeCmd.MarkFlagRequired("site")
	_ = analyzeCmd.MarkFlagRequired("start")
	_ = analyzeCmd.MarkFlagRequired("end")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start, end, err := parseWindow(analyzeStart, analyzeEnd)
	if err != nil {
		return err
	}

	runner, err := newRunner()
	if err != nil {
		return err
	}

	rep, err := runner.Run(context.Background(), analyzeSite, report.Window{Start: start, End: end}, analyzePattern)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s: %d rows fetched, %d page(s) analyzed\n", rep.RunID, rep.RowCount, len(rep.Pages))
	for _, page := range rep.Pages {
		fmt.Printf("\n== %s\n", page.URL)
		fmt.Printf("Current title: %s\n", page.Title)
		fmt.Printf("Current meta description: %s\n", page.Description)

		if len(page.GapTerms) == 0 {
			fmt.Println("No gap terms found")
		} else {
			fmt.Println("Keywords missing from title/meta description:")
			for _, term := range page.GapTerms {
				fmt.Printf("  %-24s %d\n", term.Token, term.Frequency)
			}
		}

		if page.SuggestionOK {
			fmt.Println("Suggested copy:")
			fmt.Println(page.Suggestion)
		}
	}
	return nil
}
