package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/seolab/gapscout/auth"
	"github.com/seolab/gapscout/gap"
	"github.com/seolab/gapscout/gap/stopwords"
	"github.com/seolab/gapscout/internal/config"
	"github.com/seolab/gapscout/metadata"
	"github.com/seolab/gapscout/report"
	"github.com/seolab/gapscout/searchdata"
	"github.com/seolab/gapscout/session/filestore"
	"github.com/seolab/gapscout/suggest"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "gapscout",
	Short: "Rank the search-query vocabulary missing from a page's title and meta description",
	Long: `gapscout pulls search analytics rows from Google Search Console,
compares them with a page's on-page metadata, and ranks the query
vocabulary missing from that metadata to drive copy optimization.`,
	SilenceUsage: true,
}

func Execute(c config.Config) {
	cfg = c
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func newAuthManager() (*auth.Manager, error) {
	store := filestore.New(cfg.GetSessionFile())
	return auth.NewManager(store, auth.Config{
		ClientID:     cfg.GetClientID(),
		ClientSecret: cfg.GetClientSecret(),
		RedirectURL:  cfg.GetRedirectURL(),
	})
}

func newFetcher() (*searchdata.Fetcher, error) {
	client := searchdata.NewClient(
		searchdata.WithHTTPClient(&http.Client{Timeout: cfg.GetQueryTimeout()}),
	)
	return searchdata.NewFetcher(client)
}

func newAnalyzer() (*gap.Analyzer, error) {
	words := stopwords.Default()
	if path := cfg.GetStopwordFile(); path != "" {
		loaded, err := stopwords.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading stopword dictionary: %w", err)
		}
		words = loaded
	}
	return gap.NewAnalyzer(words), nil
}

func newRunner() (*report.Runner, error) {
	manager, err := newAuthManager()
	if err != nil {
		return nil, err
	}
	fetcher, err := newFetcher()
	if err != nil {
		return nil, err
	}
	analyzer, err := newAnalyzer()
	if err != nil {
		return nil, err
	}

	deps := report.Deps{
		Sessions: manager,
		Fetcher:  fetcher,
		Analyzer: analyzer,
		Prober: metadata.NewProbe(
			metadata.WithHTTPClient(&http.Client{Timeout: cfg.GetProbeTimeout()}),
		),
	}
	if key := cfg.GetOpenAIKey(); key != "" {
		deps.Suggester = suggest.NewRequestor(key)
	}
	return report.NewRunner(deps, report.WithTermCount(cfg.GetGapTermCount()))
}
