package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/seolab/gapscout/gap"
	"github.com/seolab/gapscout/metadata"
	"github.com/seolab/gapscout/searchdata"
	"github.com/seolab/gapscout/session"
)

// Window is the inclusive calendar date range of one analysis run.
type Window struct {
	Start time.Time
	End   time.Time
}

// PageReport is the full analysis result for one page.
type PageReport struct {
	URL          string
	Title        string
	Description  string
	GapTerms     []gap.Term
	QueryStats   []gap.QueryStats
	Suggestion   string
	SuggestionOK bool
}

// Report is the outcome of one analysis run.
type Report struct {
	RunID    string
	SiteURL  string
	RowCount int
	Pages    []PageReport
}

// SessionProvider yields a valid session for the run.
type SessionProvider interface {
	GetSession(ctx context.Context) (*session.Session, error)
}

// TableFetcher drains the search analytics query for the run's window.
type TableFetcher interface {
	Fetch(ctx context.Context, sess *session.Session, siteURL string, filter searchdata.QueryFilter) (*searchdata.Table, error)
}

// MetadataProber returns a page's current on-page copy, degrading to
// sentinels on failure.
type MetadataProber interface {
	Probe(ctx context.Context, pageURL string) metadata.PageMetadata
}

// Suggester generates candidate copy, or reports that none is available.
type Suggester interface {
	Suggest(ctx context.Context, title, description string, terms []gap.Term) (string, bool)
}

// Deps holds the collaborator dependencies for the Runner.
type Deps struct {
	Sessions  SessionProvider
	Fetcher   TableFetcher
	Analyzer  *gap.Analyzer
	Prober    MetadataProber
	Suggester Suggester // optional; nil skips suggestion generation
}

// Runner wires the full pipeline: session, fetch, per-page metadata probe,
// gap analysis and copy suggestions. One Run is one logical thread of
// control; concurrent runs must use their own Runner collaborators.
type Runner struct {
	deps      Deps
	termCount int
	newID     func() string
}

// RunnerOption defines a function type to modify the Runner instance.
type RunnerOption func(*Runner)

// WithIDFunc overrides run ID generation (primarily for testing).
func WithIDFunc(newID func() string) RunnerOption {
	return func(r *Runner) {
		r.newID = newID
	}
}

// WithTermCount overrides how many gap terms are reported per page.
func WithTermCount(count int) RunnerOption {
	return func(r *Runner) {
		r.termCount = count
	}
}

func NewRunner(deps Deps, options ...RunnerOption) (*Runner, error) {
	if deps.Sessions == nil {
		return nil, errors.New("[NewRunner] Sessions provider is required")
	}
	if deps.Fetcher == nil {
		return nil, errors.New("[NewRunner] Fetcher is required")
	}
	if deps.Analyzer == nil {
		return nil, errors.New("[NewRunner] Analyzer is required")
	}
	if deps.Prober == nil {
		return nil, errors.New("[NewRunner] Prober is required")
	}

	r := &Runner{
		deps:      deps,
		termCount: gap.DefaultCount,
		newID:     uuid.NewString,
	}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// Run executes one full analysis: fetch the window's rows for siteURL with
// date, page and query dimensions, then probe, analyze and request
// suggestions for every distinct page whose URL contains pattern. An empty
// pattern selects every page. Session and fetch failures abort the run;
// metadata and suggestion failures degrade per page.
func (r *Runner) Run(ctx context.Context, siteURL string, window Window, pattern string) (*Report, error) {
	sess, err := r.deps.Sessions.GetSession(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[Runner.Run] GetSession")
	}

	filter := searchdata.NewQueryFilter(window.Start, window.End,
		searchdata.DimensionDate, searchdata.DimensionPage, searchdata.DimensionQuery)

	table, err := r.deps.Fetcher.Fetch(ctx, sess, siteURL, filter)
	if err != nil {
		return nil, errors.Wrap(err, "[Runner.Run] Fetch")
	}

	rep := &Report{
		RunID:    r.newID(),
		SiteURL:  siteURL,
		RowCount: table.Len(),
	}

	for _, pageURL := range table.MatchingPages(pattern) {
		md := r.deps.Prober.Probe(ctx, pageURL)
		terms := r.deps.Analyzer.AnalyzeTop(table, pageURL, r.termCount)

		pr := PageReport{
			URL:         pageURL,
			Title:       md.Title,
			Description: md.Description,
			GapTerms:    terms,
			QueryStats:  gap.Stats(table, pageURL),
		}
		if r.deps.Suggester != nil {
			pr.Suggestion, pr.SuggestionOK = r.deps.Suggester.Suggest(ctx, md.Title, md.Description, terms)
		}
		rep.Pages = append(rep.Pages, pr)

		log.Info().Str("page", pageURL).Int("gap_terms", len(terms)).Msg("page analyzed")
	}

	return rep, nil
}
