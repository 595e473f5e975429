package metadata

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// Sentinel values returned when the page cannot be fetched or parsed. They
// are never empty, so downstream consumers need no absence handling.
const (
	DefaultTitleSentinel       = "No title found"
	DefaultDescriptionSentinel = "No meta description found"
)

const (
	defaultTimeout = 10 * time.Second

	// Some sites serve reduced markup to unknown clients; identify as a
	// mainstream browser the way the page's real visitors would.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.159 Safari/537.36"
)

// PageMetadata is a page's current on-page copy. Fields default to the
// probe's sentinels when unavailable.
type PageMetadata struct {
	Title       string
	Description string
}

// Probe fetches a page's title and meta description. It degrades instead of
// failing: its output is advisory and never load-bearing for data integrity,
// so every fetch or parse failure collapses into the sentinel pair.
type Probe struct {
	httpClient          *http.Client
	userAgent           string
	titleSentinel       string
	descriptionSentinel string
}

// ProbeOption defines a function type to modify the Probe instance.
type ProbeOption func(*Probe)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ProbeOption {
	return func(p *Probe) {
		p.httpClient = httpClient
	}
}

// WithSentinels overrides the fallback title and description strings.
func WithSentinels(title, description string) ProbeOption {
	return func(p *Probe) {
		p.titleSentinel = title
		p.descriptionSentinel = description
	}
}

// WithUserAgent overrides the User-Agent header sent with page fetches.
func WithUserAgent(userAgent string) ProbeOption {
	return func(p *Probe) {
		p.userAgent = userAgent
	}
}

func NewProbe(options ...ProbeOption) *Probe {
	p := &Probe{
		httpClient:          &http.Client{Timeout: defaultTimeout},
		userAgent:           defaultUserAgent,
		titleSentinel:       DefaultTitleSentinel,
		descriptionSentinel: DefaultDescriptionSentinel,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Probe returns the page's current title and meta description, or the
// sentinel pair on any failure. It never returns an error.
func (p *Probe) Probe(ctx context.Context, pageURL string) PageMetadata {
	md := PageMetadata{Title: p.titleSentinel, Description: p.descriptionSentinel}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("metadata probe: bad request")
		return md
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("metadata probe: fetch failed")
		return md
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Str("url", pageURL).Msg("metadata probe: unexpected status")
		return md
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("metadata probe: parse failed")
		return md
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		md.Title = title
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			md.Description = desc
		}
	}
	return md
}
