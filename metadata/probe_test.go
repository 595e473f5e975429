package metadata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seolab/gapscout/metadata"
)

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestProbe_TitleAndDescription(t *testing.T) {
	server := serveHTML(t, `<html><head>
		<title>  Red Shoes Shop  </title>
		<meta name="description" content="Buy the best red shoes online.">
	</head><body></body></html>`)

	md := metadata.NewProbe().Probe(context.Background(), server.URL)
	require.Equal(t, "Red Shoes Shop", md.Title)
	require.Equal(t, "Buy the best red shoes online.", md.Description)
}

func TestProbe_MissingTagsYieldSentinels(t *testing.T) {
	t.Run("no title", func(t *testing.T) {
		server := serveHTML(t, `<html><head><meta name="description" content="desc"></head></html>`)
		md := metadata.NewProbe().Probe(context.Background(), server.URL)
		require.Equal(t, metadata.DefaultTitleSentinel, md.Title)
		require.Equal(t, "desc", md.Description)
	})

	t.Run("no meta description", func(t *testing.T) {
		server := serveHTML(t, `<html><head><title>Title</title></head></html>`)
		md := metadata.NewProbe().Probe(context.Background(), server.URL)
		require.Equal(t, "Title", md.Title)
		require.Equal(t, metadata.DefaultDescriptionSentinel, md.Description)
	})

	t.Run("empty description content", func(t *testing.T) {
		server := serveHTML(t, `<html><head><meta name="description" content="   "></head></html>`)
		md := metadata.NewProbe().Probe(context.Background(), server.URL)
		require.Equal(t, metadata.DefaultDescriptionSentinel, md.Description)
	})
}

func TestProbe_UnreachableURLSentinelStability(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	probe := metadata.NewProbe()

	first := probe.Probe(context.Background(), server.URL)
	second := probe.Probe(context.Background(), server.URL)

	want := metadata.PageMetadata{
		Title:       metadata.DefaultTitleSentinel,
		Description: metadata.DefaultDescriptionSentinel,
	}
	require.Equal(t, want, first)
	require.Equal(t, want, second)
}

func TestProbe_NonSuccessStatusYieldsSentinels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	md := metadata.NewProbe().Probe(context.Background(), server.URL)
	require.Equal(t, metadata.DefaultTitleSentinel, md.Title)
	require.Equal(t, metadata.DefaultDescriptionSentinel, md.Description)
}

func TestProbe_CustomSentinels(t *testing.T) {
	probe := metadata.NewProbe(metadata.WithSentinels("missing title", "missing description"))

	md := probe.Probe(context.Background(), "http://127.0.0.1:0")
	require.Equal(t, "missing title", md.Title)
	require.Equal(t, "missing description", md.Description)
}

func TestProbe_SendsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<html><head><title>ok</title></head></html>`))
	}))
	defer server.Close()

	metadata.NewProbe(metadata.WithUserAgent("gapscout-test")).Probe(context.Background(), server.URL)
	require.Equal(t, "gapscout-test", gotUA)
}
