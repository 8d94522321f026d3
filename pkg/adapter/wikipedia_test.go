package adapter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/horizon/pkg/adapter"
)

func newWikiServer(t *testing.T, handler http.HandlerFunc) *adapter.WikipediaClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return adapter.NewWikipedia(
		adapter.WithEndpoint(srv.URL),
		adapter.WithUserAgent("horizon-test/1.0"),
	)
}

func TestPageLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("existing page", func(t *testing.T) {
		client := newWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
			gt.Equal(t, r.URL.Query().Get("action"), "query")
			gt.Equal(t, r.URL.Query().Get("titles"), "Marie Curie")
			gt.Equal(t, r.Header.Get("User-Agent"), "horizon-test/1.0")
			_, _ = w.Write([]byte(`{"query":{"pages":[{"pageid":1,"title":"Marie Curie","extract":"Physicist and chemist.","fullurl":"https://en.wikipedia.org/wiki/Marie_Curie"}]}}`))
		})

		page, err := client.PageLookup(ctx, "Marie Curie")
		gt.NoError(t, err)
		gt.True(t, page.Exists)
		gt.Equal(t, page.Title, "Marie Curie")
		gt.Equal(t, page.Summary, "Physicist and chemist.")
		gt.Equal(t, page.URL, "https://en.wikipedia.org/wiki/Marie_Curie")
	})

	t.Run("missing page", func(t *testing.T) {
		client := newWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"query":{"pages":[{"title":"Xyzzy Plugh","missing":true}]}}`))
		})

		page, err := client.PageLookup(ctx, "Xyzzy Plugh")
		gt.NoError(t, err)
		gt.False(t, page.Exists)
	})

	t.Run("server error", func(t *testing.T) {
		client := newWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.PageLookup(ctx, "Anything")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, adapter.ErrUnexpectedStatus))
	})

	t.Run("broken body", func(t *testing.T) {
		client := newWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		})

		_, err := client.PageLookup(ctx, "Anything")
		gt.Error(t, err)
	})
}

func TestOpenSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns titles", func(t *testing.T) {
		client := newWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
			gt.Equal(t, r.URL.Query().Get("action"), "opensearch")
			gt.Equal(t, r.URL.Query().Get("limit"), "10")
			gt.Equal(t, r.URL.Query().Get("namespace"), "0")
			_, _ = w.Write([]byte(`["python",["Python","Python (programming language)"],["",""],["u1","u2"]]`))
		})

		titles, err := client.OpenSearch(ctx, "python", 10)
		gt.NoError(t, err)
		gt.A(t, titles).Length(2)
		gt.Equal(t, titles[1], "Python (programming language)")
	})

	t.Run("malformed response", func(t *testing.T) {
		client := newWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`["python"]`))
		})

		_, err := client.OpenSearch(ctx, "python", 10)
		gt.Error(t, err)
	})
}

func TestWikipediaHonorsContextDeadline(t *testing.T) {
	client := newWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.PageLookup(ctx, "Slow")
	gt.Error(t, err)
}
