package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/horizon/pkg/model"
	"golang.org/x/time/rate"
)

const (
	DefaultWikipediaEndpoint  = "https://en.wikipedia.org/w/api.php"
	DefaultWikipediaUserAgent = "HorizonAI/1.4 (https://horizon-ai.example.com; info@horizon-ai.example.com)"
)

var ErrUnexpectedStatus = goerr.New("unexpected status code")

// Encyclopedia is the external knowledge collaborator
type Encyclopedia interface {
	// PageLookup fetches the introduction of the page with the exact title
	PageLookup(ctx context.Context, title string) (*model.Page, error)
	// OpenSearch returns titles related to query
	OpenSearch(ctx context.Context, query string, limit int) ([]string, error)
}

// WikipediaClient talks to the MediaWiki action API
type WikipediaClient struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type WikipediaOption func(*WikipediaClient)

func WithEndpoint(endpoint string) WikipediaOption {
	return func(w *WikipediaClient) {
		w.endpoint = endpoint
	}
}

func WithUserAgent(userAgent string) WikipediaOption {
	return func(w *WikipediaClient) {
		w.userAgent = userAgent
	}
}

func WithHTTPClient(client *http.Client) WikipediaOption {
	return func(w *WikipediaClient) {
		w.httpClient = client
	}
}

// WithMinInterval spaces out requests by at least interval. Zero disables limiting.
func WithMinInterval(interval time.Duration) WikipediaOption {
	return func(w *WikipediaClient) {
		if interval <= 0 {
			w.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		w.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

func NewWikipedia(opts ...WikipediaOption) *WikipediaClient {
	w := &WikipediaClient{
		endpoint:  DefaultWikipediaEndpoint,
		userAgent: DefaultWikipediaUserAgent,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Inf, 0),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

type queryResponse struct {
	Query struct {
		Pages []struct {
			Title   string `json:"title"`
			Missing bool   `json:"missing"`
			Invalid bool   `json:"invalid"`
			Extract string `json:"extract"`
			FullURL string `json:"fullurl"`
		} `json:"pages"`
	} `json:"query"`
}

func (w *WikipediaClient) PageLookup(ctx context.Context, title string) (*model.Page, error) {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"prop":          {"extracts|info"},
		"exintro":       {"1"},
		"explaintext":   {"1"},
		"inprop":        {"url"},
		"redirects":     {"1"},
		"titles":        {title},
	}

	var resp queryResponse
	if err := w.get(ctx, params, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to lookup page", goerr.V("title", title))
	}

	if len(resp.Query.Pages) == 0 {
		return &model.Page{Title: title}, nil
	}

	p := resp.Query.Pages[0]
	if p.Missing || p.Invalid {
		return &model.Page{Title: title}, nil
	}

	return &model.Page{
		Exists:  true,
		Title:   p.Title,
		Summary: p.Extract,
		URL:     p.FullURL,
	}, nil
}

func (w *WikipediaClient) OpenSearch(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{
		"action":    {"opensearch"},
		"format":    {"json"},
		"search":    {query},
		"limit":     {strconv.Itoa(limit)},
		"namespace": {"0"},
	}

	// [query, [titles...], [descriptions...], [urls...]]
	var resp []json.RawMessage
	if err := w.get(ctx, params, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to search pages", goerr.V("query", query))
	}
	if len(resp) < 2 {
		return nil, goerr.New("malformed opensearch response", goerr.V("query", query))
	}

	var titles []string
	if err := json.Unmarshal(resp[1], &titles); err != nil {
		return nil, goerr.Wrap(err, "failed to decode opensearch titles")
	}

	return titles, nil
}

func (w *WikipediaClient) get(ctx context.Context, params url.Values, out any) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return goerr.Wrap(err, "rate limiter aborted")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", w.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return goerr.Wrap(ErrUnexpectedStatus, "encyclopedia API returned error",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode response")
	}

	return nil
}
