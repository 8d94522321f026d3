// Package lookup turns encyclopedia calls into model.LookupResult values.
// Collaborator failures never escape this package.
package lookup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/horizon/pkg/adapter"
	"github.com/m-mizutani/horizon/pkg/model"
	"github.com/m-mizutani/horizon/pkg/utils/logging"
	"github.com/patrickmn/go-cache"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultTimeout = 5 * time.Second
	searchLimit    = 10
)

type Adapter struct {
	client  adapter.Encyclopedia
	timeout time.Duration
	cache   *cache.Cache
	now     func() time.Time
}

type Option func(*Adapter)

// WithTimeout bounds each lookup including the fallback search
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		a.timeout = d
	}
}

// WithCacheTTL keeps non-error results per title for ttl. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(a *Adapter) {
		if ttl <= 0 {
			a.cache = nil
			return
		}
		a.cache = cache.New(ttl, 2*ttl)
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		a.now = now
	}
}

func New(client adapter.Encyclopedia, opts ...Option) *Adapter {
	a := &Adapter{
		client:  client,
		timeout: DefaultTimeout,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Lookup title-cases subject, fetches its page and falls back to an open
// search for suggestions when the page does not exist
func (a *Adapter) Lookup(ctx context.Context, subject string) model.LookupResult {
	title := cases.Title(language.English).String(strings.TrimSpace(subject))
	if title == "" {
		return &model.LookupNotFound{Query: title}
	}

	if a.cache != nil {
		if v, ok := a.cache.Get(title); ok {
			logging.From(ctx).Debug("lookup cache hit", "title", title)
			return v.(model.LookupResult)
		}
	}

	result := a.fetch(ctx, title)
	if _, failed := result.(*model.LookupError); !failed && a.cache != nil {
		a.cache.Set(title, result, cache.DefaultExpiration)
	}
	return result
}

func (a *Adapter) fetch(ctx context.Context, title string) model.LookupResult {
	logger := logging.From(ctx)
	logger.Info("searching encyclopedia", "title", title)

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	page, err := a.client.PageLookup(ctx, title)
	if err != nil {
		logger.Warn("encyclopedia lookup failed", "error", err)
		return &model.LookupError{Message: fmt.Sprintf("Error retrieving information: %s", err.Error())}
	}

	if page != nil && page.Exists {
		return &model.LookupFound{
			Title:       page.Title,
			Summary:     model.TruncateSummary(page.Summary),
			URL:         page.URL,
			RetrievedAt: a.now(),
		}
	}

	titles, err := a.client.OpenSearch(ctx, title, searchLimit)
	if err != nil {
		logger.Warn("encyclopedia search failed", "error", err)
		return &model.LookupError{Message: fmt.Sprintf("Error retrieving information: %s", err.Error())}
	}

	if len(titles) == 0 {
		return &model.LookupNotFound{Query: title}
	}
	if len(titles) > model.MaxSuggestions {
		titles = titles[:model.MaxSuggestions]
	}

	return &model.LookupSuggestions{
		Query:       title,
		Suggestions: titles,
	}
}
