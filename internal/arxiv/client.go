// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/paperdesk/internal/httputil"
	"github.com/pdiddy/paperdesk/pkg/types"
)

// defaultBaseURL is the arXiv search endpoint. Overridden per-client in
// tests via ArxivConfig.BaseURL.
const defaultBaseURL = "https://export.arxiv.org/api/query"

const (
	defaultDelay   = 3 * time.Second
	defaultRetries = 3
	defaultTimeout = 30 * time.Second
)

// UpstreamError reports a provider failure after the configured retries were
// exhausted. The API boundary maps it to a 502.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return "arxiv search: " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client queries the arXiv API with the provider's rate-limit policy: a
// minimum inter-request delay and bounded automatic retries. A Client is
// safe for concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	limiter   *rate.Limiter
	pageSize  int
	retries   int
	userAgent string
}

// NewClient builds a Client from configuration, filling provider-recommended
// defaults (3 s delay, 3 retries) for unset values.
func NewClient(cfg types.ArxivConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	pageSize := cfg.PageSize
	if pageSize < 1 || pageSize > maxResultCap {
		pageSize = maxResultCap
	}
	delay := cfg.Delay
	if delay <= 0 {
		delay = defaultDelay
	}
	retries := cfg.NumRetries
	if retries <= 0 {
		retries = defaultRetries
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Every(delay), 1),
		pageSize:  pageSize,
		retries:   retries,
		userAgent: cfg.UserAgent,
	}
}

// Search executes the filter and returns at most EffectiveMax normalized
// papers in provider order. A non-empty IDList issues an identifier lookup;
// otherwise the compiled query string is sent with the filter's sort
// parameters. Any provider failure surfaces as a single *UpstreamError.
func (c *Client) Search(ctx context.Context, f Filter) ([]types.Paper, error) {
	max := f.EffectiveMax()

	papers := make([]types.Paper, 0, max)
	for entry, err := range c.entries(ctx, f, max) {
		if err != nil {
			return nil, &UpstreamError{Err: err}
		}
		papers = append(papers, Normalize(entry))
	}
	return papers, nil
}

// entries returns a lazy sequence over raw feed entries, fetching pages as
// needed and stopping after max entries. Errors end the sequence and are
// yielded as the second value.
func (c *Client) entries(ctx context.Context, f Filter, max int) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		start, yielded := 0, 0
		for {
			fd, err := c.fetchPage(ctx, f, start, min(c.pageSize, max-yielded))
			if err != nil {
				yield(Entry{}, err)
				return
			}
			for _, e := range fd.Entries {
				if !yield(e, nil) {
					return
				}
				yielded++
				if yielded >= max {
					return
				}
			}
			start += len(fd.Entries)
			if len(fd.Entries) == 0 || start >= fd.TotalResults {
				return
			}
		}
	}
}

// fetchPage requests one result page, honoring the inter-request delay and
// the bounded retry policy.
func (c *Client) fetchPage(ctx context.Context, f Filter, start, count int) (*feed, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?"+pageQuery(f, start, count), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(c.http, req, c.retries)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var fd feed
	if err := xml.NewDecoder(resp.Body).Decode(&fd); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}
	return &fd, nil
}

// pageQuery encodes the request parameters for one page. Identifier-list
// mode and query mode are mutually exclusive; sort parameters apply only to
// query mode.
func pageQuery(f Filter, start, count int) string {
	q := url.Values{}

	if len(f.IDList) > 0 {
		q.Set("id_list", strings.Join(f.IDList, ","))
	} else {
		q.Set("search_query", BuildQuery(f))

		sortBy := f.SortBy
		if sortBy == "" {
			sortBy = SortByRelevance
		}
		sortOrder := f.SortOrder
		if sortOrder == "" {
			sortOrder = SortOrderDescending
		}
		q.Set("sortBy", string(sortBy))
		q.Set("sortOrder", string(sortOrder))
	}

	q.Set("start", strconv.Itoa(start))
	q.Set("max_results", strconv.Itoa(count))
	return q.Encode()
}
