// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperdesk/internal/httputil"
	"github.com/pdiddy/paperdesk/pkg/types"
)

func init() {
	// Use a tiny backoff so retry tests finish quickly.
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func testClient(baseURL string) *Client {
	return NewClient(types.ArxivConfig{
		BaseURL:    baseURL,
		Delay:      1 * time.Millisecond,
		NumRetries: 1,
		Timeout:    5 * time.Second,
		UserAgent:  "paperdesk-test/0.1",
	})
}

// atomFeed renders a minimal Atom response with the given entries.
func atomFeed(total, start int, ids ...string) string {
	body := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opensearch="http://a9.com/-/spec/opensearch/1.1/">
  <opensearch:totalResults>%d</opensearch:totalResults>
  <opensearch:startIndex>%d</opensearch:startIndex>
  <opensearch:itemsPerPage>%d</opensearch:itemsPerPage>`, total, start, len(ids))
	for _, id := range ids {
		body += fmt.Sprintf(`
  <entry>
    <id>http://arxiv.org/abs/%s</id>
    <title>Paper %s</title>
    <summary>Summary of %s.</summary>
    <published>2024-03-01T00:00:00Z</published>
    <updated>2024-03-02T00:00:00Z</updated>
    <author><name>A. Author</name></author>
    <category term="cs.LG"/>
  </entry>`, id, id, id)
	}
	return body + "\n</feed>"
}

func TestSearchSinglePage(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, atomFeed(2, 0, "2506.05176v3", "2301.07041v1"))
	}))
	defer ts.Close()

	papers, err := testClient(ts.URL).Search(context.Background(), Filter{
		AllTerms:   "attention",
		MaxResults: 10,
	})
	require.NoError(t, err)
	require.Len(t, papers, 2)

	assert.Equal(t, "2506.05176", papers[0].ArxivID)
	assert.Equal(t, "v3", papers[0].Version)
	assert.Equal(t, "Paper 2506.05176v3", papers[0].Title)

	assert.Equal(t, "all:attention", gotQuery.Get("search_query"))
	assert.Equal(t, "relevance", gotQuery.Get("sortBy"))
	assert.Equal(t, "descending", gotQuery.Get("sortOrder"))
	assert.Equal(t, "0", gotQuery.Get("start"))
	assert.Equal(t, "10", gotQuery.Get("max_results"))
}

func TestSearchIDListModeBypassesQuery(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, atomFeed(1, 0, "2506.05176v3"))
	}))
	defer ts.Close()

	papers, err := testClient(ts.URL).Search(context.Background(), Filter{
		AllTerms:   "ignored in id mode",
		IDList:     []string{"2506.05176", "2301.07041"},
		MaxResults: 10,
	})
	require.NoError(t, err)
	require.Len(t, papers, 1)

	assert.Equal(t, "2506.05176,2301.07041", gotQuery.Get("id_list"))
	assert.Empty(t, gotQuery.Get("search_query"))
	assert.Empty(t, gotQuery.Get("sortBy"))
}

func TestSearchClampsResultCap(t *testing.T) {
	var gotMax string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMax = r.URL.Query().Get("max_results")
		fmt.Fprint(w, atomFeed(0, 0))
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Search(context.Background(), Filter{
		AllTerms:   "x",
		MaxResults: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, "50", gotMax)
}

func TestSearchPaginatesUpToCap(t *testing.T) {
	var requests int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		switch start {
		case 0:
			fmt.Fprint(w, atomFeed(3, 0, "2401.00001v1", "2401.00002v1"))
		case 2:
			fmt.Fprint(w, atomFeed(3, 2, "2401.00003v1"))
		default:
			t.Errorf("unexpected start=%d", start)
		}
	}))
	defer ts.Close()

	client := NewClient(types.ArxivConfig{
		BaseURL:  ts.URL,
		PageSize: 2,
		Delay:    1 * time.Millisecond,
	})

	papers, err := client.Search(context.Background(), Filter{
		AllTerms:   "x",
		MaxResults: 3,
	})
	require.NoError(t, err)
	require.Len(t, papers, 3)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
	assert.Equal(t, "2401.00003", papers[2].ArxivID)
}

func TestSearchPreservesProviderOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, atomFeed(3, 0, "2401.00003v1", "2401.00001v1", "2401.00002v1"))
	}))
	defer ts.Close()

	papers, err := testClient(ts.URL).Search(context.Background(), Filter{
		AllTerms:   "x",
		MaxResults: 10,
	})
	require.NoError(t, err)
	require.Len(t, papers, 3)
	assert.Equal(t, "2401.00003", papers[0].ArxivID)
	assert.Equal(t, "2401.00001", papers[1].ArxivID)
	assert.Equal(t, "2401.00002", papers[2].ArxivID)
}

func TestSearchUpstreamFailureAfterRetries(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Search(context.Background(), Filter{
		AllTerms:   "x",
		MaxResults: 10,
	})
	require.Error(t, err)

	var ue *UpstreamError
	assert.True(t, errors.As(err, &ue), "error should be *UpstreamError, got %T", err)
	// One attempt plus the configured single retry.
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSearchTransientFailureRecovers(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, atomFeed(1, 0, "2506.05176v1"))
	}))
	defer ts.Close()

	papers, err := testClient(ts.URL).Search(context.Background(), Filter{
		AllTerms:   "x",
		MaxResults: 10,
	})
	require.NoError(t, err)
	require.Len(t, papers, 1)
}
