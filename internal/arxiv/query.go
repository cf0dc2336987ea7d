// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv compiles structured search filters into arXiv API queries,
// executes them against the public endpoint, and normalizes the Atom results
// into the internal Paper representation.
package arxiv

import (
	"fmt"
	"strings"
	"time"
)

// SortBy selects the provider-side result ordering.
type SortBy string

const (
	SortByRelevance       SortBy = "relevance"
	SortBySubmittedDate   SortBy = "submittedDate"
	SortByLastUpdatedDate SortBy = "lastUpdatedDate"
)

// SortOrder selects the provider-side sort direction.
type SortOrder string

const (
	SortOrderAscending  SortOrder = "ascending"
	SortOrderDescending SortOrder = "descending"
)

// DateMode selects which timestamp a date-range filter applies to.
type DateMode string

const (
	DateModeSubmitted DateMode = "submitted"
	DateModeUpdated   DateMode = "updated"
)

// maxResultCap is the enforced upper bound on results per search call.
const maxResultCap = 50

// fallbackQuery is sent when a filter carries no criteria at all: the
// provider rejects empty queries. The choice of term is arbitrary and
// caller-visible, not meaningful.
const fallbackQuery = "all:electron"

// rangeFloor is the default lower bound for open-ended date ranges.
var rangeFloor = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

// timeNow is stubbed in tests that pin the date-range upper bound.
var timeNow = time.Now

// Date is a calendar date carried as "YYYY-MM-DD" in JSON and on CLI flags.
// The zero value means absent.
type Date struct {
	time.Time
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// UnmarshalJSON accepts "YYYY-MM-DD", null, or "".
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON emits "YYYY-MM-DD" or null when absent.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// Filter is a structured search request. Field-scoped terms, categories, and
// the date range compile into the provider query string; sort and result cap
// travel as separate request parameters. A non-empty IDList switches the
// request to identifier-lookup mode and bypasses query compilation entirely.
type Filter struct {
	AllTerms   string    `json:"all_terms,omitempty"`
	Title      string    `json:"title,omitempty"`
	Abstract   string    `json:"abstract,omitempty"`
	Author     string    `json:"author,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	DateMode   DateMode  `json:"date_mode,omitempty"`
	DateFrom   Date      `json:"date_from,omitempty"`
	DateTo     Date      `json:"date_to,omitempty"`
	SortBy     SortBy    `json:"sort_by,omitempty"`
	SortOrder  SortOrder `json:"sort_order,omitempty"`
	MaxResults int       `json:"max_results,omitempty"`
	IDList     []string  `json:"id_list,omitempty"`
}

// EffectiveMax returns the result cap clamped into [1, 50].
func (f Filter) EffectiveMax() int {
	if f.MaxResults < 1 {
		return 1
	}
	if f.MaxResults > maxResultCap {
		return maxResultCap
	}
	return f.MaxResults
}

// BuildQuery compiles the filter into the provider's search_query string.
// Each populated scoped field becomes a field-prefixed clause, categories an
// OR-group, and the date range a bracketed interval; clauses are joined with
// AND. An empty filter yields the fixed fallback query.
func BuildQuery(f Filter) string {
	var parts []string

	if f.AllTerms != "" {
		parts = append(parts, "all:"+f.AllTerms)
	}
	if f.Title != "" {
		parts = append(parts, "ti:"+f.Title)
	}
	if f.Abstract != "" {
		parts = append(parts, "abs:"+f.Abstract)
	}
	if f.Author != "" {
		parts = append(parts, "au:"+f.Author)
	}

	if len(f.Categories) > 0 {
		clauses := make([]string, len(f.Categories))
		for i, c := range f.Categories {
			clauses[i] = "cat:" + c
		}
		parts = append(parts, "("+strings.Join(clauses, " OR ")+")")
	}

	// The range clause needs a mode and at least one bound; a mode alone
	// would select everything and a bound alone is ambiguous.
	if f.DateMode != "" && (!f.DateFrom.IsZero() || !f.DateTo.IsZero()) {
		field := "lastUpdatedDate"
		if f.DateMode == DateModeSubmitted {
			field = "submittedDate"
		}

		from := rangeFloor
		if !f.DateFrom.IsZero() {
			from = f.DateFrom.Time
		}
		to := timeNow()
		if !f.DateTo.IsZero() {
			to = f.DateTo.Time
		}

		parts = append(parts, fmt.Sprintf("%s:[%s TO %s]",
			field, formatRangeBound(from, true), formatRangeBound(to, false)))
	}

	if len(parts) == 0 {
		return fallbackQuery
	}
	return strings.Join(parts, " AND ")
}

// formatRangeBound expands a calendar date to the provider's 14-digit
// timestamp form, padding to start or end of day.
func formatRangeBound(t time.Time, start bool) string {
	if start {
		return t.Format("20060102") + "000000"
	}
	return t.Format("20060102") + "235959"
}
