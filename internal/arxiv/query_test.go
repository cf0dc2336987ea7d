// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"encoding/json"
	"testing"
	"time"
)

// --- BuildQuery ---

func TestBuildQueryEmptyFilterFallsBack(t *testing.T) {
	if got := BuildQuery(Filter{}); got != "all:electron" {
		t.Errorf("BuildQuery(empty) = %q, want %q", got, "all:electron")
	}
}

func TestBuildQueryScopedFields(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{"all terms", Filter{AllTerms: "electron"}, "all:electron"},
		{"title", Filter{Title: "attention"}, "ti:attention"},
		{"abstract", Filter{Abstract: "transformer"}, "abs:transformer"},
		{"author", Filter{Author: "Hinton"}, "au:Hinton"},
		{
			"all fields joined with AND",
			Filter{AllTerms: "nlp", Title: "bert", Abstract: "mask", Author: "Devlin"},
			"all:nlp AND ti:bert AND abs:mask AND au:Devlin",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.filter); got != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildQueryCategoriesPreserveOrder(t *testing.T) {
	got := BuildQuery(Filter{Categories: []string{"cs.LG", "cs.AI", "stat.ML"}})
	want := "(cat:cs.LG OR cat:cs.AI OR cat:stat.ML)"
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuildQuerySingleCategoryStillParenthesized(t *testing.T) {
	if got := BuildQuery(Filter{Categories: []string{"cs.LG"}}); got != "(cat:cs.LG)" {
		t.Errorf("BuildQuery() = %q, want %q", got, "(cat:cs.LG)")
	}
}

func TestBuildQueryDateRange(t *testing.T) {
	restore := timeNow
	timeNow = func() time.Time {
		return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() { timeNow = restore })

	day := func(y int, m time.Month, d int) Date {
		return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
	}

	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{
			"submitted with both bounds",
			Filter{DateMode: DateModeSubmitted, DateFrom: day(2024, 1, 1), DateTo: day(2024, 6, 30)},
			"submittedDate:[20240101000000 TO 20240630235959]",
		},
		{
			"updated mode uses lastUpdatedDate",
			Filter{DateMode: DateModeUpdated, DateFrom: day(2024, 1, 1), DateTo: day(2024, 6, 30)},
			"lastUpdatedDate:[20240101000000 TO 20240630235959]",
		},
		{
			"missing to defaults to today",
			Filter{DateMode: DateModeSubmitted, DateFrom: day(2024, 1, 1)},
			"submittedDate:[20240101000000 TO 20260831235959]",
		},
		{
			"missing from defaults to 1990-01-01",
			Filter{DateMode: DateModeSubmitted, DateTo: day(2024, 6, 30)},
			"submittedDate:[19900101000000 TO 20240630235959]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.filter); got != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildQueryDateRangeRequiresModeAndBound(t *testing.T) {
	// A mode without bounds emits no range clause.
	if got := BuildQuery(Filter{DateMode: DateModeSubmitted}); got != "all:electron" {
		t.Errorf("mode only: BuildQuery() = %q, want fallback", got)
	}

	// A bound without a mode emits no range clause either.
	from := Date{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	if got := BuildQuery(Filter{DateFrom: from}); got != "all:electron" {
		t.Errorf("bound only: BuildQuery() = %q, want fallback", got)
	}
}

func TestBuildQueryCombinesClauses(t *testing.T) {
	got := BuildQuery(Filter{
		AllTerms:   "attention",
		Categories: []string{"cs.LG", "cs.CL"},
	})
	want := "all:attention AND (cat:cs.LG OR cat:cs.CL)"
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

// --- EffectiveMax ---

func TestEffectiveMaxClamping(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{1000, 50},
		{51, 50},
		{50, 50},
		{20, 20},
		{1, 1},
		{0, 1},
		{-5, 1},
	}
	for _, tt := range tests {
		if got := (Filter{MaxResults: tt.in}).EffectiveMax(); got != tt.want {
			t.Errorf("EffectiveMax(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// --- Date ---

func TestDateJSONRoundTrip(t *testing.T) {
	var f Filter
	if err := json.Unmarshal([]byte(`{"date_from":"2024-01-15","date_to":null}`), &f); err != nil {
		t.Fatal(err)
	}
	if f.DateFrom.Format("2006-01-02") != "2024-01-15" {
		t.Errorf("DateFrom = %v, want 2024-01-15", f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		t.Errorf("DateTo = %v, want zero", f.DateTo)
	}

	out, err := json.Marshal(f.DateFrom)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"2024-01-15"` {
		t.Errorf("Marshal = %s, want %q", out, `"2024-01-15"`)
	}
}

func TestDateJSONRejectsMalformed(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"15/01/2024"`), &d); err == nil {
		t.Error("expected error for malformed date")
	}
}
