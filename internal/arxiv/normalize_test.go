// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"testing"
	"time"
)

func TestParseArxivID(t *testing.T) {
	tests := []struct {
		name        string
		idURL       string
		wantID      string
		wantVersion string
	}{
		{"versioned", "http://arxiv.org/abs/2506.05176v3", "2506.05176", "v3"},
		{"unversioned", "http://arxiv.org/abs/2506.05176", "2506.05176", ""},
		{"multi-digit version", "http://arxiv.org/abs/2301.07041v12", "2301.07041", "v12"},
		{"old-style identifier", "http://arxiv.org/abs/hep-th/9901001v2", "9901001", "v2"},
		{"bare segment", "2506.05176v1", "2506.05176", "v1"},
		{"trailing v without digits", "http://arxiv.org/abs/2506.05176v", "2506.05176v", ""},
		{"v followed by non-digits", "http://arxiv.org/abs/2506.05176vXY", "2506.05176vXY", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, version := parseArxivID(tt.idURL)
			if id != tt.wantID || version != tt.wantVersion {
				t.Errorf("parseArxivID(%q) = (%q, %q), want (%q, %q)",
					tt.idURL, id, version, tt.wantID, tt.wantVersion)
			}
		})
	}
}

func TestNormalizeFullEntry(t *testing.T) {
	e := Entry{
		ID:        "http://arxiv.org/abs/2506.05176v3",
		Title:     "  Attention Is All You Need \n",
		Summary:   "\n  We propose the Transformer.  ",
		Published: "2017-06-12T17:57:34Z",
		Updated:   "2017-12-06T03:30:32Z",
		Authors: []entryAuthor{
			{Name: "Ashish Vaswani"},
			{Name: "Noam Shazeer"},
		},
		Categories: []entryCategory{
			{Term: "cs.CL"},
			{Term: "cs.LG"},
		},
		PrimaryCategory: entryCategory{Term: "cs.CL"},
		Links: []entryLink{
			{Href: "http://arxiv.org/abs/2506.05176v3", Rel: "alternate", Type: "text/html"},
			{Href: "http://arxiv.org/pdf/2506.05176v3", Rel: "related", Title: "pdf"},
		},
		DOI:        "10.1000/xyz",
		JournalRef: "NeurIPS 2017",
	}

	p := Normalize(e)

	if p.ArxivID != "2506.05176" || p.Version != "v3" {
		t.Errorf("ID/version = %q/%q", p.ArxivID, p.Version)
	}
	if p.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q, want trimmed", p.Title)
	}
	if p.Summary != "We propose the Transformer." {
		t.Errorf("Summary = %q, want trimmed", p.Summary)
	}
	if len(p.Authors) != 2 || p.Authors[0] != "Ashish Vaswani" {
		t.Errorf("Authors = %v", p.Authors)
	}
	if len(p.Categories) != 2 || p.Categories[0] != "cs.CL" || p.Categories[1] != "cs.LG" {
		t.Errorf("Categories = %v, want source order", p.Categories)
	}
	if p.PrimaryCategory != "cs.CL" {
		t.Errorf("PrimaryCategory = %q", p.PrimaryCategory)
	}
	if p.Published == nil || !p.Published.Equal(time.Date(2017, 6, 12, 17, 57, 34, 0, time.UTC)) {
		t.Errorf("Published = %v", p.Published)
	}
	if p.Updated == nil {
		t.Error("Updated = nil, want parsed")
	}
	if p.PDFURL != "http://arxiv.org/pdf/2506.05176v3" {
		t.Errorf("PDFURL = %q", p.PDFURL)
	}
	if p.AbsURL != "http://arxiv.org/abs/2506.05176v3" {
		t.Errorf("AbsURL = %q, want the canonical identifier URL", p.AbsURL)
	}
	if p.DOI != "10.1000/xyz" || p.JournalRef != "NeurIPS 2017" {
		t.Errorf("DOI/JournalRef = %q/%q", p.DOI, p.JournalRef)
	}
}

func TestNormalizeMinimalEntryDefaults(t *testing.T) {
	p := Normalize(Entry{ID: "http://arxiv.org/abs/2506.05176"})

	if p.Title != "" || p.Summary != "" {
		t.Errorf("Title/Summary = %q/%q, want empty strings", p.Title, p.Summary)
	}
	if p.Authors == nil || len(p.Authors) != 0 {
		t.Errorf("Authors = %#v, want empty non-nil list", p.Authors)
	}
	if p.Categories == nil || len(p.Categories) != 0 {
		t.Errorf("Categories = %#v, want empty non-nil list", p.Categories)
	}
	if p.Published != nil || p.Updated != nil {
		t.Errorf("timestamps = %v/%v, want absent", p.Published, p.Updated)
	}
	if p.PDFURL != "" || p.DOI != "" || p.JournalRef != "" {
		t.Error("optional fields should default to empty")
	}
	if p.Version != "" {
		t.Errorf("Version = %q, want absent", p.Version)
	}
}

func TestNormalizeMalformedTimestamp(t *testing.T) {
	p := Normalize(Entry{
		ID:        "http://arxiv.org/abs/2506.05176v1",
		Published: "yesterday",
	})
	if p.Published != nil {
		t.Errorf("Published = %v, want nil for malformed timestamp", p.Published)
	}
}
