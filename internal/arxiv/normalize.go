// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"strings"
	"time"

	"github.com/pdiddy/paperdesk/pkg/types"
)

// Normalize maps one raw Atom entry to the internal Paper representation.
// Parsing edge cases (missing fields, malformed timestamps, unversioned
// identifiers) default locally and never fail.
func Normalize(e Entry) types.Paper {
	id, version := parseArxivID(e.ID)

	p := types.Paper{
		ArxivID:         id,
		Version:         version,
		Title:           strings.TrimSpace(e.Title),
		Summary:         strings.TrimSpace(e.Summary),
		Authors:         []string{},
		PrimaryCategory: e.PrimaryCategory.Term,
		Categories:      []string{},
		Published:       parseEntryTime(e.Published),
		Updated:         parseEntryTime(e.Updated),
		AbsURL:          e.ID,
		DOI:             e.DOI,
		JournalRef:      e.JournalRef,
	}

	for _, a := range e.Authors {
		p.Authors = append(p.Authors, a.Name)
	}
	for _, c := range e.Categories {
		p.Categories = append(p.Categories, c.Term)
	}

	for _, l := range e.Links {
		if l.Title == "pdf" || l.Type == "application/pdf" {
			p.PDFURL = l.Href
			break
		}
	}

	return p
}

// parseArxivID splits an entry's canonical identifier URL into the stable
// arXiv ID and its version tag: "http://arxiv.org/abs/2506.05176v3" yields
// ("2506.05176", "v3"). Identifiers without a trailing v<digits> suffix
// return an empty version.
func parseArxivID(idURL string) (id, version string) {
	last := idURL
	if i := strings.LastIndex(idURL, "/"); i >= 0 {
		last = idURL[i+1:]
	}

	if v := strings.LastIndex(last, "v"); v > 0 {
		if suffix := last[v+1:]; suffix != "" && allDigits(suffix) {
			return last[:v], last[v:]
		}
	}
	return last, ""
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseEntryTime parses an Atom timestamp, returning nil when the field is
// absent or malformed.
func parseEntryTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
