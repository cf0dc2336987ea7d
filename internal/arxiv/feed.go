// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

// Atom feed structures for the arXiv query API. Only the fields the
// normalizer consumes are mapped.

type feed struct {
	TotalResults int     `xml:"totalResults"`
	StartIndex   int     `xml:"startIndex"`
	ItemsPerPage int     `xml:"itemsPerPage"`
	Entries      []Entry `xml:"entry"`
}

// Entry is one raw provider record from the Atom feed.
type Entry struct {
	// ID is the canonical abstract-page URL, versioned
	// (e.g. "http://arxiv.org/abs/2506.05176v3").
	ID              string          `xml:"id"`
	Title           string          `xml:"title"`
	Summary         string          `xml:"summary"`
	Published       string          `xml:"published"`
	Updated         string          `xml:"updated"`
	Authors         []entryAuthor   `xml:"author"`
	Categories      []entryCategory `xml:"category"`
	PrimaryCategory entryCategory   `xml:"primary_category"`
	Links           []entryLink     `xml:"link"`
	DOI             string          `xml:"doi"`
	JournalRef      string          `xml:"journal_ref"`
}

type entryAuthor struct {
	Name string `xml:"name"`
}

type entryCategory struct {
	Term string `xml:"term,attr"`
}

type entryLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}
