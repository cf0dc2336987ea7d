// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for paperdesk: arXiv paper
// metadata, saved-paper records, and component configuration.
package types

import "time"

// Paper holds the normalized metadata for one arXiv paper. It is the stable
// internal representation produced by the search layer and persisted by the
// store; the arXiv ID is the business key, independent of version.
type Paper struct {
	// ArxivID is the provider-issued identifier (e.g. "2506.05176"),
	// without any version suffix.
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Version is the revision marker for this record (e.g. "v3"), empty
	// when the provider returned an unversioned identifier.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Title is the paper title, whitespace-trimmed.
	Title string `json:"title" yaml:"title"`

	// Summary is the abstract, whitespace-trimmed.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Authors lists author display names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// PrimaryCategory is the primary subject classification (e.g. "cs.LG").
	PrimaryCategory string `json:"primary_category,omitempty" yaml:"primary_category,omitempty"`

	// Categories lists all subject classifications in source order.
	Categories []string `json:"categories" yaml:"categories"`

	// Published is the first-submission timestamp, nil when absent.
	Published *time.Time `json:"published,omitempty" yaml:"published,omitempty"`

	// Updated is the last-revision timestamp, nil when absent.
	Updated *time.Time `json:"updated,omitempty" yaml:"updated,omitempty"`

	// PDFURL links to the PDF rendition.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// AbsURL is the canonical abstract-page URL as returned by the
	// provider, versioned (e.g. "http://arxiv.org/abs/2506.05176v3").
	AbsURL string `json:"abs_url,omitempty" yaml:"abs_url,omitempty"`

	// DOI is the Digital Object Identifier when one has been registered.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// JournalRef is the free-form journal reference string.
	JournalRef string `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`
}

// SavedPaper is a user's persisted annotation over a Paper: free-form tags
// and a note, plus bookkeeping timestamps. At most one SavedPaper exists per
// Paper.
type SavedPaper struct {
	// ID is the primary key of the saved record.
	ID int64 `json:"id" yaml:"id"`

	// PaperID is the primary key of the owned Paper row.
	PaperID int64 `json:"paper_id" yaml:"paper_id"`

	// Tags is a free-form tag string (e.g. "ml, attention").
	Tags string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Note is a free-form annotation.
	Note string `json:"note,omitempty" yaml:"note,omitempty"`

	// CreatedAt is when the record was first saved.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when tags or note were last modified.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`

	// Paper is the owned paper metadata, joined on read.
	Paper Paper `json:"paper" yaml:"paper"`
}
