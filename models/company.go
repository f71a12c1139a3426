package models

import "strings"

// Company is one startup extracted from the YC directory.
// Instances are immutable once produced by the extractor.
type Company struct {
	// Name is the company name as shown on the listing card.
	Name string

	// ProfileURL is the absolute URL of the company's YC profile page.
	// It is the identity of the record: one row per ProfileURL per run.
	ProfileURL string

	// Location and Description come from the listing card and may be empty.
	Location    string
	Description string

	// Website, LinkedIn and FounderLinkedIn are filled in by profile
	// enrichment when enabled; empty otherwise.
	Website         string
	LinkedIn        string
	FounderLinkedIn []string
}

// FoundersJoined renders the founder LinkedIn URLs as a single CSV cell,
// ";"-separated.
func (c Company) FoundersJoined() string {
	return strings.Join(c.FounderLinkedIn, ";")
}

// ProfileDetails is the result of extracting a single company profile page.
type ProfileDetails struct {
	Website  string
	LinkedIn string
	Founders []string
}

// RenderResult is a snapshot of a fully rendered page.
type RenderResult struct {
	// HTML is the raw page HTML after dynamic content has settled.
	HTML string

	// Title is the document title.
	Title string

	// FinalURL is the URL after any redirects; falls back to the
	// requested URL when it cannot be read.
	FinalURL string
}
