package model

import "time"

// PageSnapshot is the fixed-shape capture of a webpage at scan time.
// The JSON field names form the wire contract between the snapshot
// producer and everything downstream, so they stay camelCase.
type PageSnapshot struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`

	Text     PageText     `json:"text"`
	Images   []PageImage  `json:"images"`
	Links    []PageLink   `json:"links"`
	Metadata PageMetadata `json:"metadata"`

	Structure PageStructure `json:"structure"`
	Language  string        `json:"language"`
}

// PageText holds the extracted visible text and its measurements.
// AllText is the sole input to claim extraction and summarization.
type PageText struct {
	AllText    string `json:"allText"`
	TextLength int    `json:"textLength"`
	WordCount  int    `json:"wordCount"`
}

// PageImage describes a single <img> element.
type PageImage struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PageLink describes a single anchor with a resolved href.
type PageLink struct {
	Href       string `json:"href"`
	Text       string `json:"text"`
	IsExternal bool   `json:"isExternal"`
}

// PageMetadata collects the standard meta tags plus Open Graph properties.
type PageMetadata struct {
	Description string            `json:"description"`
	Keywords    string            `json:"keywords"`
	Author      string            `json:"author"`
	OpenGraph   map[string]string `json:"openGraph,omitempty"`
}

// PageStructure counts structural elements on the page.
type PageStructure struct {
	Headings   map[string]int `json:"headings"`
	Paragraphs int            `json:"paragraphs"`
	Lists      int            `json:"lists"`
	Tables     int            `json:"tables"`
	Forms      int            `json:"forms"`
}
