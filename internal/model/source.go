package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SimilarSource is one related article suggested by the model. After
// normalization its URL always carries a URI scheme: a bare search
// phrase supplied by the model is rewritten into a search-engine URL.
type SimilarSource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Relevance   int    `json:"relevance"`
	Publisher   string `json:"publisher"`
}

// Validate checks the source against the similar-sources schema.
func (s SimilarSource) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required),
		validation.Field(&s.Relevance, validation.Min(0), validation.Max(100)),
	)
}

// SourceSearchResponse is the structured reply to a similar-sources request.
type SourceSearchResponse struct {
	Sources    []SimilarSource `json:"sources"`
	Query      string          `json:"query"`
	TotalFound int             `json:"totalFound"`
}

// Validate checks the response against the similar-sources schema.
func (r SourceSearchResponse) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Sources, validation.Required),
	)
}
