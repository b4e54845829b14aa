package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Sentiment is the model's overall tone assessment of a page.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// SummaryResponse is the structured reply to a summarization request.
type SummaryResponse struct {
	Summary   string    `json:"summary"`
	KeyPoints []string  `json:"keyPoints"`
	Category  string    `json:"category"`
	Sentiment Sentiment `json:"sentiment"`
	WordCount int       `json:"wordCount"`
}

// Validate checks the response against the summary schema.
func (r SummaryResponse) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Summary, validation.Required),
		validation.Field(&r.KeyPoints, validation.Required),
		validation.Field(&r.Sentiment, validation.Required, validation.In(
			SentimentPositive, SentimentNegative, SentimentNeutral)),
		validation.Field(&r.WordCount, validation.Min(0)),
	)
}
