package llm

import (
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/ovoitenko/pagelens/internal/model"
)

const summarySystemMessage = "You are a professional news summarization assistant. " +
	"Always respond with valid JSON only, no additional text."

const (
	summaryTemperature = 0.5
	summaryMaxTokens   = 1500

	// summaryTextLimit caps the page text included in the prompt.
	summaryTextLimit = 4000
)

// BuildSummaryRequest builds the prompt and request envelope for
// summarizing a page. Only the first 4000 characters of the page text
// are sent.
func BuildSummaryRequest(title, text, pageURL string, cfg model.APIConfig) openai.ChatCompletionRequest {
	preview := text
	if len(preview) > summaryTextLimit {
		preview = preview[:summaryTextLimit]
	}

	prompt := fmt.Sprintf(`You are a news summarization assistant. Analyze the following webpage content and provide a comprehensive summary.

Webpage Title: %q
Webpage URL: %s
Content: %s

Please provide:
1. A concise summary (2-3 paragraphs) of the main content
2. 5-7 key points or important facts
3. The category/topic (e.g., "Technology", "Politics", "Sports", "Entertainment", etc.)
4. Overall sentiment (positive, negative, or neutral)
5. Estimated word count of the original content

Respond in JSON format:
{
  "summary": "A comprehensive 2-3 paragraph summary of the content...",
  "keyPoints": [
    "Key point 1",
    "Key point 2",
    "Key point 3"
  ],
  "category": "Technology",
  "sentiment": "neutral",
  "wordCount": 1500
}`, title, pageURL, preview)

	return openai.ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	}
}

// ParseSummary parses and validates a raw summarization reply.
func ParseSummary(raw string) (*model.SummaryResponse, error) {
	var resp model.SummaryResponse
	if err := decodeResponse(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
