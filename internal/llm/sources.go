package llm

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ovoitenko/pagelens/internal/model"
)

const sourcesSystemMessage = "You are a professional research assistant. " +
	"Always respond with valid JSON only, no additional text. " +
	"Provide realistic and credible sources."

const (
	sourcesTemperature = 0.7
	sourcesMaxTokens   = 3000

	// sourcesTextLimit caps the page text included in the prompt.
	sourcesTextLimit = 2000
)

// searchURLPrefix is where bare search phrases get rewritten to, so
// every returned source carries a dereferenceable link.
const searchURLPrefix = "https://www.google.com/search?q="

// BuildSourcesRequest builds the prompt and request envelope for
// finding sources similar to a page. Only the first 2000 characters of
// the page text are sent.
func BuildSourcesRequest(title, text, pageURL string, cfg model.APIConfig) openai.ChatCompletionRequest {
	preview := text
	if len(preview) > sourcesTextLimit {
		preview = preview[:sourcesTextLimit]
	}

	prompt := fmt.Sprintf(`You are a research assistant. Analyze the following webpage content and find similar articles/sources that discuss the same or related topics.

Webpage Title: %q
Webpage URL: %s
Content Preview: %s

Based on this content, provide a list of 10-15 similar sources/articles that cover the same or related information. For each source, provide:
1. Title of the article/source
2. URL (if you know it, otherwise provide a search query)
3. Brief description of how it relates
4. Publisher/source name
5. Relevance score (0-100)

Respond in JSON format:
{
  "sources": [
    {
      "title": "Article Title",
      "url": "https://example.com/article",
      "description": "Brief description of how this relates",
      "relevance": 85,
      "publisher": "Publisher Name"
    }
  ],
  "query": "main search query for this topic",
  "totalFound": 15
}

If you don't know exact URLs, provide search queries or well-known publication URLs that would likely have similar content.`, title, pageURL, preview)

	return openai.ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sourcesSystemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: sourcesTemperature,
		MaxTokens:   sourcesMaxTokens,
	}
}

// ParseSources parses and validates a raw similar-sources reply, then
// normalizes source URLs so each one is dereferenceable.
func ParseSources(raw string) (*model.SourceSearchResponse, error) {
	var resp model.SourceSearchResponse
	if err := decodeResponse(raw, &resp); err != nil {
		return nil, err
	}
	normalizeSourceURLs(resp.Sources)
	return &resp, nil
}

// normalizeSourceURLs rewrites any source URL that lacks an http(s)
// scheme into a search-engine query URL built from the original value,
// or from the title when the model supplied no URL at all.
func normalizeSourceURLs(sources []model.SimilarSource) {
	for i := range sources {
		s := &sources[i]
		if strings.HasPrefix(s.URL, "http") {
			continue
		}
		query := s.URL
		if query == "" {
			query = s.Title
		}
		s.URL = searchURLPrefix + url.QueryEscape(query)
	}
}
