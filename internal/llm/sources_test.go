package llm

import (
	"strings"
	"testing"

	"github.com/ovoitenko/pagelens/internal/model"
)

func TestBuildSourcesRequest_Envelope(t *testing.T) {
	longText := strings.Repeat("x", 5000)
	cfg := model.APIConfig{Model: "test-model"}

	req := BuildSourcesRequest("Title", longText, "https://example.com", cfg)

	if req.Temperature != 0.7 {
		t.Errorf("Expected temperature 0.7, got %v", req.Temperature)
	}
	if req.MaxTokens != 3000 {
		t.Errorf("Expected max tokens 3000, got %d", req.MaxTokens)
	}

	// Only the first 2000 characters of the text are sent.
	prompt := req.Messages[1].Content
	if strings.Contains(prompt, strings.Repeat("x", 2001)) {
		t.Error("Expected page text to be truncated to 2000 characters")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 2000)) {
		t.Error("Expected the first 2000 characters of page text in the prompt")
	}
}

func TestBuildSummaryRequest_Envelope(t *testing.T) {
	cfg := model.APIConfig{Model: "test-model"}

	req := BuildSummaryRequest("Title", strings.Repeat("y", 6000), "https://example.com", cfg)

	if req.Temperature != 0.5 {
		t.Errorf("Expected temperature 0.5, got %v", req.Temperature)
	}
	if req.MaxTokens != 1500 {
		t.Errorf("Expected max tokens 1500, got %d", req.MaxTokens)
	}
	if strings.Contains(req.Messages[1].Content, strings.Repeat("y", 4001)) {
		t.Error("Expected page text to be truncated to 4000 characters")
	}
}

func TestParseSources_URLNormalization(t *testing.T) {
	raw := `{
  "sources": [
    {"title": "Kept", "url": "https://x.com", "description": "d", "relevance": 90, "publisher": "p"},
    {"title": "Bare phrase", "url": "site:example", "description": "d", "relevance": 80, "publisher": "p"},
    {"title": "No URL At All", "url": "", "description": "d", "relevance": 70, "publisher": "p"}
  ],
  "query": "example query",
  "totalFound": 3
}`

	resp, err := ParseSources(raw)
	if err != nil {
		t.Fatalf("ParseSources failed: %v", err)
	}
	if len(resp.Sources) != 3 {
		t.Fatalf("Expected 3 sources, got %d", len(resp.Sources))
	}

	if resp.Sources[0].URL != "https://x.com" {
		t.Errorf("Expected http URL left unchanged, got %s", resp.Sources[0].URL)
	}

	rewritten := resp.Sources[1].URL
	if !strings.HasPrefix(rewritten, searchURLPrefix) {
		t.Errorf("Expected search-engine prefix, got %s", rewritten)
	}
	if !strings.Contains(rewritten, "site%3Aexample") {
		t.Errorf("Expected percent-encoded original value, got %s", rewritten)
	}

	fromTitle := resp.Sources[2].URL
	if !strings.HasPrefix(fromTitle, searchURLPrefix) {
		t.Errorf("Expected search-engine prefix for empty URL, got %s", fromTitle)
	}
	if !strings.Contains(fromTitle, "No+URL+At+All") {
		t.Errorf("Expected title-derived query, got %s", fromTitle)
	}
}
