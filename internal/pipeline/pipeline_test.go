package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/ovoitenko/pagelens/internal/keystore"
	"github.com/ovoitenko/pagelens/internal/model"
)

const testPage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Example News</title>
<meta name="description" content="A test article">
</head>
<body>
<p>Company X raised $50M in 2023.</p>
<p>The new law requires all vehicles to be electric by 2030.</p>
</body>
</html>`

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(testPage))
	}))
}

func newAPIServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testConfig(apiURL string) *model.Config {
	cfg := model.DefaultConfig()
	cfg.API.BaseURL = apiURL
	cfg.Cache.Enabled = false
	return cfg
}

func TestPipeline_FactCheckURL(t *testing.T) {
	page := newPageServer(t)
	defer page.Close()

	api := newAPIServer(t, `{
  "claims": [
    {"claim": "Company X raised $50M in 2023.", "verdict": "true", "confidence": 80, "explanation": "e", "sources": ["s"], "reasoning": "r"},
    {"claim": "The new law requires all vehicles to be electric by 2030.", "verdict": "unverified", "confidence": 40, "explanation": "e", "sources": [], "reasoning": "r"}
  ],
  "overallVerdict": "mixed",
  "summary": "s"
}`)
	defer api.Close()

	p := NewPipeline(testConfig(api.URL), keystore.NewResolver(nil, "test-key"))

	report, err := p.FactCheckURL(context.Background(), page.URL)
	if err != nil {
		t.Fatalf("FactCheckURL failed: %v", err)
	}

	if report.Title != "Example News" {
		t.Errorf("Expected page title in report, got %q", report.Title)
	}
	if len(report.SubmittedClaims) != 2 {
		t.Errorf("Expected 2 submitted claims, got %d", len(report.SubmittedClaims))
	}
	if report.Result.OverallVerdict != model.OverallMixed {
		t.Errorf("Expected mixed overall verdict, got %s", report.Result.OverallVerdict)
	}
}

func TestPipeline_FactCheck_NoCredential(t *testing.T) {
	p := NewPipeline(testConfig("http://unused.invalid"), keystore.NewResolver(nil, ""))

	snap := &model.PageSnapshot{Text: model.PageText{AllText: "Company X raised $50M in 2023."}}
	_, err := p.FactCheck(context.Background(), snap)
	if !errors.Is(err, model.ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestPipeline_FactCheck_NoClaims(t *testing.T) {
	p := NewPipeline(testConfig("http://unused.invalid"), keystore.NewResolver(nil, "test-key"))

	snap := &model.PageSnapshot{Text: model.PageText{AllText: "Nothing here. Short. Words."}}
	_, err := p.FactCheck(context.Background(), snap)
	if !errors.Is(err, model.ErrNoClaims) {
		t.Errorf("Expected ErrNoClaims, got %v", err)
	}
}

func TestPipeline_Summarize(t *testing.T) {
	page := newPageServer(t)
	defer page.Close()

	api := newAPIServer(t, `{"summary": "An article about a funding round.", "keyPoints": ["raised $50M"], "category": "Business", "sentiment": "neutral", "wordCount": 20}`)
	defer api.Close()

	p := NewPipeline(testConfig(api.URL), keystore.NewResolver(nil, "test-key"))

	snap, err := p.Snapshot(context.Background(), page.URL)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	resp, err := p.Summarize(context.Background(), snap)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if resp.Category != "Business" || resp.Sentiment != model.SentimentNeutral {
		t.Errorf("Unexpected summary response: %+v", resp)
	}
}

func TestPipeline_FindSources_Normalized(t *testing.T) {
	page := newPageServer(t)
	defer page.Close()

	api := newAPIServer(t, `{"sources": [{"title": "Related", "url": "electric vehicle mandate", "description": "d", "relevance": 75, "publisher": "p"}], "query": "q", "totalFound": 1}`)
	defer api.Close()

	p := NewPipeline(testConfig(api.URL), keystore.NewResolver(nil, "test-key"))

	snap, err := p.Snapshot(context.Background(), page.URL)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	resp, err := p.FindSources(context.Background(), snap)
	if err != nil {
		t.Fatalf("FindSources failed: %v", err)
	}
	if got := resp.Sources[0].URL; got[:8] != "https://" {
		t.Errorf("Expected normalized source URL, got %s", got)
	}
}

func TestPipeline_MalformedModelReply(t *testing.T) {
	page := newPageServer(t)
	defer page.Close()

	api := newAPIServer(t, "I could not produce JSON this time.")
	defer api.Close()

	p := NewPipeline(testConfig(api.URL), keystore.NewResolver(nil, "test-key"))

	_, err := p.FactCheckURL(context.Background(), page.URL)
	if !errors.Is(err, model.ErrMalformedResponse) {
		t.Errorf("Expected ErrMalformedResponse, got %v", err)
	}
}
