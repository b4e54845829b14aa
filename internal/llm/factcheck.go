package llm

import (
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ovoitenko/pagelens/internal/model"
)

const factCheckSystemMessage = "You are a professional fact-checker. " +
	"Always respond with valid JSON only, no additional text."

const factCheckTemperature = 0.6

const defaultFactCheckMaxTokens = 5000

// BuildFactCheckRequest builds the prompt and request envelope for
// fact-checking an ordered list of claims from a page with the given
// title. Pure: the same inputs always yield the same request.
func BuildFactCheckRequest(claims []string, title string, cfg model.APIConfig) openai.ChatCompletionRequest {
	var sb strings.Builder
	for i, claim := range claims {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, claim)
	}

	prompt := fmt.Sprintf(`You are a fact-checking assistant. Analyze the following claims from a webpage titled %q.

For each claim, provide:
1. Verdict: "true", "false", "misleading", or "unverified"
2. Confidence: A number from 0-100
3. Explanation: A brief explanation of your verdict
4. Sources: List 2-3 credible sources that support or refute the claim (URLs or publication names)
5. Reasoning: Detailed reasoning for your verdict

Claims to fact-check:
%s
Respond in JSON format:
{
  "claims": [
    {
      "claim": "the claim text",
      "verdict": "true|false|misleading|unverified",
      "confidence": 85,
      "explanation": "brief explanation",
      "sources": ["source1", "source2"],
      "reasoning": "detailed reasoning"
    }
  ],
  "overallVerdict": "mostly_true|mostly_false|mixed|unverified",
  "summary": "overall summary of fact-checking results"
}`, title, sb.String())

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultFactCheckMaxTokens
	}

	return openai.ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: factCheckSystemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: factCheckTemperature,
		MaxTokens:   maxTokens,
	}
}

// ParseFactCheck parses and validates a raw fact-check reply. The
// number of returned verdicts is best-effort and not checked against
// the number of submitted claims.
func ParseFactCheck(raw string) (*model.FactCheckResponse, error) {
	var resp model.FactCheckResponse
	if err := decodeResponse(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
