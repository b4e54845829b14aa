package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ovoitenko/pagelens/internal/model"
)

// extractJSONObject locates the candidate structured payload in a raw
// model reply: the span from the first '{' through the last '}'. This
// tolerates leading and trailing commentary the model may add despite
// being instructed to return JSON only.
func extractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("%w: no JSON object in reply", model.ErrMalformedResponse)
	}
	return raw[start : end+1], nil
}

// decodeResponse parses the brace span of a raw reply into target and
// checks it against the target schema. There is no partial-success
// mode: either the whole object decodes and validates, or the call
// fails with ErrMalformedResponse.
func decodeResponse(raw string, target interface{ Validate() error }) error {
	span, err := extractJSONObject(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(span), target); err != nil {
		return fmt.Errorf("%w: %v", model.ErrMalformedResponse, err)
	}
	if err := target.Validate(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrMalformedResponse, err)
	}
	return nil
}
