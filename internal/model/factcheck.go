package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Verdict is the categorical truth assessment for a single claim.
type Verdict string

const (
	VerdictTrue       Verdict = "true"
	VerdictFalse      Verdict = "false"
	VerdictMisleading Verdict = "misleading"
	VerdictUnverified Verdict = "unverified"
)

// OverallVerdict is the aggregate assessment for a whole fact-check run.
type OverallVerdict string

const (
	OverallMostlyTrue  OverallVerdict = "mostly_true"
	OverallMostlyFalse OverallVerdict = "mostly_false"
	OverallMixed       OverallVerdict = "mixed"
	OverallUnverified  OverallVerdict = "unverified"
)

// FactCheckResult is the model's assessment of one claim. Constructed
// only by the response parser and immutable afterwards.
type FactCheckResult struct {
	Claim       string   `json:"claim"`
	Verdict     Verdict  `json:"verdict"`
	Confidence  int      `json:"confidence"`
	Explanation string   `json:"explanation"`
	Sources     []string `json:"sources"`
	Reasoning   string   `json:"reasoning"`
}

// Validate checks the result against the fact-check schema.
func (r FactCheckResult) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Claim, validation.Required),
		validation.Field(&r.Verdict, validation.Required, validation.In(
			VerdictTrue, VerdictFalse, VerdictMisleading, VerdictUnverified)),
		validation.Field(&r.Confidence, validation.Min(0), validation.Max(100)),
		validation.Field(&r.Explanation, validation.Required),
	)
}

// FactCheckResponse is the structured reply to a fact-check request.
// The claims list is best-effort: its length is expected to match the
// number of submitted claims but is not enforced by validation.
type FactCheckResponse struct {
	Claims         []FactCheckResult `json:"claims"`
	OverallVerdict OverallVerdict    `json:"overallVerdict"`
	Summary        string            `json:"summary"`
}

// Validate checks the response against the fact-check schema.
func (r FactCheckResponse) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Claims, validation.Required),
		validation.Field(&r.OverallVerdict, validation.Required, validation.In(
			OverallMostlyTrue, OverallMostlyFalse, OverallMixed, OverallUnverified)),
	)
}

// FactCheckReport bundles a fact-check response with the page context
// it was produced from, for rendering and persistence.
type FactCheckReport struct {
	SourceURL string    `json:"source_url"`
	Title     string    `json:"title"`
	CheckedAt time.Time `json:"checked_at"`

	// SubmittedClaims are the claims sent to the model, in prompt order.
	SubmittedClaims []string `json:"submitted_claims"`

	Result FactCheckResponse `json:"result"`
}
