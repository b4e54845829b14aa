package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ovoitenko/pagelens/internal/model"
)

// Renderer writes analysis results to files and the terminal.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes any result as indented JSON.
func (r *Renderer) RenderJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderFactCheckMarkdown writes a fact-check report as Markdown.
func (r *Renderer) RenderFactCheckMarkdown(report *model.FactCheckReport, path string) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Fact Check: %s\n\n", report.Title)
	fmt.Fprintf(&sb, "- **Source:** %s\n", report.SourceURL)
	fmt.Fprintf(&sb, "- **Checked:** %s\n", report.CheckedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&sb, "- **Overall verdict:** %s\n\n", report.Result.OverallVerdict)

	if report.Result.Summary != "" {
		fmt.Fprintf(&sb, "%s\n\n", report.Result.Summary)
	}

	for i, claim := range report.Result.Claims {
		fmt.Fprintf(&sb, "## Claim %d\n\n", i+1)
		fmt.Fprintf(&sb, "> %s\n\n", claim.Claim)
		fmt.Fprintf(&sb, "- **Verdict:** %s (%d%% confidence)\n", claim.Verdict, claim.Confidence)
		fmt.Fprintf(&sb, "- **Explanation:** %s\n", claim.Explanation)
		if len(claim.Sources) > 0 {
			fmt.Fprintf(&sb, "- **Sources:**\n")
			for _, src := range claim.Sources {
				fmt.Fprintf(&sb, "  - %s\n", src)
			}
		}
		if claim.Reasoning != "" {
			fmt.Fprintf(&sb, "\n%s\n", claim.Reasoning)
		}
		fmt.Fprintf(&sb, "\n")
	}

	if r.includeFooter {
		fmt.Fprintf(&sb, "---\n*Generated by pagelens*\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// PrintFactCheckSummary prints a short fact-check digest to stdout.
func (r *Renderer) PrintFactCheckSummary(report *model.FactCheckReport) {
	fmt.Printf("\n%s\n", report.Title)
	fmt.Printf("Overall verdict: %s\n\n", report.Result.OverallVerdict)
	for _, claim := range report.Result.Claims {
		fmt.Printf("  [%s %d%%] %s\n", claim.Verdict, claim.Confidence, truncate(claim.Claim, 80))
	}
	if report.Result.Summary != "" {
		fmt.Printf("\n%s\n", report.Result.Summary)
	}
}

// PrintSnapshotSummary prints a short page-scan digest to stdout.
func (r *Renderer) PrintSnapshotSummary(snap *model.PageSnapshot) {
	fmt.Printf("\n%s\n", snap.Title)
	fmt.Printf("URL:        %s\n", snap.URL)
	fmt.Printf("Text:       %d chars, %d words\n", snap.Text.TextLength, snap.Text.WordCount)
	fmt.Printf("Images:     %d\n", len(snap.Images))
	fmt.Printf("Links:      %d\n", len(snap.Links))
	if snap.Metadata.Description != "" {
		fmt.Printf("Meta:       %s\n", truncate(snap.Metadata.Description, 100))
	}
}

// PrintSummary prints a structured summary to stdout.
func (r *Renderer) PrintSummary(resp *model.SummaryResponse) {
	fmt.Printf("\nCategory: %s   Sentiment: %s   ~%d words\n\n", resp.Category, resp.Sentiment, resp.WordCount)
	fmt.Printf("%s\n\n", resp.Summary)
	for _, point := range resp.KeyPoints {
		fmt.Printf("  • %s\n", point)
	}
}

// PrintSources prints a similar-sources list to stdout.
func (r *Renderer) PrintSources(resp *model.SourceSearchResponse) {
	fmt.Printf("\nQuery: %s (%d found)\n\n", resp.Query, resp.TotalFound)
	for _, src := range resp.Sources {
		fmt.Printf("  [%3d] %s (%s)\n        %s\n", src.Relevance, src.Title, src.Publisher, src.URL)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
