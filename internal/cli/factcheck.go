package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ovoitenko/pagelens/internal/model"
	"github.com/ovoitenko/pagelens/internal/pipeline"
)

var maxClaims int

// factcheckCmd represents the factcheck command
var factcheckCmd = &cobra.Command{
	Use:   "factcheck <url>",
	Short: "Extract claims from a webpage and fact-check them",
	Long: `Factcheck captures a page, extracts up to a configurable number of
candidate factual claims from its text, and asks the model for a
verdict, confidence, explanation and sources for each claim, plus an
overall verdict for the page.

Example:
  pagelens factcheck https://example.com/article
  pagelens factcheck https://example.com/article --max-claims 3 --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runFactCheck,
}

func init() {
	rootCmd.AddCommand(factcheckCmd)

	factcheckCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	factcheckCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	factcheckCmd.Flags().IntVar(&maxClaims, "max-claims", 0, "max claims to check (default from config)")
	factcheckCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")
	factcheckCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
}

func runFactCheck(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := loadConfig()
	if noCache {
		cfg.Cache.Enabled = false
	}
	if maxClaims > 0 {
		cfg.FactCheck.MaxClaims = maxClaims
	}

	resolver := newResolver(cfg)
	if !resolver.IsConfigured() {
		return errNotConfiguredHint()
	}

	p := pipeline.NewPipeline(cfg, resolver)

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Fetching page...\n")
	}

	report, err := p.FactCheckURL(ctx, url)
	if errors.Is(err, model.ErrNoClaims) {
		return fmt.Errorf("no verifiable claims found on this page")
	}
	if err != nil {
		return fmt.Errorf("fact-check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Checked %d claims\n", len(report.SubmittedClaims))
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}
	if outMD != "" {
		if err := renderer.RenderFactCheckMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}
	renderer.PrintFactCheckSummary(report)

	return nil
}

// errNotConfiguredHint steers the user to credential setup.
func errNotConfiguredHint() error {
	return fmt.Errorf("%w\nSet one with:\n  pagelens key set <api-key>\nor:\n  export PAGELENS_API_KEY=<api-key>", model.ErrNotConfigured)
}
