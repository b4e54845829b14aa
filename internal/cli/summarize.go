package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ovoitenko/pagelens/internal/pipeline"
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize <url>",
	Short: "Generate a structured summary of a webpage",
	Long: `Summarize captures a page and asks the model for a concise summary,
key points, category, sentiment, and an estimated word count.

Example:
  pagelens summarize https://example.com/article
  pagelens summarize https://example.com/article --json summary.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	summarizeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")
	summarizeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := loadConfig()
	if noCache {
		cfg.Cache.Enabled = false
	}

	resolver := newResolver(cfg)
	if !resolver.IsConfigured() {
		return errNotConfiguredHint()
	}

	p := pipeline.NewPipeline(cfg, resolver)

	snap, err := p.Snapshot(ctx, url)
	if err != nil {
		return fmt.Errorf("summarize failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Captured %d words of text\n", snap.Text.WordCount)
	}

	resp, err := p.Summarize(ctx, snap)
	if err != nil {
		return fmt.Errorf("summarize failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(resp, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}
	renderer.PrintSummary(resp)

	return nil
}
