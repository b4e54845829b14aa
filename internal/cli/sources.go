package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ovoitenko/pagelens/internal/pipeline"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources <url>",
	Short: "Find sources similar to a webpage",
	Long: `Sources captures a page and asks the model for 10-15 similar articles
covering the same or related topics, each with a title, link, relevance
score and publisher. Sources the model names only by search phrase are
rewritten into search-engine links.

Example:
  pagelens sources https://example.com/article`,
	Args: cobra.ExactArgs(1),
	RunE: runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)

	sourcesCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	sourcesCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")
	sourcesCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
}

func runSources(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("find sources failed: %w", err)
	}

	resp, err := p.FindSources(ctx, snap)
	if err != nil {
		return fmt.Errorf("find sources failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(resp, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}
	renderer.PrintSources(resp)

	return nil
}
