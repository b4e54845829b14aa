package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ovoitenko/pagelens/internal/pipeline"
)

var (
	outJSON string
	outMD   string
	timeout time.Duration
	noCache bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Capture a snapshot of a webpage",
	Long: `Scan fetches a webpage and captures it as a fixed-shape snapshot:
visible text with length and word counts, images and links (capped),
meta tags, and structural element counts.

Example:
  pagelens scan https://example.com/article
  pagelens scan https://example.com/article --json snapshot.json`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	scanCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
}

func runScan(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := loadConfig()
	if noCache {
		cfg.Cache.Enabled = false
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", url)
	}

	p := pipeline.NewPipeline(cfg, newResolver(cfg))

	snap, err := p.Snapshot(ctx, url)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(snap, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	renderer.PrintSnapshotSummary(snap)

	return nil
}
