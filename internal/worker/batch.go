package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ovoitenko/pagelens/internal/model"
)

// Checker fact-checks a single URL. Implemented by the pipeline;
// defined here so the batch processor can be tested with fakes.
type Checker interface {
	FactCheckURL(ctx context.Context, url string) (*model.FactCheckReport, error)
}

// BatchResult is the outcome of checking one URL.
type BatchResult struct {
	URL    string
	Report *model.FactCheckReport
	Err    error
}

// BatchProcessor fact-checks a list of URLs with bounded concurrency.
type BatchProcessor struct {
	checker Checker
	workers int
}

// NewBatchProcessor creates a batch processor running at most workers
// checks at a time.
func NewBatchProcessor(checker Checker, workers int) *BatchProcessor {
	if workers <= 0 {
		workers = 1
	}
	return &BatchProcessor{checker: checker, workers: workers}
}

// Process fact-checks all URLs concurrently and returns one result per
// URL, in input order. Individual failures do not stop the batch.
func (b *BatchProcessor) Process(ctx context.Context, urls []string) []BatchResult {
	results := make([]BatchResult, len(urls))
	sem := make(chan struct{}, b.workers)
	var wg sync.WaitGroup

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, pageURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = BatchResult{URL: pageURL, Err: ctx.Err()}
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			report, err := b.checker.FactCheckURL(ctx, pageURL)
			results[idx] = BatchResult{URL: pageURL, Report: report, Err: err}
		}(i, u)
	}

	wg.Wait()
	return results
}

// ProcessFile reads URLs from a file (one per line, # comments and
// duplicates skipped) and processes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]BatchResult, error) {
	urls, err := ReadURLsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.Process(ctx, urls), nil
}

// ReadURLsFromFile reads URLs from a file, one per line.
func ReadURLsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
