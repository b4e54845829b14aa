package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ovoitenko/pagelens/internal/model"
)

// fakeChecker records concurrency and fails for designated URLs.
type fakeChecker struct {
	failFor map[string]bool
	active  int32
	peak    int32
}

func (f *fakeChecker) FactCheckURL(ctx context.Context, url string) (*model.FactCheckReport, error) {
	n := atomic.AddInt32(&f.active, 1)
	defer atomic.AddInt32(&f.active, -1)
	for {
		p := atomic.LoadInt32(&f.peak)
		if n <= p || atomic.CompareAndSwapInt32(&f.peak, p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	if f.failFor[url] {
		return nil, errors.New("check failed")
	}
	return &model.FactCheckReport{SourceURL: url}, nil
}

func TestBatchProcessor_ResultsInInputOrder(t *testing.T) {
	urls := []string{
		"https://a.example/1",
		"https://b.example/2",
		"https://c.example/3",
	}
	checker := &fakeChecker{failFor: map[string]bool{"https://b.example/2": true}}

	results := NewBatchProcessor(checker, 2).Process(context.Background(), urls)

	if len(results) != len(urls) {
		t.Fatalf("Expected %d results, got %d", len(urls), len(results))
	}
	for i, r := range results {
		if r.URL != urls[i] {
			t.Errorf("Result %d out of order: %s", i, r.URL)
		}
	}
	if results[1].Err == nil {
		t.Error("Expected failure for second URL")
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Error("Expected other URLs to succeed despite one failure")
	}
}

func TestBatchProcessor_BoundedConcurrency(t *testing.T) {
	urls := make([]string, 12)
	for i := range urls {
		urls[i] = "https://example.com/" + string(rune('a'+i))
	}
	checker := &fakeChecker{}

	NewBatchProcessor(checker, 3).Process(context.Background(), urls)

	if peak := atomic.LoadInt32(&checker.peak); peak > 3 {
		t.Errorf("Expected at most 3 concurrent checks, observed %d", peak)
	}
}

func TestReadURLsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# comment line
https://example.com/a

https://example.com/b
https://example.com/a
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	urls, err := ReadURLsFromFile(path)
	if err != nil {
		t.Fatalf("ReadURLsFromFile failed: %v", err)
	}

	want := []string{"https://example.com/a", "https://example.com/b"}
	if len(urls) != len(want) {
		t.Fatalf("Expected %d URLs, got %d: %v", len(want), len(urls), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("URL %d: expected %s, got %s", i, want[i], urls[i])
		}
	}
}
