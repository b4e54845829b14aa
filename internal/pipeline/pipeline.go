package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ovoitenko/pagelens/internal/cache"
	"github.com/ovoitenko/pagelens/internal/extract"
	"github.com/ovoitenko/pagelens/internal/keystore"
	"github.com/ovoitenko/pagelens/internal/llm"
	"github.com/ovoitenko/pagelens/internal/model"
	"github.com/ovoitenko/pagelens/internal/snapshot"
	"github.com/ovoitenko/pagelens/internal/worker"
)

// Pipeline orchestrates the scan and analysis flows: snapshot, claim
// extraction, chat-completion request, response validation. Each
// user-triggered action runs independently; a failure in one never
// affects another.
type Pipeline struct {
	producer *snapshot.Producer
	resolver *keystore.Resolver
	cfg      *model.Config
}

// NewPipeline creates a pipeline with the given configuration and
// credential resolver.
func NewPipeline(cfg *model.Config, resolver *keystore.Resolver) *Pipeline {
	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	limiter := worker.NewLimiter(cfg.Batch.RequestsPerSecond, cfg.Batch.Burst)

	return &Pipeline{
		producer: snapshot.NewProducer(cfg.HTTP, cfg.Cache, store, limiter),
		resolver: resolver,
		cfg:      cfg,
	}
}

// Snapshot captures the page at url.
func (p *Pipeline) Snapshot(ctx context.Context, url string) (*model.PageSnapshot, error) {
	snap, err := p.producer.Snapshot(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return snap, nil
}

// FactCheck extracts claims from the snapshot and asks the model for
// verdicts. Zero extracted claims is a distinct failure, not a retry
// signal.
func (p *Pipeline) FactCheck(ctx context.Context, snap *model.PageSnapshot) (*model.FactCheckReport, error) {
	client, err := p.client()
	if err != nil {
		return nil, err
	}

	claims := extract.ExtractClaims(snap.Text.AllText, p.cfg.FactCheck.MaxClaims)
	if len(claims) == 0 {
		return nil, model.ErrNoClaims
	}

	req := llm.BuildFactCheckRequest(claims, snap.Title, p.cfg.API)
	raw, err := client.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fact-check: %w", err)
	}

	resp, err := llm.ParseFactCheck(raw)
	if err != nil {
		return nil, fmt.Errorf("fact-check: %w", err)
	}

	return &model.FactCheckReport{
		SourceURL:       snap.URL,
		Title:           snap.Title,
		CheckedAt:       time.Now().UTC(),
		SubmittedClaims: claims,
		Result:          *resp,
	}, nil
}

// FactCheckURL snapshots a page and fact-checks it in one step. Used by
// the batch processor.
func (p *Pipeline) FactCheckURL(ctx context.Context, url string) (*model.FactCheckReport, error) {
	snap, err := p.Snapshot(ctx, url)
	if err != nil {
		return nil, err
	}
	return p.FactCheck(ctx, snap)
}

// Summarize asks the model for a structured summary of the snapshot.
func (p *Pipeline) Summarize(ctx context.Context, snap *model.PageSnapshot) (*model.SummaryResponse, error) {
	client, err := p.client()
	if err != nil {
		return nil, err
	}

	req := llm.BuildSummaryRequest(snap.Title, snap.Text.AllText, snap.URL, p.cfg.API)
	raw, err := client.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	resp, err := llm.ParseSummary(raw)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	return resp, nil
}

// FindSources asks the model for similar sources covering the same
// topic as the snapshot.
func (p *Pipeline) FindSources(ctx context.Context, snap *model.PageSnapshot) (*model.SourceSearchResponse, error) {
	client, err := p.client()
	if err != nil {
		return nil, err
	}

	req := llm.BuildSourcesRequest(snap.Title, snap.Text.AllText, snap.URL, p.cfg.API)
	raw, err := client.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("find sources: %w", err)
	}

	resp, err := llm.ParseSources(raw)
	if err != nil {
		return nil, fmt.Errorf("find sources: %w", err)
	}
	return resp, nil
}

// client builds a transport client with the resolved credential.
func (p *Pipeline) client() (*llm.Client, error) {
	key := p.resolver.Resolve()
	if key == "" {
		return nil, model.ErrNotConfigured
	}
	return llm.NewClient(p.cfg.API, key), nil
}
