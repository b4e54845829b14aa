package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_PerDomainIsolation(t *testing.T) {
	l := NewLimiter(1, 1)

	// Exhaust the burst for one domain; another domain is unaffected.
	if !l.Allow("https://a.example/page") {
		t.Fatal("Expected first request to a.example to be allowed")
	}
	if l.Allow("https://a.example/other") {
		t.Error("Expected second immediate request to a.example to be limited")
	}
	if !l.Allow("https://b.example/page") {
		t.Error("Expected request to b.example to be allowed")
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	if !l.Allow("https://slow.example/") {
		t.Fatal("Expected burst request to be allowed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "https://slow.example/"); err == nil {
		t.Error("Expected Wait to fail when the context expires first")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if l.Allow("://not a url") {
		t.Error("Expected invalid URL to be denied")
	}
}
