package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndPrefixed(t *testing.T) {
	k1 := Key("https://example.com/a")
	k2 := Key("https://example.com/a")
	k3 := Key("https://example.com/b")

	if k1 != k2 {
		t.Error("Expected identical URLs to produce identical keys")
	}
	if k1 == k3 {
		t.Error("Expected distinct URLs to produce distinct keys")
	}
	if !strings.HasPrefix(k1, "pagelens:v1:") {
		t.Errorf("Expected versioned key prefix, got %s", k1)
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Errorf("Expected hit with value v, got %q found=%v", val, found)
	}

	_ = c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_RoundTripAndExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Errorf("Expected hit with value v, got %q found=%v", val, found)
	}

	// An already-expired entry reads as a miss and is removed.
	if err := c.Set("expired", []byte("old"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get("expired"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Drop the memory layer; the disk layer should still serve the value.
	_ = c.memory.Clear()
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Fatalf("Expected disk hit, got %q found=%v", val, found)
	}

	// The hit should now be promoted back into memory.
	if _, found := c.memory.Get("k"); !found {
		t.Error("Expected disk hit promoted to memory")
	}
}
