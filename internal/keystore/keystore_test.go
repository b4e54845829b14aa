package keystore

import (
	"path/filepath"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	store := NewFileStore(path)

	// Nothing stored yet
	key, err := store.Get()
	if err != nil {
		t.Fatalf("Get on missing file failed: %v", err)
	}
	if key != "" {
		t.Errorf("Expected empty key, got %q", key)
	}

	if err := store.Set("sk-test-123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	key, err = store.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if key != "sk-test-123" {
		t.Errorf("Expected sk-test-123, got %q", key)
	}

	// Set is an overwrite
	if err := store.Set("sk-test-456"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	key, _ = store.Get()
	if key != "sk-test-456" {
		t.Errorf("Expected sk-test-456 after overwrite, got %q", key)
	}

	if err := store.Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	key, _ = store.Get()
	if key != "" {
		t.Errorf("Expected empty key after delete, got %q", key)
	}

	// Deleting again is a no-op
	if err := store.Delete(); err != nil {
		t.Errorf("Delete on missing file failed: %v", err)
	}
}

// fakeStore is an in-memory Store for resolver tests.
type fakeStore struct {
	key string
	err error
}

func (f *fakeStore) Get() (string, error) { return f.key, f.err }
func (f *fakeStore) Set(key string) error { f.key = key; return nil }
func (f *fakeStore) Delete() error        { f.key = ""; return nil }

func TestResolver_Priority(t *testing.T) {
	tests := []struct {
		name       string
		stored     string
		envDefault string
		want       string
	}{
		{"stored wins over env", "sk-stored", "sk-env", "sk-stored"},
		{"env when nothing stored", "", "sk-env", "sk-env"},
		{"stored only", "sk-stored", "", "sk-stored"},
		{"neither configured", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&fakeStore{key: tt.stored}, tt.envDefault)
			if got := r.Resolve(); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
			if got := r.IsConfigured(); got != (tt.want != "") {
				t.Errorf("IsConfigured() = %v, want %v", got, tt.want != "")
			}
		})
	}
}

func TestResolver_StoreErrorFallsThrough(t *testing.T) {
	r := NewResolver(&fakeStore{err: filepath.ErrBadPattern}, "sk-env")
	if got := r.Resolve(); got != "sk-env" {
		t.Errorf("Expected env default on store error, got %q", got)
	}
}
