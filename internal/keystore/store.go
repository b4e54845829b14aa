package keystore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store holds the single user-saved API credential. Implementations are
// small on purpose: one opaque string, atomic get/set, no versioning.
type Store interface {
	// Get returns the stored credential, or "" when none is saved.
	Get() (string, error)

	// Set overwrites the stored credential. No format validation is
	// performed before saving.
	Set(key string) error

	// Delete removes the stored credential.
	Delete() error
}

// FileStore persists the credential as a single line in a 0600 file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the standard credential location under the user's
// home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".pagelens", "credentials"), nil
}

// Get returns the stored credential. A missing file means nothing is
// stored and is not an error.
func (s *FileStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set overwrites the stored credential.
func (s *FileStore) Set(key string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(key+"\n"), 0600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

// Delete removes the stored credential. Deleting a credential that was
// never saved is a no-op.
func (s *FileStore) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}
