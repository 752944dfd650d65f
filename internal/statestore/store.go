// ABOUTME: Persistence for the shared home document (love meter, partner state, notes)
// ABOUTME: Backends implement Store; the file backend writes JSON under the XDG data dir

package statestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"

	"github.com/harper/binary-home/internal/models"
)

// Store persists the whole home document as a single unit.
type Store interface {
	Load() (*models.HomeState, error)
	Save(state *models.HomeState) error
	Close() error
}

// DefaultStatePath returns the state file location under the XDG data directory
func DefaultStatePath() (string, error) {
	dataDir := filepath.Join(xdg.DataHome, "binary-home")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return filepath.Join(dataDir, "state.json"), nil
}

// FileStore keeps the home document in a single JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store at the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the document, returning defaults when no file exists yet
func (s *FileStore) Load() (*models.HomeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return models.DefaultHomeState(), nil
	}
	if err != nil {
		return nil, &models.StoreError{Op: "load state", Err: err}
	}

	var state models.HomeState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, &models.StoreError{Op: "decode state", Err: err}
	}
	if state.Notes == nil {
		state.Notes = []models.Note{}
	}
	return &state, nil
}

// Save writes the document atomically via a temp file rename
func (s *FileStore) Save(state *models.HomeState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return &models.StoreError{Op: "encode state", Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &models.StoreError{Op: "save state", Err: err}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &models.StoreError{Op: "save state", Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return &models.StoreError{Op: "save state", Err: err}
	}
	return nil
}

// Close is a no-op for the file backend
func (s *FileStore) Close() error {
	return nil
}
