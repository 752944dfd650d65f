// ABOUTME: Charm KV backend for the home document with automatic SSH key auth
// ABOUTME: Stores the whole document under one key and syncs to the cloud after writes

package statestore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"

	"github.com/harper/binary-home/internal/models"
)

// stateKey is the single KV key holding the serialized home document
const stateKey = "home:state"

// CharmConfig holds charm backend configuration
type CharmConfig struct {
	Host     string
	DBName   string
	AutoSync bool
}

// DefaultCharmConfig returns default configuration for the charm backend
func DefaultCharmConfig() *CharmConfig {
	host := os.Getenv("CHARM_HOST")
	if host == "" {
		host = "charm.2389.dev"
	}
	return &CharmConfig{
		Host:     host,
		DBName:   "binary-home",
		AutoSync: true,
	}
}

// CharmStore keeps the home document in charm KV, synced across devices
type CharmStore struct {
	kv     *kv.KV
	config *CharmConfig
	mu     sync.Mutex
}

// NewCharmStore opens the charm KV database for the home document
func NewCharmStore(cfg *CharmConfig) (*CharmStore, error) {
	// kv reads CHARM_HOST from the environment before opening
	os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	s := &CharmStore{
		kv:     db,
		config: cfg,
	}

	// Pull remote data on startup
	if cfg.AutoSync {
		_ = db.Sync()
	}

	return s, nil
}

// Load reads the document from KV, returning defaults when no key exists yet
func (s *CharmStore) Load() (*models.HomeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get([]byte(stateKey))
	if err != nil || len(data) == 0 {
		return models.DefaultHomeState(), nil
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

// Save writes the document and syncs to the cloud when enabled
func (s *CharmStore) Save(state *models.HomeState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(state)
	if err != nil {
		return &models.StoreError{Op: "encode state", Err: err}
	}
	if err := s.kv.Set([]byte(stateKey), data); err != nil {
		return &models.StoreError{Op: "save state", Err: err}
	}
	if s.config.AutoSync {
		_ = s.kv.Sync()
	}
	return nil
}

// Sync manually triggers a sync with the cloud
func (s *CharmStore) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Sync()
}

// ID returns the charm user ID
func (s *CharmStore) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// Close closes the KV database
func (s *CharmStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv != nil {
		err := s.kv.Close()
		s.kv = nil
		return err
	}
	return nil
}
