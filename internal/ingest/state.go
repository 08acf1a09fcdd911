package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

// State remembers the content hash of every processed file, keyed
// "repo/relative-path", so unchanged files are skipped on later runs.
type State struct {
	path string

	mu      sync.Mutex
	entries map[string]string
}

// LoadState reads the state file at path. A missing file yields an empty
// state rather than an error; a corrupt one is an error so a run never
// silently reprocesses everything.
func LoadState(path string) (*State, error) {
	s := &State{path: path, entries: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if err := sonic.Unmarshal(raw, &s.entries); err != nil {
		return nil, fmt.Errorf("decode state file %s: %w", path, err)
	}
	return s, nil
}

func (s *State) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.entries[key]
	return hash, ok
}

func (s *State) Set(key, hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = hash
}

func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Save writes the state back to disk.
func (s *State) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	raw, err := sonic.ConfigStd.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
