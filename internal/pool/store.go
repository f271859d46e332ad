// Package pool provides the mutable name pool the draw reads from.
package pool

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/hammamikhairi/nebulapick/internal/domain"
	"github.com/hammamikhairi/nebulapick/internal/logger"
)

// Compile-time interface check.
var _ domain.PoolSource = (*Store)(nil)

// Store is an ordered list of unique display names. Safe for concurrent
// access. While a draw is running the store is frozen and all mutations
// are rejected, so the winner set can never diverge from the pool it
// was drawn from.
type Store struct {
	mu     sync.RWMutex
	names  []string
	index  map[string]bool
	frozen bool
	log    *logger.Logger
}

// NewStore creates an empty name pool.
func NewStore(log *logger.Logger) *Store {
	return &Store{
		index: make(map[string]bool),
		log:   log,
	}
}

// Snapshot returns a copy of the current name list.
func (s *Store) Snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of names in the pool.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// Freeze marks the pool read-only for the duration of a draw.
func (s *Store) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = true
}

// Thaw lifts the draw freeze.
func (s *Store) Thaw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = false
}

// Add appends a name. Rejects duplicates, empty names, and any mutation
// while a draw is running.
func (s *Store) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("pool: empty name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return domain.ErrDrawInProgress
	}
	if s.index[name] {
		return domain.ErrAlreadyExists
	}

	s.names = append(s.names, name)
	s.index[name] = true
	s.log.Debug("pool: added %q (size=%d)", name, len(s.names))
	return nil
}

// Remove deletes a name, preserving the order of the rest.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return domain.ErrDrawInProgress
	}
	if !s.index[name] {
		return domain.ErrNotFound
	}

	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	delete(s.index, name)
	s.log.Debug("pool: removed %q (size=%d)", name, len(s.names))
	return nil
}

// Replace swaps the whole pool for a new list, dropping duplicates and
// blank entries while keeping first-seen order.
func (s *Store) Replace(names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return domain.ErrDrawInProgress
	}

	s.names = s.names[:0]
	s.index = make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || s.index[n] {
			continue
		}
		s.names = append(s.names, n)
		s.index[n] = true
	}
	s.log.Debug("pool: replaced, size=%d", len(s.names))
	return nil
}

// LoadFile replaces the pool with the newline-delimited names in path.
// Lines starting with '#' are skipped.
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("pool: opening %s: %w", path, err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("pool: reading %s: %w", path, err)
	}

	if err := s.Replace(names); err != nil {
		return err
	}
	s.log.Info("pool: loaded %d names from %s", s.Len(), path)
	return nil
}

// SaveFile writes the pool to path, one name per line.
func (s *Store) SaveFile(path string) error {
	snapshot := s.Snapshot()
	data := strings.Join(snapshot, "\n")
	if len(snapshot) > 0 {
		data += "\n"
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("pool: writing %s: %w", path, err)
	}
	return nil
}
