package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync/atomic"
)

// Store is the single-writer owner of the active Snapshot.
//
// Readers call Current and get a complete snapshot; Reload parses the file
// again and swaps the pointer in one atomic store, so a reader in the middle
// of an operation sees either the old tables or the new ones, never a mix.
type Store struct {
	path string
	snap atomic.Pointer[Snapshot]
}

// Open creates a Store bound to the JSON document at path and loads it.
// A missing or malformed file is not fatal: the store starts with empty
// tables and the condition is logged to stderr.
func Open(path string) *Store {
	s := &Store{path: path}
	s.snap.Store(s.load())
	return s
}

// Path returns the data file path this store reads from.
func (s *Store) Path() string { return s.path }

// Current returns the active snapshot.
func (s *Store) Current() *Snapshot {
	return s.snap.Load()
}

// Reload re-parses the data file and atomically replaces the active
// snapshot. Returns the new snapshot.
func (s *Store) Reload() *Snapshot {
	snap := s.load()
	s.snap.Store(snap)
	slog.Info("data reloaded",
		"path", s.path,
		"drivers", snap.Drivers.Len(),
		"teams", snap.Teams.Len(),
		"circuits", snap.Circuits.Len(),
	)
	return snap
}

func (s *Store) load() *Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		slog.Error("data file not readable, starting with empty tables", "path", s.path, "err", err)
		return emptySnapshot()
	}
	snap := emptySnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		slog.Error("data file not parseable, starting with empty tables", "path", s.path, "err", err)
		return emptySnapshot()
	}
	return snap
}
