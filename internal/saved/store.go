// Package saved persists the user-curated parts list as a single JSON
// document on disk.
package saved

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
)

// ErrNotFound is returned when an update names a part that is not in
// the store.
var ErrNotFound = eris.New("saved: part not found")

// Store is the saved-parts list backed by one JSON file. The whole
// document is read at open and rewritten on every mutation; a mutex
// serializes load-modify-persist. Entry identity is the part name,
// compared case-insensitively after trimming.
type Store struct {
	path string

	mu    sync.Mutex
	parts []model.SavedPart
	now   func() time.Time
}

// Open reads the store file. A missing file is an empty store, not an
// error.
func Open(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, eris.Wrap(err, "saved: read store")
	}
	if err := json.Unmarshal(data, &s.parts); err != nil {
		return nil, eris.Wrap(err, "saved: unmarshal store")
	}
	return s, nil
}

// Add inserts a part, or replaces the existing entry with the same name
// in place, last write wins. A zero SavedAt is stamped with the current
// time; a caller-supplied SavedAt is preserved.
func (s *Store) Add(part model.SavedPart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if part.SavedAt.IsZero() {
		part.SavedAt = s.now()
	}

	key := normalize(part.PartName)
	replaced := false
	for i := range s.parts {
		if normalize(s.parts[i].PartName) == key {
			s.parts[i] = part
			replaced = true
			break
		}
	}
	if !replaced {
		s.parts = append(s.parts, part)
	}
	return s.persist()
}

// Remove deletes by name. Removing an absent name is a no-op; the bool
// reports whether anything was deleted.
func (s *Store) Remove(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalize(name)
	for i := range s.parts {
		if normalize(s.parts[i].PartName) == key {
			s.parts = append(s.parts[:i], s.parts[i+1:]...)
			return true, s.persist()
		}
	}
	return false, nil
}

// Update edits the free-text fields of an existing entry.
func (s *Store) Update(name, youtubeLink, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalize(name)
	for i := range s.parts {
		if normalize(s.parts[i].PartName) == key {
			s.parts[i].YouTubeLink = youtubeLink
			s.parts[i].Notes = notes
			return s.persist()
		}
	}
	return ErrNotFound
}

// List returns entries in insertion order, oldest first.
func (s *Store) List() []model.SavedPart {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.SavedPart, len(s.parts))
	copy(out, s.parts)
	return out
}

// Len reports how many parts are saved.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.parts)
}

// Clear empties the store.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.parts = nil
	return s.persist()
}

// persist rewrites the whole document via a temp file so a crash
// mid-write cannot truncate the list. Callers hold the mutex.
func (s *Store) persist() error {
	parts := s.parts
	if parts == nil {
		parts = []model.SavedPart{}
	}
	data, err := json.MarshalIndent(parts, "", "  ")
	if err != nil {
		return eris.Wrap(err, "saved: marshal store")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrap(err, "saved: write store")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return eris.Wrap(err, "saved: replace store")
	}
	return nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
