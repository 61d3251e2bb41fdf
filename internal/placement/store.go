// Package placement holds the authoritative in-memory field set for one open
// editor session. Mutations are synchronous and last-write-wins; there is no
// undo. The store is owned by a single session but driven over HTTP, so it is
// guarded by a mutex.
package placement

import (
	"sync"

	"github.com/google/uuid"

	"docfields/internal/catalog"
	"docfields/internal/model"
)

// Store is the live set of placed fields for an open document, in insertion
// order. A reload replaces the whole store from server state; save never
// removes entries.
type Store struct {
	mu     sync.RWMutex
	fields []model.PlacedField
	index  map[string]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Seed replaces the store content with every field of every page of the
// document. Called once when an editor session opens.
func (s *Store) Seed(doc *model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields = s.fields[:0]
	s.index = make(map[string]int)
	for _, page := range doc.Content {
		for _, f := range page.Components {
			s.index[f.ID] = len(s.fields)
			s.fields = append(s.fields, f)
		}
	}
}

// Add creates a new field of the given kind at a document-space position.
// The instance id is "<kind>-<uuid>" so the kind stays recoverable by prefix.
// Checkbox fields start unchecked; no other optional attribute is set.
func (s *Store) Add(kind string, page int, x, y float64) model.PlacedField {
	f := model.PlacedField{
		ID:   kind + "-" + uuid.NewString(),
		Kind: kind,
		Page: page,
		X:    x,
		Y:    y,
	}
	if kind == catalog.KindCheckbox {
		checked := false
		f.Checked = &checked
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index[f.ID] = len(s.fields)
	s.fields = append(s.fields, f)
	return f
}

// Move replaces the position of the field with the given id. Returns false
// when the id is absent; the caller treats that as a no-op.
func (s *Store) Move(id string, x, y float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.fields[i].X = x
	s.fields[i].Y = y
	return true
}

// SetText updates the text of a text-capable field. Checkbox fields never
// enter text edit; the call is refused for them.
func (s *Store) SetText(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok || s.fields[i].Kind == catalog.KindCheckbox {
		return false
	}
	s.fields[i].Text = &text
	return true
}

// SetChecked updates the checked state of a checkbox field. It never touches
// the text attribute, and it is refused for any other kind.
func (s *Store) SetChecked(id string, checked bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok || s.fields[i].Kind != catalog.KindCheckbox {
		return false
	}
	s.fields[i].Checked = &checked
	return true
}

// Remove deletes the field with the given id.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.fields = append(s.fields[:i], s.fields[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.fields); j++ {
		s.index[s.fields[j].ID] = j
	}
	return true
}

// Get returns the field with the given id.
func (s *Store) Get(id string) (model.PlacedField, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return model.PlacedField{}, false
	}
	return s.fields[i], true
}

// ForPage returns the fields on one page, in insertion order. Fields are
// absolutely positioned so render order does not affect correctness.
func (s *Store) ForPage(page int) []model.PlacedField {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.PlacedField
	for _, f := range s.fields {
		if f.Page == page {
			out = append(out, f)
		}
	}
	return out
}

// All returns a copy of every field in insertion order.
func (s *Store) All() []model.PlacedField {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.PlacedField, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len reports the number of fields in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fields)
}
