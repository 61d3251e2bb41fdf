// Package session holds the in-memory state of one open editor: the loaded
// document snapshot, the placement store seeded from it, per-page view boxes
// from dimension probing, the shared zoom scale, and the save guard. All
// state is discarded when the session closes without saving.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"docfields/internal/geometry"
	"docfields/internal/model"
	"docfields/internal/placement"
	"docfields/internal/surface"
)

var (
	// ErrNotReady gates drop and drag until every page's dimension probe has
	// settled; placements computed under the fallback view box could be
	// spatially wrong once the true size arrives.
	ErrNotReady = errors.New("editor session not ready")
	// ErrSaveInFlight rejects a save while another one is pending for the
	// same session.
	ErrSaveInFlight = errors.New("save already in flight")
	// ErrDropIgnored marks a drop whose drag-type tag is not "new"; existing
	// fields reposition through Move, so the drop handler ignores them.
	ErrDropIgnored = errors.New("drop ignored")
	// ErrFieldNotFound reports an id that is not in the placement store.
	ErrFieldNotFound = errors.New("field not found")
	// ErrKindInvalid rejects a dropped kind id that is empty or carries a
	// dash. Instance ids are "<kind>-<uuid>", so a dashed kind would no
	// longer be recoverable from the id prefix.
	ErrKindInvalid = errors.New("field kind id must be non-empty and dash-free")
	// ErrTextNotEditable reports a text edit on the checkbox kind.
	ErrTextNotEditable = errors.New("field kind is not text-editable")
	// ErrNotToggleable reports a checked toggle on a non-checkbox kind.
	ErrNotToggleable = errors.New("field kind has no checked state")
)

// PageState is one page as the session sees it: the raster URL plus the view
// box resolved by the dimension probe. Probed is false while the fallback
// box is in effect.
type PageState struct {
	Page     int              `json:"page"`
	ImageURL string           `json:"image_url"`
	View     geometry.ViewBox `json:"view"`
	Probed   bool             `json:"probed"`
}

// Session is one open editor over one document. It is safe for concurrent
// use; the HTTP layer drives it from many requests.
type Session struct {
	ID         string
	DocumentID string
	CreatedAt  time.Time

	mu     sync.Mutex
	doc    *model.Document
	store  *placement.Store
	pages  map[int]*PageState
	scale  float64
	ready  bool
	saving bool
}

// New opens a session over a loaded document. The store is seeded with every
// field of every page; pages start on the fallback view box until probed.
func New(doc *model.Document) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		CreatedAt:  time.Now().UTC(),
		doc:        doc,
		store:      placement.NewStore(),
		pages:      make(map[int]*PageState, len(doc.Content)),
		scale:      geometry.MinScale,
	}
	s.store.Seed(doc)
	for _, p := range doc.Content {
		s.pages[p.Page] = &PageState{
			Page:     p.Page,
			ImageURL: p.ImageURL,
			View:     geometry.DefaultViewBox(),
		}
	}
	return s
}

// SetPageView records a page's probed view box. Probed is false when the
// probe failed and the fallback stays in effect for that page only.
func (s *Session) SetPageView(page int, view geometry.ViewBox, probed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps, ok := s.pages[page]
	if !ok {
		ps = &PageState{Page: page}
		s.pages[page] = ps
	}
	if probed {
		ps.View = view
	}
	ps.Probed = probed
}

// MarkReady flips the session into its interactive state. Called once all
// probes have settled, succeeded or not.
func (s *Session) MarkReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
}

// Ready reports whether drop and drag are accepted.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Scale returns the zoom scale shared by every page surface of the session.
func (s *Session) Scale() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale
}

// ZoomIn steps the shared scale up and returns the new value.
func (s *Session) ZoomIn() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scale = geometry.ZoomIn(s.scale)
	return s.scale
}

// ZoomOut steps the shared scale down and returns the new value.
func (s *Session) ZoomOut() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scale = geometry.ZoomOut(s.scale)
	return s.scale
}

// ViewFor returns the page's current view box, falling back to the default
// for pages the session has never seen.
func (s *Session) ViewFor(page int) geometry.ViewBox {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewForLocked(page)
}

func (s *Session) viewForLocked(page int) geometry.ViewBox {
	if ps, ok := s.pages[page]; ok {
		return ps.View
	}
	return geometry.DefaultViewBox()
}

// Drop handles a catalog-to-page drop. Drops tagged anything but "new" are
// ignored, and an unresolvable surface box aborts with no state change; both
// are recoverable no-ops for the caller to swallow.
func (s *Session) Drop(p surface.DropPayload) (model.PlacedField, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return model.PlacedField{}, ErrNotReady
	}
	if !p.IsNew() {
		return model.PlacedField{}, ErrDropIgnored
	}
	if p.Kind == "" || strings.Contains(p.Kind, "-") {
		return model.PlacedField{}, ErrKindInvalid
	}
	pt, err := geometry.ToDocumentSpace(p.PointerX, p.PointerY, p.Surface, s.viewForLocked(p.Page), s.scale)
	if err != nil {
		return model.PlacedField{}, err
	}
	return s.store.Add(p.Kind, p.Page, pt.X, pt.Y), nil
}

// Move commits a drag stop: the raw document-space position, bounded to the
// field's page surface. Unknown ids are a defensive no-op.
func (s *Session) Move(id string, x, y float64) (model.PlacedField, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return model.PlacedField{}, ErrNotReady
	}
	f, ok := s.store.Get(id)
	if !ok {
		return model.PlacedField{}, ErrFieldNotFound
	}
	pt := geometry.ClampToView(geometry.Point{X: x, Y: y}, s.viewForLocked(f.Page))
	s.store.Move(id, pt.X, pt.Y)
	f, _ = s.store.Get(id)
	return f, nil
}

// SetText commits an inline text edit. The position and content axes are
// independent; a field can be mid-drag and still take a text commit.
func (s *Session) SetText(id, text string) (model.PlacedField, error) {
	f, ok := s.store.Get(id)
	if !ok {
		return model.PlacedField{}, ErrFieldNotFound
	}
	if !s.store.SetText(id, text) {
		return model.PlacedField{}, ErrTextNotEditable
	}
	f, _ = s.store.Get(id)
	return f, nil
}

// SetChecked toggles a checkbox field. Never touches the text attribute.
func (s *Session) SetChecked(id string, checked bool) (model.PlacedField, error) {
	f, ok := s.store.Get(id)
	if !ok {
		return model.PlacedField{}, ErrFieldNotFound
	}
	if !s.store.SetChecked(id, checked) {
		return model.PlacedField{}, ErrNotToggleable
	}
	f, _ = s.store.Get(id)
	return f, nil
}

// RemoveField deletes a field immediately, no confirmation step; reload
// without save is the only way back. The loaded snapshot is trimmed too so
// the id-scoped save merge cannot resurrect the field.
func (s *Session) RemoveField(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.Remove(id) {
		return ErrFieldNotFound
	}
	for i := range s.doc.Content {
		comps := s.doc.Content[i].Components
		for j := range comps {
			if comps[j].ID == id {
				s.doc.Content[i].Components = append(comps[:j], comps[j+1:]...)
				break
			}
		}
	}
	return nil
}

// FieldsForPage returns the live fields on one page, insertion-ordered.
func (s *Session) FieldsForPage(page int) []model.PlacedField {
	return s.store.ForPage(page)
}

// Fields returns every live field in insertion order.
func (s *Session) Fields() []model.PlacedField {
	return s.store.All()
}

// Document returns the session's loaded document snapshot.
func (s *Session) Document() *model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// DocumentSnapshot returns the loaded title and a deep copy of the content.
// The save merge runs outside the session lock while RemoveField rewrites
// component slices in place, so the merge input must not share backing arrays
// with the live snapshot.
func (s *Session) DocumentSnapshot() (string, []model.DocumentPage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pages := make([]model.DocumentPage, len(s.doc.Content))
	copy(pages, s.doc.Content)
	for i := range pages {
		comps := make([]model.PlacedField, len(pages[i].Components))
		copy(comps, pages[i].Components)
		pages[i].Components = comps
	}
	return s.doc.Title, pages
}

// PageInfo returns a detached copy of one stored page entry, or a bare entry
// for page numbers the loaded content has never seen.
func (s *Session) PageInfo(page int) model.DocumentPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.doc.Content {
		if p.Page == page {
			return model.DocumentPage{Page: p.Page, ImageURL: p.ImageURL, ImageKey: p.ImageKey}
		}
	}
	return model.DocumentPage{Page: page}
}

// BeginSave acquires the single-save guard. This is a mutation guard, not a
// lock: a second save gets ErrSaveInFlight instead of queueing.
func (s *Session) BeginSave() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return ErrSaveInFlight
	}
	s.saving = true
	return nil
}

// EndSave releases the save guard.
func (s *Session) EndSave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
}

// ApplySaved replaces the snapshot with the server's post-save document, so
// the next merge starts from what is actually persisted.
func (s *Session) ApplySaved(doc *model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
}

// State is the session snapshot served to the editor client.
type State struct {
	ID         string              `json:"id"`
	DocumentID string              `json:"document_id"`
	Title      string              `json:"title"`
	Status     string              `json:"status"`
	Scale      float64             `json:"scale"`
	Ready      bool                `json:"ready"`
	Pages      []PageState         `json:"pages"`
	Fields     []model.PlacedField `json:"fields"`
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		ID:         s.ID,
		DocumentID: s.DocumentID,
		Title:      s.doc.Title,
		Status:     s.doc.Status,
		Scale:      s.scale,
		Ready:      s.ready,
		Fields:     s.store.All(),
	}
	for _, p := range s.doc.Content {
		if ps, ok := s.pages[p.Page]; ok {
			st.Pages = append(st.Pages, *ps)
		}
	}
	return st
}
