package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"docfields/internal/geometry"
	"docfields/internal/model"
	"docfields/internal/reconcile"
	"docfields/internal/session"
	"docfields/internal/surface"
)

var (
	ErrSessionNotFound = errors.New("editor session not found")
	ErrInvalidZoom     = errors.New("zoom direction must be \"in\" or \"out\"")
	ErrPageNotFound    = errors.New("page not found")
)

// Zoom directions accepted by EditorService.Zoom.
const (
	ZoomIn  = "in"
	ZoomOut = "out"
)

// EditorService drives editor sessions: opening a document into an in-memory
// session, routing field interactions into its placement store, rendering
// page surfaces, and reconciling state back on save.
type EditorService interface {
	// Open loads a document, seeds a session from it, probes every page's
	// raster dimensions, and returns the ready session state.
	Open(ctx context.Context, documentID string) (session.State, error)

	// State returns the current session snapshot.
	State(sessionID string) (session.State, error)

	// Close discards a session without persisting anything.
	Close(sessionID string) error

	// Drop handles a catalog-to-page drop. A nil field with a nil error
	// means the drop was a recoverable no-op (ignored tag or unresolvable
	// surface).
	Drop(sessionID string, p surface.DropPayload) (*model.PlacedField, error)

	// Move commits a drag stop at a raw document-space position.
	Move(sessionID, fieldID string, x, y float64) (*model.PlacedField, error)

	// SetText commits an inline text edit.
	SetText(sessionID, fieldID, text string) (*model.PlacedField, error)

	// SetChecked toggles a checkbox field.
	SetChecked(sessionID, fieldID string, checked bool) (*model.PlacedField, error)

	// RemoveField deletes a field from the session.
	RemoveField(sessionID, fieldID string) error

	// Zoom steps the session's shared scale and returns the new value.
	Zoom(sessionID, direction string) (float64, error)

	// Save merges the session's placement store into the loaded content and
	// persists the result. The store is untouched on failure.
	Save(ctx context.Context, sessionID string) (*model.Document, error)

	// PageSVG renders one page's editor surface at the session's scale.
	PageSVG(sessionID string, page int) (string, error)

	// RenderPreview renders one page of a stored document in preview mode,
	// independent of any session.
	RenderPreview(ctx context.Context, documentID string, page int) (string, error)
}

type editorService struct {
	docs     DocumentService
	sessions *session.Manager
	prober   session.Prober
	renderer *surface.Renderer

	probeConcurrency int
}

// NewEditorService constructs an EditorService.
func NewEditorService(docs DocumentService, sessions *session.Manager, prober session.Prober, renderer *surface.Renderer, probeConcurrency int) EditorService {
	return &editorService{
		docs:             docs,
		sessions:         sessions,
		prober:           prober,
		renderer:         renderer,
		probeConcurrency: probeConcurrency,
	}
}

func (e *editorService) Open(ctx context.Context, documentID string) (session.State, error) {
	doc, err := e.docs.Get(ctx, documentID)
	if err != nil {
		return session.State{}, err
	}
	s := session.New(doc)
	// One independent probe per page, awaited collectively: the session only
	// reports ready once every page's view box has settled.
	session.ProbeAll(ctx, e.prober, s, doc, e.probeConcurrency)
	e.sessions.Put(s)
	return s.Snapshot(), nil
}

func (e *editorService) get(sessionID string) (*session.Session, error) {
	s, ok := e.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (e *editorService) State(sessionID string) (session.State, error) {
	s, err := e.get(sessionID)
	if err != nil {
		return session.State{}, err
	}
	return s.Snapshot(), nil
}

func (e *editorService) Close(sessionID string) error {
	if _, err := e.get(sessionID); err != nil {
		return err
	}
	e.sessions.Delete(sessionID)
	return nil
}

func (e *editorService) Drop(sessionID string, p surface.DropPayload) (*model.PlacedField, error) {
	s, err := e.get(sessionID)
	if err != nil {
		return nil, err
	}
	f, err := s.Drop(p)
	if err != nil {
		// Ignored tags and unresolvable surfaces are no-ops, not errors the
		// editor client needs to surface.
		if errors.Is(err, session.ErrDropIgnored) || errors.Is(err, geometry.ErrNoSurface) {
			logEditor("drop_noop", sessionID, err)
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (e *editorService) Move(sessionID, fieldID string, x, y float64) (*model.PlacedField, error) {
	s, err := e.get(sessionID)
	if err != nil {
		return nil, err
	}
	f, err := s.Move(fieldID, x, y)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (e *editorService) SetText(sessionID, fieldID, text string) (*model.PlacedField, error) {
	s, err := e.get(sessionID)
	if err != nil {
		return nil, err
	}
	f, err := s.SetText(fieldID, text)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (e *editorService) SetChecked(sessionID, fieldID string, checked bool) (*model.PlacedField, error) {
	s, err := e.get(sessionID)
	if err != nil {
		return nil, err
	}
	f, err := s.SetChecked(fieldID, checked)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (e *editorService) RemoveField(sessionID, fieldID string) error {
	s, err := e.get(sessionID)
	if err != nil {
		return err
	}
	return s.RemoveField(fieldID)
}

func (e *editorService) Zoom(sessionID, direction string) (float64, error) {
	s, err := e.get(sessionID)
	if err != nil {
		return 0, err
	}
	switch direction {
	case ZoomIn:
		return s.ZoomIn(), nil
	case ZoomOut:
		return s.ZoomOut(), nil
	default:
		return 0, ErrInvalidZoom
	}
}

func (e *editorService) Save(ctx context.Context, sessionID string) (*model.Document, error) {
	s, err := e.get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.BeginSave(); err != nil {
		return nil, err
	}
	defer s.EndSave()

	title, content := s.DocumentSnapshot()
	merged := reconcile.Merge(content, s.Fields())
	updated, err := e.docs.Update(ctx, s.DocumentID, UpdateDocumentInput{
		Title:   &title,
		Content: merged,
	})
	if err != nil {
		// Nothing was applied optimistically; the session state stands.
		return nil, err
	}
	s.ApplySaved(updated)
	return updated, nil
}

func (e *editorService) PageSVG(sessionID string, page int) (string, error) {
	s, err := e.get(sessionID)
	if err != nil {
		return "", err
	}
	// Fields can live on pages the stored content has never seen; PageInfo
	// hands back a bare surface for those instead of failing.
	pg := s.PageInfo(page)
	return e.renderer.Page(pg, s.FieldsForPage(page), s.ViewFor(page), s.Scale(), surface.ModeEditor)
}

func (e *editorService) RenderPreview(ctx context.Context, documentID string, page int) (string, error) {
	doc, err := e.docs.Get(ctx, documentID)
	if err != nil {
		return "", err
	}
	pg := doc.FindPage(page)
	if pg == nil {
		return "", ErrPageNotFound
	}
	view, err := e.prober.Probe(ctx, pg.ImageURL)
	if err != nil {
		logEditor("preview_probe_failed", documentID, err)
		view = geometry.DefaultViewBox()
	}
	return e.renderer.Page(*pg, pg.Components, view, 1.0, surface.ModePreview)
}

func logEditor(event, id string, err error) {
	entry := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     "info",
		"component": "editor",
		"event":     event,
		"id":        id,
	}
	if err != nil {
		entry["reason"] = err.Error()
	}
	if b, mErr := json.Marshal(entry); mErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
