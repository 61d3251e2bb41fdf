// Package catalog holds the registry of placeable field kinds. The registry
// is built once at startup and injected into components that need it; after
// construction it is read-only.
package catalog

import (
	"fmt"
	"html/template"
	"strings"
)

// KindCheckbox is the one kind with toggle semantics instead of free text.
// Every other kind is text-capable.
const KindCheckbox = "checkbox"

// Entry describes one placeable field kind. EditorTemplate renders the
// interactive in-editor representation, PreviewTemplate the neutral one used
// for published previews. Both are SVG fragments positioned by the surface
// renderer, so they draw at the local origin.
type Entry struct {
	ID              string
	Label           string
	EditorTemplate  string
	PreviewTemplate string

	editor  *template.Template
	preview *template.Template
}

// RenderData is the data handed to a kind's templates.
type RenderData struct {
	Label   string
	Text    string
	Checked bool
}

// Registry is an immutable kind lookup. Kind ids must not contain a dash:
// field instance ids are "<kind>-<uuid>" and the kind is recovered by prefix.
type Registry struct {
	entries map[string]Entry
	order   []string
}

// New builds a registry from the given entries, parsing their templates.
func New(entries ...Entry) (*Registry, error) {
	r := &Registry{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if strings.Contains(e.ID, "-") {
			return nil, fmt.Errorf("kind id %q must not contain a dash", e.ID)
		}
		if _, dup := r.entries[e.ID]; dup {
			return nil, fmt.Errorf("duplicate kind id %q", e.ID)
		}
		ed, err := template.New(e.ID + ".editor").Parse(e.EditorTemplate)
		if err != nil {
			return nil, fmt.Errorf("parse editor template for %q: %w", e.ID, err)
		}
		pv, err := template.New(e.ID + ".preview").Parse(e.PreviewTemplate)
		if err != nil {
			return nil, fmt.Errorf("parse preview template for %q: %w", e.ID, err)
		}
		e.editor = ed
		e.preview = pv
		r.entries[e.ID] = e
		r.order = append(r.order, e.ID)
	}
	return r, nil
}

// Resolve looks up a kind by exact id. Pure read, no side effects.
func (r *Registry) Resolve(kind string) (Entry, bool) {
	e, ok := r.entries[kind]
	return e, ok
}

// Entries returns the kinds in registration order. The slice is a copy.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// RenderEditor executes the kind's editor template.
func (e Entry) RenderEditor(data RenderData) (string, error) {
	return execute(e.editor, data)
}

// RenderPreview executes the kind's preview template.
func (e Entry) RenderPreview(data RenderData) (string, error) {
	return execute(e.preview, data)
}

func execute(t *template.Template, data RenderData) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
