// Package surface renders one document page as an SVG surface: the page
// raster as background plus every field placed on that page. The surface
// declares the page's natural pixel dimensions as its view box, so field
// positions are resolution independent; zoom is applied as a presentation
// transform on each field wrapper, never folded into the coordinates.
package surface

import (
	"fmt"
	"html/template"
	"strings"

	"docfields/internal/catalog"
	"docfields/internal/geometry"
	"docfields/internal/model"
)

// Mode selects which catalog template renders each field.
type Mode string

const (
	ModeEditor  Mode = "editor"
	ModePreview Mode = "preview"
)

// Renderer draws page surfaces against an injected, read-only catalog.
type Renderer struct {
	catalog *catalog.Registry
}

// NewRenderer returns a renderer bound to the given kind registry.
func NewRenderer(reg *catalog.Registry) *Renderer {
	return &Renderer{catalog: reg}
}

// Page renders a full page surface. A field whose kind does not resolve in
// the catalog renders as a literal "Unknown Item" placeholder; it stays fully
// movable and deletable, the miss is not fatal.
func (r *Renderer) Page(page model.DocumentPage, fields []model.PlacedField, view geometry.ViewBox, scale float64, mode Mode) (string, error) {
	if view.Width <= 0 || view.Height <= 0 {
		view = geometry.DefaultViewBox()
	}
	if scale <= 0 {
		scale = geometry.MinScale
	}

	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" data-page="%d">`,
		view.Width, view.Height, page.Page)
	if page.ImageURL != "" {
		fmt.Fprintf(&sb,
			`<image href="%s" x="0" y="0" width="%g" height="%g"/>`,
			template.HTMLEscapeString(page.ImageURL), view.Width, view.Height)
	}
	for _, f := range fields {
		frag, err := r.field(f, scale, mode)
		if err != nil {
			return "", fmt.Errorf("render field %s: %w", f.ID, err)
		}
		sb.WriteString(frag)
	}
	sb.WriteString(`</svg>`)
	return sb.String(), nil
}

// field wraps one field's template output in its positioned, scaled group.
// The translate carries the canonical document-space position; scale is a
// presentation multiplier only.
func (r *Renderer) field(f model.PlacedField, scale float64, mode Mode) (string, error) {
	open := fmt.Sprintf(
		`<g data-field-id="%s" transform="translate(%g %g) scale(%g)">`,
		template.HTMLEscapeString(f.ID), f.X, f.Y, scale)

	entry, ok := r.catalog.Resolve(f.Kind)
	if !ok {
		return open + `<text class="field-unknown" font-size="13">Unknown Item</text></g>`, nil
	}

	data := catalog.RenderData{Label: entry.Label}
	if f.Text != nil {
		data.Text = *f.Text
	}
	if f.Checked != nil {
		data.Checked = *f.Checked
	}

	var body string
	var err error
	if mode == ModePreview {
		body, err = entry.RenderPreview(data)
	} else {
		body, err = entry.RenderEditor(data)
	}
	if err != nil {
		return "", err
	}
	return open + body + `</g>`, nil
}
