package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfields/internal/catalog"
	"docfields/internal/geometry"
	"docfields/internal/model"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	reg, err := catalog.Default()
	require.NoError(t, err)
	return NewRenderer(reg)
}

func TestPageRendering(t *testing.T) {
	r := testRenderer(t)
	checked := true
	page := model.DocumentPage{Page: 2, ImageURL: "https://img.example/p2.png"}
	fields := []model.PlacedField{
		{ID: "signature-a", Kind: "signature", Page: 2, X: 100, Y: 200},
		{ID: "checkbox-b", Kind: "checkbox", Page: 2, X: 10, Y: 20, Checked: &checked},
	}

	svg, err := r.Page(page, fields, geometry.ViewBox{Width: 800, Height: 1000}, 1.0, ModeEditor)
	require.NoError(t, err)

	assert.Contains(t, svg, `viewBox="0 0 800 1000"`)
	assert.Contains(t, svg, `data-page="2"`)
	assert.Contains(t, svg, `href="https://img.example/p2.png"`)
	// Document-space coordinates land in the translate, untouched by scale.
	assert.Contains(t, svg, `translate(100 200) scale(1)`)
	assert.Contains(t, svg, `data-field-id="signature-a"`)
}

func TestScaleIsPresentationOnly(t *testing.T) {
	r := testRenderer(t)
	fields := []model.PlacedField{{ID: "text-a", Kind: "text", Page: 1, X: 150, Y: 250}}

	svg, err := r.Page(model.DocumentPage{Page: 1}, fields, geometry.ViewBox{Width: 800, Height: 1000}, 2.0, ModeEditor)
	require.NoError(t, err)

	// The stored position stays canonical; only the wrapper transform scales.
	assert.Contains(t, svg, `translate(150 250) scale(2)`)
	assert.NotContains(t, svg, `translate(300 500)`)
}

func TestUnknownKindPlaceholder(t *testing.T) {
	r := testRenderer(t)
	fields := []model.PlacedField{{ID: "hologram-a", Kind: "hologram", Page: 1, X: 5, Y: 5}}

	svg, err := r.Page(model.DocumentPage{Page: 1}, fields, geometry.DefaultViewBox(), 1.0, ModeEditor)
	require.NoError(t, err)
	assert.Contains(t, svg, "Unknown Item")
	assert.Contains(t, svg, `data-field-id="hologram-a"`)
}

func TestFallbackViewBox(t *testing.T) {
	r := testRenderer(t)

	svg, err := r.Page(model.DocumentPage{Page: 1}, nil, geometry.ViewBox{}, 1.0, ModeEditor)
	require.NoError(t, err)
	assert.Contains(t, svg, `viewBox="0 0 600 850"`)
}

func TestPreviewMode(t *testing.T) {
	r := testRenderer(t)
	text := "Jane Doe"
	fields := []model.PlacedField{{ID: "fullName-a", Kind: "fullName", Page: 1, X: 1, Y: 1, Text: &text}}

	svg, err := r.Page(model.DocumentPage{Page: 1}, fields, geometry.DefaultViewBox(), 1.0, ModePreview)
	require.NoError(t, err)
	assert.Contains(t, svg, "Jane Doe")
	// Preview templates draw no editor chrome rect for smart kinds.
	assert.NotContains(t, svg, "#ede9fe")
}

func TestDropPayloadDiscriminator(t *testing.T) {
	assert.True(t, DropPayload{Type: DropTypeNew}.IsNew())
	assert.False(t, DropPayload{Type: "move"}.IsNew())
	assert.False(t, DropPayload{}.IsNew())
}
