package surface

import "docfields/internal/geometry"

// DropTypeNew tags a drag that originated from the field catalog. A drag of
// an already-placed field ends through the move operation instead, so any
// other tag is ignored by the drop handler.
const DropTypeNew = "new"

// DropPayload is the wire shape of a catalog-to-page drop: the dragged kind,
// the drag-type discriminator, the pointer position, the target page, and the
// page surface's on-screen box at drop time.
type DropPayload struct {
	Kind     string       `json:"kind"`
	Type     string       `json:"type"`
	PointerX float64      `json:"pointer_x"`
	PointerY float64      `json:"pointer_y"`
	Page     int          `json:"page"`
	Surface  geometry.Box `json:"surface_box"`
}

// IsNew reports whether the payload tags a drag-in from the catalog.
func (p DropPayload) IsNew() bool {
	return p.Type == DropTypeNew
}
