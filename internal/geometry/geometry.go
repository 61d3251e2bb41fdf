// Package geometry converts between viewport pixel coordinates and
// document-space coordinates for a page surface. The conversion is pure
// data-in/data-out so it can be tested without a rendered surface: callers
// pass the surface's on-screen bounding box, its declared view box, and the
// active zoom scale instead of the function querying a live element.
package geometry

import "errors"

// Zoom behavior shared by every page surface of an editor session. Zoom is
// global per session, not per page.
const (
	ZoomStep = 1.2
	MinScale = 1.0
	MaxScale = 3.0
)

// Fallback view box used while a page's intrinsic raster dimensions are still
// being probed (or when the probe failed). Keeps layout stable; it does not
// authorize interaction before the session is ready.
const (
	FallbackWidth  = 600
	FallbackHeight = 850
)

// ErrNoSurface is returned when no surface box is resolvable for a drop
// target. Callers treat it as a recoverable no-op, not a user-facing error.
var ErrNoSurface = errors.New("no surface box resolvable")

// Point is a position in document space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is the on-screen bounding box of a rendered page surface, in viewport
// pixels.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ViewBox is the declared coordinate space of a page surface, equal to the
// page raster's natural pixel dimensions at scale 1.
type ViewBox struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultViewBox returns the fallback view box for pages whose intrinsic
// dimensions are not yet known.
func DefaultViewBox() ViewBox {
	return ViewBox{Width: FallbackWidth, Height: FallbackHeight}
}

// ToDocumentSpace converts a viewport pointer position into document space.
//
// The surface is rendered at surface.Width x surface.Height on screen while
// declaring view.Width x view.Height as its coordinate space, so each axis
// carries a rendered-to-declared ratio. The active zoom scale is already baked
// into the rendered size and must be divided back out so the result is valid
// at scale 1.
func ToDocumentSpace(pointerX, pointerY float64, surface Box, view ViewBox, scale float64) (Point, error) {
	if surface.Width <= 0 || surface.Height <= 0 {
		return Point{}, ErrNoSurface
	}
	if scale <= 0 {
		scale = MinScale
	}
	scaleX := view.Width / surface.Width
	scaleY := view.Height / surface.Height
	return Point{
		X: (pointerX - surface.Left) * scaleX / scale,
		Y: (pointerY - surface.Top) * scaleY / scale,
	}, nil
}

// ZoomIn steps the scale up by ZoomStep, capped at MaxScale.
func ZoomIn(scale float64) float64 {
	s := scale * ZoomStep
	if s > MaxScale {
		return MaxScale
	}
	return s
}

// ZoomOut steps the scale down by ZoomStep, floored at MinScale.
func ZoomOut(scale float64) float64 {
	s := scale / ZoomStep
	if s < MinScale {
		return MinScale
	}
	return s
}

// ClampToView bounds a point to the view box. This is the service-side
// re-expression of drag bounding: a drag stays within its parent page surface.
func ClampToView(p Point, view ViewBox) Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if view.Width > 0 && p.X > view.Width {
		p.X = view.Width
	}
	if view.Height > 0 && p.Y > view.Height {
		p.Y = view.Height
	}
	return p
}
