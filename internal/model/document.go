package model

import (
	"strings"
	"time"
)

// Document statuses. A document starts as a draft and can be published once.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Document is a multi-page document template with form fields placed on its pages.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Status    string         `json:"status"`
	Content   []DocumentPage `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// DocumentPage is one rendered page of a document plus the fields placed on it.
// ImageKey is the object-storage key of the page raster; ImageURL is a presigned
// download URL refreshed on load. The raster itself comes from an external renderer.
type DocumentPage struct {
	Page       int           `json:"page"`
	ImageURL   string        `json:"imageUrl"`
	ImageKey   string        `json:"imageKey,omitempty"`
	Components []PlacedField `json:"components"`
}

// PlacedField is a single form field placed on a document page.
//
// X and Y are document-space coordinates relative to the page's natural pixel
// dimensions at scale 1, never on-screen pixels. They must survive save/reload
// round-trips unchanged regardless of the zoom active when they were written.
//
// Text is set only for free-text-capable kinds and Checked only for the
// checkbox kind; both stay nil otherwise.
type PlacedField struct {
	ID      string  `json:"id"`
	Kind    string  `json:"kind"`
	Page    int     `json:"page"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Text    *string `json:"text,omitempty"`
	Checked *bool   `json:"checked,omitempty"`
}

// KindFromFieldID recovers the catalog kind from a field instance id.
// Instance ids are "<kind>-<uuid>", so the kind is everything before the
// first dash. Ids without a dash are returned as-is.
func KindFromFieldID(id string) string {
	if i := strings.Index(id, "-"); i >= 0 {
		return id[:i]
	}
	return id
}

// FindPage returns the page entry with the given 1-based number, or nil.
func (d *Document) FindPage(page int) *DocumentPage {
	for i := range d.Content {
		if d.Content[i].Page == page {
			return &d.Content[i]
		}
	}
	return nil
}
