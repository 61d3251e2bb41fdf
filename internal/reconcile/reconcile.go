// Package reconcile merges live editor state back into persisted document
// content. The merge is id-scoped rather than replace-by-page: fields on a
// page that the session never touched survive untouched even if another path
// added them after the session loaded.
package reconcile

import (
	"sort"

	"docfields/internal/model"
)

// Merge folds the session's placed fields into the last-loaded document
// content, page by page.
//
// For every live field, the matching page's component with the same id is
// dropped and the live field appended, which realizes last-write-wins per
// field id while leaving unrelated components alone. A field on a page
// missing from the loaded content gets a fresh page entry with an empty
// image URL. The input content is not mutated.
func Merge(content []model.DocumentPage, fields []model.PlacedField) []model.DocumentPage {
	byPage := make(map[int]model.DocumentPage, len(content))
	pageOrder := make([]int, 0, len(content))
	for _, p := range content {
		cp := p
		cp.Components = append([]model.PlacedField(nil), p.Components...)
		byPage[p.Page] = cp
		pageOrder = append(pageOrder, p.Page)
	}

	var newPages []int
	for _, f := range fields {
		entry, ok := byPage[f.Page]
		if !ok {
			byPage[f.Page] = model.DocumentPage{
				Page:       f.Page,
				ImageURL:   "",
				Components: []model.PlacedField{f},
			}
			newPages = append(newPages, f.Page)
			continue
		}
		kept := entry.Components[:0:0]
		for _, c := range entry.Components {
			if c.ID != f.ID {
				kept = append(kept, c)
			}
		}
		entry.Components = append(kept, f)
		byPage[f.Page] = entry
	}

	// Original page order first, then defensively created pages ascending.
	sort.Ints(newPages)
	merged := make([]model.DocumentPage, 0, len(byPage))
	for _, n := range pageOrder {
		merged = append(merged, byPage[n])
	}
	for _, n := range newPages {
		merged = append(merged, byPage[n])
	}
	return merged
}

// MergeContent merges an incoming content payload into the stored content on
// document update. Pages carried by the payload are authoritative for their
// own component membership, so a field deleted in the editor stays deleted.
// Pages absent from the payload are preserved wholesale; that is the
// defensive half against a partial payload clobbering pages the client never
// loaded. Page attributes (image url/key) are only refreshed when the payload
// actually carries them.
func MergeContent(existing, incoming []model.DocumentPage) []model.DocumentPage {
	if incoming == nil {
		return existing
	}
	byPage := make(map[int]model.DocumentPage, len(incoming))
	for _, p := range incoming {
		byPage[p.Page] = p
	}

	merged := make([]model.DocumentPage, 0, len(existing))
	seen := make(map[int]struct{}, len(existing))
	for _, p := range existing {
		seen[p.Page] = struct{}{}
		in, ok := byPage[p.Page]
		if !ok {
			merged = append(merged, p)
			continue
		}
		if in.ImageURL == "" {
			in.ImageURL = p.ImageURL
		}
		if in.ImageKey == "" {
			in.ImageKey = p.ImageKey
		}
		merged = append(merged, in)
	}
	// Pages only the payload knows about go at the end, ascending.
	var extra []int
	for n := range byPage {
		if _, ok := seen[n]; !ok {
			extra = append(extra, n)
		}
	}
	sort.Ints(extra)
	for _, n := range extra {
		merged = append(merged, byPage[n])
	}
	return merged
}
