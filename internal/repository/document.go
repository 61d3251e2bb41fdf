// Package repository contains data access abstractions. Implementations live
// in subpackages (e.g. postgres) inside this directory.
package repository

import (
	"context"

	"docfields/internal/model"
)

// DocumentRepository defines data access for field documents using SQL
// queries only. No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, content included.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a paginated list of documents and a total row count.
	// Items carry no content; the editor loads content through FindByID.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// Update overwrites title, status, content and updated_at of a document
	// and returns the stored row.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted
	// or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters; an optional status
// narrows the listing.
type PageQuery struct {
	Limit  int
	Offset int
	Status string
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
