package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"docfields/internal/model"
	"docfields/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of
// repository.DocumentRepository. Page content is stored as a JSONB column and
// (un)marshalled at this boundary; the rest of the system never sees raw
// JSON.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

func marshalContent(content []model.DocumentPage) ([]byte, error) {
	if content == nil {
		content = []model.DocumentPage{}
	}
	b, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("marshal content: %w", err)
	}
	return b, nil
}

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	var content []byte
	if err := row.Scan(&d.ID, &d.Title, &d.Status, &content, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &d.Content); err != nil {
			return nil, fmt.Errorf("unmarshal content: %w", err)
		}
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, title, status, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, status, content, created_at, updated_at
	`
	content, err := marshalContent(doc.Content)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Status,
		content,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT id, title, status, content, created_at, updated_at
		FROM documents
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns documents using LIMIT/OFFSET pagination and a total count.
// Content is left out of listings; directory tables only need metadata.
func (r *DocumentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents WHERE ($1 = '' OR status = $1)`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, pq.Status).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, title, status, created_at, updated_at
		FROM documents
		WHERE ($1 = '' OR status = $1)
		ORDER BY updated_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Status, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// Update overwrites the mutable columns of a document and returns the stored
// row. The caller decides updated_at; the repository does not touch clocks.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET title = $2, status = $3, content = $4, updated_at = $5
		WHERE id = $1
		RETURNING id, title, status, content, created_at, updated_at
	`
	content, err := marshalContent(doc.Content)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Status,
		content,
		doc.UpdatedAt,
	)
	return scanDocument(row)
}

// Delete removes a document by ID. It does not return an error if the row
// does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
