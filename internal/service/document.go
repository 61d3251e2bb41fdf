package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"docfields/internal/model"
	"docfields/internal/reconcile"
	"docfields/internal/repository"
	"docfields/internal/storage"
)

var (
	ErrIDRequired    = errors.New("id is required")
	ErrTitleRequired = errors.New("title is required")
	ErrNotFound      = errors.New("document not found")
	ErrReaderNil     = errors.New("reader is nil")
	ErrInvalidStatus = errors.New("invalid document status")
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// UpdateDocumentInput carries the PATCH semantics for a document: nil fields
// are left alone, and Content goes through the server-side page merge rather
// than a blind overwrite.
type UpdateDocumentInput struct {
	Title   *string
	Status  *string
	Content []model.DocumentPage
}

// DocumentService defines the use cases for handling field documents.
type DocumentService interface {
	// Create inserts a new draft document with no pages.
	Create(ctx context.Context, title string) (*model.Document, error)

	// Get returns a single document by its ID with fresh presigned page
	// image URLs.
	Get(ctx context.Context, id string) (*model.Document, error)

	// List returns documents using limit/offset and a total count,
	// optionally narrowed to one status.
	List(ctx context.Context, limit, offset int, status string) (*DocumentListResult, error)

	// Update applies a partial update. Content payloads are merged into the
	// stored content page by page; see reconcile.MergeContent.
	Update(ctx context.Context, id string, in UpdateDocumentInput) (*model.Document, error)

	// AddPage uploads one rendered page raster to object storage and appends
	// it as the document's next page.
	AddPage(ctx context.Context, id string, r io.Reader, contentType string, size int64) (*model.Document, error)

	// Delete removes a document and its stored page rasters.
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	store         storage.Storage
	repo          repository.DocumentRepository
	presignExpiry time.Duration
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, presignExpiry time.Duration) DocumentService {
	if presignExpiry <= 0 {
		presignExpiry = time.Hour
	}
	return &documentService{store: store, repo: repo, presignExpiry: presignExpiry}
}

func (s *documentService) Create(ctx context.Context, title string) (*model.Document, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	now := time.Now().UTC()
	doc := &model.Document{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    model.StatusDraft,
		Content:   []model.DocumentPage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.refreshImageURLs(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// refreshImageURLs replaces each page's presigned URL; the stored one may
// have expired since the last save.
func (s *documentService) refreshImageURLs(ctx context.Context, doc *model.Document) error {
	for i := range doc.Content {
		key := doc.Content[i].ImageKey
		if key == "" {
			continue
		}
		u, err := s.store.PresignGet(ctx, key, s.presignExpiry)
		if err != nil {
			return fmt.Errorf("presign page %d: %w", doc.Content[i].Page, err)
		}
		doc.Content[i].ImageURL = u
	}
	return nil
}

func (s *documentService) List(ctx context.Context, limit, offset int, status string) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	if status != "" && status != model.StatusDraft && status != model.StatusPublished {
		return nil, ErrInvalidStatus
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset, Status: status})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Update(ctx context.Context, id string, in UpdateDocumentInput) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, ErrTitleRequired
		}
		doc.Title = *in.Title
	}
	if in.Status != nil {
		if *in.Status != model.StatusDraft && *in.Status != model.StatusPublished {
			return nil, ErrInvalidStatus
		}
		doc.Status = *in.Status
	}
	doc.Content = reconcile.MergeContent(doc.Content, in.Content)
	doc.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Update(ctx, doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return stored, nil
}

func (s *documentService) AddPage(ctx context.Context, id string, r io.Reader, contentType string, size int64) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if r == nil {
		return nil, ErrReaderNil
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("pages/%s/%s%s", id, uuid.NewString(), extensionFor(contentType))
	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	u, err := s.store.PresignGet(ctx, key, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign page image: %w", err)
	}

	next := 0
	for _, p := range doc.Content {
		if p.Page > next {
			next = p.Page
		}
	}
	doc.Content = append(doc.Content, model.DocumentPage{
		Page:       next + 1,
		ImageURL:   u,
		ImageKey:   key,
		Components: []model.PlacedField{},
	})
	doc.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Update(ctx, doc)
	if err != nil {
		// Rollback: delete the orphaned object from storage.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	default:
		return ".png"
	}
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete rasters first; if one fails, keep the DB row so the references
	// are not lost.
	for _, p := range doc.Content {
		if p.ImageKey == "" {
			continue
		}
		if err := s.store.Delete(ctx, p.ImageKey); err != nil {
			return fmt.Errorf("delete page %d raster: %w", p.Page, err)
		}
	}
	return s.repo.Delete(ctx, id)
}
