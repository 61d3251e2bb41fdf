package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"docfields/internal/model"
	"docfields/internal/repository"
	repoMocks "docfields/internal/repository/mocks"
	"docfields/internal/storage"
	storeMocks "docfields/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(nil, mRepo, time.Hour)

		mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
			return doc.Title == "Offer Letter" && doc.Status == model.StatusDraft && doc.ID != ""
		})).Return(&model.Document{ID: "gen-id", Title: "Offer Letter"}, nil)

		doc, err := svc.Create(ctx, "Offer Letter")
		assert.NoError(t, err)
		assert.Equal(t, "gen-id", doc.ID)
		mRepo.AssertExpectations(t)
	})

	t.Run("validation - empty title", func(t *testing.T) {
		svc := NewDocumentService(nil, new(repoMocks.MockDocumentRepository), time.Hour)
		_, err := svc.Create(ctx, "")
		assert.ErrorIs(t, err, ErrTitleRequired)
	})
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path refreshes presigned urls", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		svc := NewDocumentService(mStore, mRepo, time.Hour)

		mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{
			ID: "valid-id",
			Content: []model.DocumentPage{
				{Page: 1, ImageKey: "pages/valid-id/a.png", ImageURL: "https://stale"},
				{Page: 2}, // no key, nothing to refresh
			},
		}, nil)
		mStore.On("PresignGet", ctx, "pages/valid-id/a.png", time.Hour).
			Return("https://fresh", nil)

		doc, err := svc.Get(ctx, "valid-id")
		require.NoError(t, err)
		assert.Equal(t, "https://fresh", doc.Content[0].ImageURL)
		mStore.AssertExpectations(t)
	})

	t.Run("validation - empty id", func(t *testing.T) {
		svc := NewDocumentService(nil, new(repoMocks.MockDocumentRepository), time.Hour)
		_, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("not found - mapping sql.ErrNoRows", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(nil, mRepo, time.Hour)
		mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)

		_, err := svc.Get(ctx, "missing-id")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		status     string
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		wantTotal  int
	}{
		{
			name:  "happy path",
			limit: 10,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Document]{
						Items: []model.Document{{ID: "1"}, {ID: "2"}},
						Total: 2,
					}, nil)
			},
			wantTotal: 2,
		},
		{
			name:   "pagination boundary - zero limit uses default",
			limit:  0,
			offset: -1,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Document]{Items: []model.Document{}, Total: 0}, nil)
			},
		},
		{
			name:       "invalid status filter",
			limit:      10,
			status:     "archived",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrInvalidStatus,
		},
		{
			name:  "repository error",
			limit: 10,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(nil, mRepo, time.Hour)

			tt.setupMocks(mRepo)

			res, err := svc.List(ctx, tt.limit, tt.offset, tt.status)

			if tt.wantErr != nil {
				assert.Error(t, err)
				if errors.Is(tt.wantErr, ErrInvalidStatus) {
					assert.ErrorIs(t, err, ErrInvalidStatus)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, res.Total)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Update(t *testing.T) {
	ctx := context.Background()

	stored := func() *model.Document {
		return &model.Document{
			ID: "doc-1", Title: "Old", Status: model.StatusDraft,
			Content: []model.DocumentPage{
				{Page: 1, ImageKey: "pages/doc-1/a.png", Components: []model.PlacedField{
					{ID: "signature-a", Kind: "signature", Page: 1, X: 10, Y: 10},
					{ID: "text-b", Kind: "text", Page: 1, X: 20, Y: 20},
				}},
			},
		}
	}

	t.Run("content payload merged server-side", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(nil, mRepo, time.Hour)

		mRepo.On("FindByID", ctx, "doc-1").Return(stored(), nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(doc *model.Document) bool {
			if doc.Title != "New" || len(doc.Content) != 1 {
				return false
			}
			// Carried page is authoritative: text-b deleted, signature-a moved.
			comps := doc.Content[0].Components
			return len(comps) == 1 && comps[0].ID == "signature-a" && comps[0].X == 99
		})).Return(func(_ context.Context, doc *model.Document) *model.Document {
			return doc
		}, nil)

		title := "New"
		updated, err := svc.Update(ctx, "doc-1", UpdateDocumentInput{
			Title: &title,
			Content: []model.DocumentPage{
				{Page: 1, Components: []model.PlacedField{
					{ID: "signature-a", Kind: "signature", Page: 1, X: 99, Y: 99},
				}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
		mRepo.AssertExpectations(t)
	})

	t.Run("status transition validated", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(nil, mRepo, time.Hour)
		mRepo.On("FindByID", ctx, "doc-1").Return(stored(), nil)

		bad := "archived"
		_, err := svc.Update(ctx, "doc-1", UpdateDocumentInput{Status: &bad})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(nil, mRepo, time.Hour)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Update(ctx, "missing", UpdateDocumentInput{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_AddPage(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path appends next page", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		svc := NewDocumentService(mStore, mRepo, time.Hour)

		r := strings.NewReader("png bytes")
		mRepo.On("FindByID", ctx, "doc-1").Return(&model.Document{
			ID:      "doc-1",
			Content: []model.DocumentPage{{Page: 1}, {Page: 3}},
		}, nil)
		mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "pages/doc-1/") && strings.HasSuffix(key, ".png")
		}), r, storage.PutObjectOptions{Size: 9, ContentType: "image/png"}).
			Return(storage.ObjectInfo{}, nil)
		mStore.On("PresignGet", ctx, mock.Anything, time.Hour).Return("https://signed", nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(doc *model.Document) bool {
			last := doc.Content[len(doc.Content)-1]
			return len(doc.Content) == 3 && last.Page == 4 && last.ImageURL == "https://signed"
		})).Return(&model.Document{ID: "doc-1"}, nil)

		_, err := svc.AddPage(ctx, "doc-1", r, "image/png", 9)
		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
		mStore.AssertExpectations(t)
	})

	t.Run("validation - nil reader", func(t *testing.T) {
		svc := NewDocumentService(nil, new(repoMocks.MockDocumentRepository), time.Hour)
		_, err := svc.AddPage(ctx, "doc-1", nil, "image/png", 0)
		assert.ErrorIs(t, err, ErrReaderNil)
	})

	t.Run("repository error with successful rollback", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		svc := NewDocumentService(mStore, mRepo, time.Hour)

		r := strings.NewReader("png bytes")
		mRepo.On("FindByID", ctx, "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		mStore.On("Put", ctx, mock.Anything, r, mock.Anything).Return(storage.ObjectInfo{}, nil)
		mStore.On("PresignGet", ctx, mock.Anything, time.Hour).Return("https://signed", nil)
		mRepo.On("Update", ctx, mock.Anything).Return(nil, errors.New("db fail"))
		mStore.On("Delete", ctx, mock.Anything).Return(nil)

		_, err := svc.AddPage(ctx, "doc-1", r, "image/png", 9)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "db save failed: db fail")
		mStore.AssertExpectations(t)
	})

	t.Run("repository error with failed rollback", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		svc := NewDocumentService(mStore, mRepo, time.Hour)

		r := strings.NewReader("png bytes")
		mRepo.On("FindByID", ctx, "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		mStore.On("Put", ctx, mock.Anything, r, mock.Anything).Return(storage.ObjectInfo{}, nil)
		mStore.On("PresignGet", ctx, mock.Anything, time.Hour).Return("https://signed", nil)
		mRepo.On("Update", ctx, mock.Anything).Return(nil, errors.New("db fail"))
		mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))

		_, err := svc.AddPage(ctx, "doc-1", r, "image/png", 9)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rollback delete failed: delete fail")
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path deletes rasters then row",
			id:   "valid-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{
					ID: "valid-id",
					Content: []model.DocumentPage{
						{Page: 1, ImageKey: "pages/valid-id/a.png"},
						{Page: 2, ImageKey: "pages/valid-id/b.png"},
					},
				}, nil)
				mStore.On("Delete", ctx, "pages/valid-id/a.png").Return(nil)
				mStore.On("Delete", ctx, "pages/valid-id/b.png").Return(nil)
				mRepo.On("Delete", ctx, "valid-id").Return(nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "storage delete error keeps row",
			id:   "storage-fail-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "storage-fail-id").Return(&model.Document{
					ID:      "storage-fail-id",
					Content: []model.DocumentPage{{Page: 1, ImageKey: "pages/x/a.png"}},
				}, nil)
				mStore.On("Delete", ctx, "pages/x/a.png").Return(errors.New("storage fail"))
			},
			wantErrMsg: "delete page 1 raster: storage fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(mStore, mRepo, time.Hour)

			tt.setupMocks(mStore, mRepo)

			err := svc.Delete(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}
