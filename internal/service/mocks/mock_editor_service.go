package mocks

import (
	"context"

	"docfields/internal/model"
	"docfields/internal/session"
	"docfields/internal/surface"
	"github.com/stretchr/testify/mock"
)

type MockEditorService struct {
	mock.Mock
}

func (m *MockEditorService) Open(ctx context.Context, documentID string) (session.State, error) {
	args := m.Called(ctx, documentID)
	return args.Get(0).(session.State), args.Error(1)
}

func (m *MockEditorService) State(sessionID string) (session.State, error) {
	args := m.Called(sessionID)
	return args.Get(0).(session.State), args.Error(1)
}

func (m *MockEditorService) Close(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

func (m *MockEditorService) Drop(sessionID string, p surface.DropPayload) (*model.PlacedField, error) {
	args := m.Called(sessionID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlacedField), args.Error(1)
}

func (m *MockEditorService) Move(sessionID, fieldID string, x, y float64) (*model.PlacedField, error) {
	args := m.Called(sessionID, fieldID, x, y)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlacedField), args.Error(1)
}

func (m *MockEditorService) SetText(sessionID, fieldID, text string) (*model.PlacedField, error) {
	args := m.Called(sessionID, fieldID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlacedField), args.Error(1)
}

func (m *MockEditorService) SetChecked(sessionID, fieldID string, checked bool) (*model.PlacedField, error) {
	args := m.Called(sessionID, fieldID, checked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlacedField), args.Error(1)
}

func (m *MockEditorService) RemoveField(sessionID, fieldID string) error {
	args := m.Called(sessionID, fieldID)
	return args.Error(0)
}

func (m *MockEditorService) Zoom(sessionID, direction string) (float64, error) {
	args := m.Called(sessionID, direction)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockEditorService) Save(ctx context.Context, sessionID string) (*model.Document, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockEditorService) PageSVG(sessionID string, page int) (string, error) {
	args := m.Called(sessionID, page)
	return args.String(0), args.Error(1)
}

func (m *MockEditorService) RenderPreview(ctx context.Context, documentID string, page int) (string, error) {
	args := m.Called(ctx, documentID, page)
	return args.String(0), args.Error(1)
}
