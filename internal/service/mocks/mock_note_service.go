package mocks

import (
	"context"

	"campusnotes/internal/model"
	"campusnotes/internal/repository"
	"campusnotes/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) Upload(ctx context.Context, ownerID string, in service.UploadInput) (*model.Note, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) Dashboard(ctx context.Context, ownerID string) ([]model.Note, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteService) Browse(ctx context.Context, search, subject string) (*service.BrowseResult, error) {
	args := m.Called(ctx, search, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BrowseResult), args.Error(1)
}

func (m *MockNoteService) Download(ctx context.Context, noteID string) (string, error) {
	args := m.Called(ctx, noteID)
	return args.String(0), args.Error(1)
}

func (m *MockNoteService) Delete(ctx context.Context, noteID, requesterID string) error {
	args := m.Called(ctx, noteID, requesterID)
	return args.Error(0)
}

func (m *MockNoteService) Profile(ctx context.Context, ownerID string) (repository.OwnerStats, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(repository.OwnerStats), args.Error(1)
}
