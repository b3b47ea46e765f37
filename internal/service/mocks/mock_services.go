package mocks

import (
	"context"
	"io"

	"docshare/internal/model"
	"docshare/internal/service"
	"docshare/internal/storage"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, caller model.Identity, fileName, storageReference string) (*model.Document, error) {
	args := m.Called(ctx, caller, fileName, storageReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) UploadFile(ctx context.Context, caller model.Identity, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error) {
	args := m.Called(ctx, caller, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) ListMine(ctx context.Context, caller model.Identity) ([]model.Document, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) ContentURL(ctx context.Context, doc *model.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) OpenContent(ctx context.Context, doc *model.Document) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

type MockSharingService struct {
	mock.Mock
}

func (m *MockSharingService) Share(ctx context.Context, caller model.Identity, documentID string, recipients []string) (*service.ShareResult, error) {
	args := m.Called(ctx, caller, documentID, recipients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ShareResult), args.Error(1)
}

type MockAccessResolver struct {
	mock.Mock
}

func (m *MockAccessResolver) ResolveShared(ctx context.Context, link string) (*model.Document, error) {
	args := m.Called(ctx, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, caller model.Identity, documentID, text, shareKey string) (*model.Comment, error) {
	args := m.Called(ctx, caller, documentID, text, shareKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) ListComments(ctx context.Context, caller model.Identity, documentID, shareKey string) ([]model.Comment, error) {
	args := m.Called(ctx, caller, documentID, shareKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

var (
	_ service.DocumentService = (*MockDocumentService)(nil)
	_ service.SharingService  = (*MockSharingService)(nil)
	_ service.AccessResolver  = (*MockAccessResolver)(nil)
	_ service.CommentService  = (*MockCommentService)(nil)
)
