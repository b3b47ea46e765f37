package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"docshare/internal/model"
	"docshare/internal/repository"
	repoMocks "docshare/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccessResolver_ResolveShared(t *testing.T) {
	ctx := context.Background()
	const docID = "0f8fad5bd9cb469fa16570867728950e"
	token := strings.Repeat("ab", 8)
	link := "https://docs.example.com/view/" + docID + "-" + token
	shared := &model.Document{ID: docID, OwnerID: "user-1", SharedWith: []string{"a@example.com"}, ShareableLink: link}

	tests := []struct {
		name       string
		in         string
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name: "full link",
			in:   link,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", mock.Anything, docID).Return(shared, nil)
			},
		},
		{
			name: "bare key",
			in:   docID + "-" + token,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", mock.Anything, docID).Return(shared, nil)
			},
		},
		{
			name: "forged token",
			in:   docID + "-" + strings.Repeat("cd", 8),
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", mock.Anything, docID).Return(shared, nil)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "never shared",
			in:   docID + "-" + token,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", mock.Anything, docID).Return(&model.Document{ID: docID, OwnerID: "user-1"}, nil)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "never issued id",
			in:   "ffffffffffffffffffffffffffffffff-" + token,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", mock.Anything, "ffffffffffffffffffffffffffffffff").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:       "no delimiter",
			in:         docID,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrNotFound,
		},
		{
			name: "store failure",
			in:   link,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", mock.Anything, docID).Return(nil, errors.New("db fail"))
			},
			wantErr: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			tt.setupMocks(mRepo)
			r := NewAccessResolver(mRepo)

			doc, err := r.ResolveShared(ctx, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
			} else {
				require.NoError(t, err)
				assert.Equal(t, docID, doc.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}
