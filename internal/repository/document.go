package repository

import (
	"context"
	"errors"

	"docshare/internal/model"
)

// ErrNotFound is returned when the addressed record does not exist.
var ErrNotFound = errors.New("record not found")

// DocumentRepository defines data access for documents.
// Persistence operations only.
type DocumentRepository interface {
	// Create inserts a new document record.
	// The caller provides ID and CreatedAt; SharedWith and ShareableLink start empty.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByOwner returns the owner's documents, most recently created first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error)

	// AppendRecipientsAndSetLink atomically appends recipients not already present to SharedWith
	// and overwrites ShareableLink. Concurrent calls on one document never lose a recipient.
	// Returns the updated document, or ErrNotFound.
	AppendRecipientsAndSetLink(ctx context.Context, id string, recipients []string, link string) (*model.Document, error)
}

// CommentRepository defines data access for comment threads.
type CommentRepository interface {
	// Create inserts a new comment. The caller provides ID and CreatedAt.
	Create(ctx context.Context, c *model.Comment) (*model.Comment, error)

	// ListByDocument returns a document's comments, newest first.
	ListByDocument(ctx context.Context, documentID string) ([]model.Comment, error)
}
