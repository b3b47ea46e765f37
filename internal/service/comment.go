package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"

	"docshare/internal/access"
	"docshare/internal/model"
	"docshare/internal/repository"
)

// MaxCommentRunes caps a comment's length.
const MaxCommentRunes = 2000

// CommentService manages a document's comment thread.
// Callers need at least access.LinkHolder on the document to read or write it.
type CommentService interface {
	// AddComment appends a comment authored by caller. shareKey is optional proof of link possession.
	AddComment(ctx context.Context, caller model.Identity, documentID, text, shareKey string) (*model.Comment, error)

	// ListComments returns the thread newest first.
	ListComments(ctx context.Context, caller model.Identity, documentID, shareKey string) ([]model.Comment, error)
}

type commentService struct {
	docs     repository.DocumentRepository
	comments repository.CommentRepository
}

// NewCommentService constructs a new CommentService.
func NewCommentService(docs repository.DocumentRepository, comments repository.CommentRepository) CommentService {
	return &commentService{docs: docs, comments: comments}
}

func (s *commentService) authorize(ctx context.Context, caller model.Identity, documentID, shareKey string) (*model.Document, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	doc, err := findDocument(ctx, s.docs, documentID)
	if err != nil {
		return nil, err
	}
	level := access.Check(doc, access.Request{Caller: caller, ShareKey: shareKey})
	if !level.Allows(access.LinkHolder) {
		return nil, ErrForbidden
	}
	return doc, nil
}

func (s *commentService) AddComment(ctx context.Context, caller model.Identity, documentID, text, shareKey string) (_ *model.Comment, err error) {
	ctx, span := startSpan(ctx, "CommentService.AddComment", attribute.String("document.id", documentID))
	defer endSpan(span, &err)

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("comment text is required")
	}
	if utf8.RuneCountInString(text) > MaxCommentRunes {
		return nil, invalid("comment exceeds %d characters", MaxCommentRunes)
	}

	doc, err := s.authorize(ctx, caller, documentID, shareKey)
	if err != nil {
		return nil, err
	}

	c, err := s.comments.Create(ctx, &model.Comment{
		ID:         model.NewID(),
		DocumentID: doc.ID,
		Author:     caller.DisplayName(),
		Text:       text,
		CreatedAt:  now(),
	})
	if err != nil {
		return nil, unavailable("save comment", err)
	}
	return c, nil
}

func (s *commentService) ListComments(ctx context.Context, caller model.Identity, documentID, shareKey string) (_ []model.Comment, err error) {
	ctx, span := startSpan(ctx, "CommentService.ListComments", attribute.String("document.id", documentID))
	defer endSpan(span, &err)

	doc, err := s.authorize(ctx, caller, documentID, shareKey)
	if err != nil {
		return nil, err
	}
	items, err := s.comments.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, unavailable("list comments", err)
	}
	return items, nil
}
