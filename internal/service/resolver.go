package service

import (
	"context"

	"docshare/internal/access"
	"docshare/internal/model"
	"docshare/internal/repository"
	"docshare/internal/sharelink"
)

// AccessResolver is the public read path: possession of the current share link is the credential.
type AccessResolver interface {
	// ResolveShared returns the document a share link (or bare {id}-{token} key) points at.
	// Unknown documents, never-shared documents, malformed links and rotated tokens all yield ErrNotFound.
	ResolveShared(ctx context.Context, link string) (*model.Document, error)
}

type accessResolver struct {
	repo repository.DocumentRepository
}

// NewAccessResolver constructs a new AccessResolver.
func NewAccessResolver(repo repository.DocumentRepository) AccessResolver {
	return &accessResolver{repo: repo}
}

func (r *accessResolver) ResolveShared(ctx context.Context, link string) (_ *model.Document, err error) {
	ctx, span := startSpan(ctx, "AccessResolver.ResolveShared")
	defer endSpan(span, &err)

	key, err := sharelink.Extract(link)
	if err != nil {
		return nil, ErrNotFound
	}
	doc, err := findDocument(ctx, r.repo, key.DocumentID)
	if err != nil {
		return nil, err
	}
	if !access.HoldsCurrentLink(doc, key.String()) {
		return nil, ErrNotFound
	}
	return doc, nil
}
