package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"docshare/internal/model"
	"docshare/internal/repository"
	"docshare/internal/storage"
)

const pdfContentType = "application/pdf"

// DocumentOptions bound uploads and presigned URLs.
type DocumentOptions struct {
	MaxUploadBytes int64
	PresignTTL     time.Duration
}

// DocumentService defines the use cases for a caller's own documents.
type DocumentService interface {
	// Upload records a document whose content already lives at storageReference.
	Upload(ctx context.Context, caller model.Identity, fileName, storageReference string) (*model.Document, error)

	// UploadFile streams a PDF to object storage, then records it with the object key as its reference.
	// The object is removed again if the record cannot be saved.
	UploadFile(ctx context.Context, caller model.Identity, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error)

	// ListMine returns the caller's documents, most recently created first.
	ListMine(ctx context.Context, caller model.Identity) ([]model.Document, error)

	// ContentURL returns a URL the viewer can load the PDF from.
	ContentURL(ctx context.Context, doc *model.Document) (string, error)

	// OpenContent streams a stored PDF. External references cannot be opened.
	OpenContent(ctx context.Context, doc *model.Document) (io.ReadCloser, storage.ObjectInfo, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
	opts  DocumentOptions
}

// NewDocumentService constructs a new DocumentService. store may be nil when only
// external references are used.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, opts DocumentOptions) DocumentService {
	if opts.PresignTTL <= 0 {
		opts.PresignTTL = 15 * time.Minute
	}
	return &documentService{store: store, repo: repo, opts: opts}
}

// IsExternalReference reports whether ref is an absolute http(s) URL rather than an object key.
func IsExternalReference(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isPDF(filename, contentType string) bool {
	if ct, _, _ := strings.Cut(contentType, ";"); strings.EqualFold(strings.TrimSpace(ct), pdfContentType) {
		return true
	}
	return strings.EqualFold(path.Ext(filename), ".pdf")
}

func (s *documentService) Upload(ctx context.Context, caller model.Identity, fileName, storageReference string) (_ *model.Document, err error) {
	ctx, span := startSpan(ctx, "DocumentService.Upload")
	defer endSpan(span, &err)

	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	storageReference = strings.TrimSpace(storageReference)
	if storageReference == "" {
		return nil, invalid("storage reference is required")
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		fileName = path.Base(storageReference)
	}

	return s.create(ctx, &model.Document{
		ID:               model.NewID(),
		OwnerID:          caller.UserID,
		FileName:         fileName,
		StorageReference: storageReference,
		CreatedAt:        now(),
	})
}

func (s *documentService) UploadFile(ctx context.Context, caller model.Identity, r io.Reader, originalFilename, contentType string, size int64) (_ *model.Document, err error) {
	ctx, span := startSpan(ctx, "DocumentService.UploadFile", attribute.Int64("file.size", size))
	defer endSpan(span, &err)

	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	if !isPDF(originalFilename, contentType) {
		return nil, invalid("only PDF files are accepted")
	}
	if s.opts.MaxUploadBytes > 0 && size > s.opts.MaxUploadBytes {
		return nil, invalid("file exceeds %d bytes", s.opts.MaxUploadBytes)
	}
	if s.store == nil {
		return nil, unavailable("upload to storage", errors.New("object storage is not configured"))
	}

	id := model.NewID()
	key := path.Join("documents", id+".pdf")

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: pdfContentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
			"owner-id":          caller.UserID,
		},
	})
	if err != nil {
		return nil, unavailable("upload to storage", err)
	}

	doc := &model.Document{
		ID:               id,
		OwnerID:          caller.UserID,
		FileName:         originalFilename,
		StorageReference: objInfo.Key,
		CreatedAt:        now(),
	}
	stored, err := s.create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("%w; rollback delete failed: %v", err, delErr)
		}
		return nil, err
	}
	return stored, nil
}

func (s *documentService) create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, unavailable("db save failed", err)
	}
	return stored, nil
}

func (s *documentService) ListMine(ctx context.Context, caller model.Identity) (_ []model.Document, err error) {
	ctx, span := startSpan(ctx, "DocumentService.ListMine")
	defer endSpan(span, &err)

	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, unavailable("list documents", err)
	}
	return items, nil
}

func (s *documentService) ContentURL(ctx context.Context, doc *model.Document) (string, error) {
	if IsExternalReference(doc.StorageReference) {
		return doc.StorageReference, nil
	}
	if s.store == nil {
		return "", unavailable("presign", errors.New("object storage is not configured"))
	}
	u, err := s.store.PresignGet(ctx, doc.StorageReference, doc.FileName, s.opts.PresignTTL)
	if err != nil {
		return "", unavailable("presign", err)
	}
	return u, nil
}

func (s *documentService) OpenContent(ctx context.Context, doc *model.Document) (io.ReadCloser, storage.ObjectInfo, error) {
	if IsExternalReference(doc.StorageReference) {
		return nil, storage.ObjectInfo{}, invalid("document content is hosted externally")
	}
	if s.store == nil {
		return nil, storage.ObjectInfo{}, unavailable("open content", errors.New("object storage is not configured"))
	}
	rc, info, err := s.store.Get(ctx, doc.StorageReference)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, unavailable("open content", err)
	}
	return rc, info, nil
}
