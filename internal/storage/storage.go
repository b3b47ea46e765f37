// Package storage holds the PDF binaries. The rest of the system only keeps the object key,
// which becomes a document's storage reference.
package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"time"
)

// ErrObjectNotFound is returned when a key has no object behind it.
var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions describe an upload. Size is the exact byte count, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an S3-compatible object store for document content.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get streams the object at key; callers close the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that serves the object inline as fileName.
	PresignGet(ctx context.Context, key, fileName string, expiry time.Duration) (string, error)
}

// InlineDisposition is the Content-Disposition for displaying a PDF in the
// browser under fileName. Non-ASCII names use RFC 2231 encoding.
func InlineDisposition(fileName string) string {
	if fileName == "" {
		return "inline"
	}
	if v := mime.FormatMediaType("inline", map[string]string{"filename": fileName}); v != "" {
		return v
	}
	return "inline"
}
