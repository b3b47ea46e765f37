package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded PDF and its sharing state.
type Document struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	// FileName is the display name supplied at upload time.
	FileName string `json:"file_name"`
	// StorageReference locates the binary content: an object key or an absolute URL.
	StorageReference string `json:"storage_reference"`
	// SharedWith is append-only and ordered by first share.
	SharedWith    []string  `json:"shared_with"`
	ShareableLink string    `json:"shareable_link,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Shared reports whether the document has at least one recipient.
func (d *Document) Shared() bool {
	return len(d.SharedWith) > 0
}

// HasRecipient reports whether recipient (case-insensitive) is in SharedWith.
func (d *Document) HasRecipient(recipient string) bool {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return false
	}
	for _, r := range d.SharedWith {
		if strings.EqualFold(r, recipient) {
			return true
		}
	}
	return false
}

// NewID returns a fresh record identifier: 32 lowercase hex characters.
// IDs never contain '-', which share keys use as their delimiter.
func NewID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")
}
