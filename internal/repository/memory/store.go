// Package memory is an in-process implementation of the repository interfaces.
// It backs APP_STORE=memory deployments and the service-level property tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"docshare/internal/model"
	"docshare/internal/repository"
)

type documentRow struct {
	doc model.Document
	seq uint64
}

type commentRow struct {
	comment model.Comment
	seq     uint64
}

// Store keeps documents and comments in maps guarded by a single mutex.
// It is safe for concurrent use by multiple goroutines.
type Store struct {
	mu       sync.RWMutex
	seq      uint64
	docs     map[string]*documentRow
	comments map[string][]commentRow
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		docs:     make(map[string]*documentRow),
		comments: make(map[string][]commentRow),
	}
}

// Documents returns the Store as a repository.DocumentRepository.
func (s *Store) Documents() repository.DocumentRepository { return documentStore{s} }

// Comments returns the Store as a repository.CommentRepository.
func (s *Store) Comments() repository.CommentRepository { return commentStore{s} }

type documentStore struct{ s *Store }

type commentStore struct{ s *Store }

var (
	_ repository.DocumentRepository = documentStore{}
	_ repository.CommentRepository  = commentStore{}
)

func (r documentStore) Create(_ context.Context, doc *model.Document) (*model.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.docs[doc.ID]; exists {
		return nil, fmt.Errorf("document %s already exists", doc.ID)
	}
	r.s.seq++
	stored := cloneDocument(*doc)
	stored.SharedWith = []string{}
	stored.ShareableLink = ""
	r.s.docs[doc.ID] = &documentRow{doc: stored, seq: r.s.seq}

	out := cloneDocument(stored)
	return &out, nil
}

func (r documentStore) FindByID(_ context.Context, id string) (*model.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneDocument(row.doc)
	return &out, nil
}

func (r documentStore) ListByOwner(_ context.Context, ownerID string) ([]model.Document, error) {
	r.s.mu.RLock()
	rows := make([]*documentRow, 0)
	for _, row := range r.s.docs {
		if row.doc.OwnerID == ownerID {
			rows = append(rows, row)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].doc.CreatedAt.Equal(rows[j].doc.CreatedAt) {
			return rows[i].doc.CreatedAt.After(rows[j].doc.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	items := make([]model.Document, 0, len(rows))
	for _, row := range rows {
		items = append(items, cloneDocument(row.doc))
	}
	return items, nil
}

func (r documentStore) AppendRecipientsAndSetLink(_ context.Context, id string, recipients []string, link string) (*model.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	present := make(map[string]struct{}, len(row.doc.SharedWith)+len(recipients))
	for _, rc := range row.doc.SharedWith {
		present[rc] = struct{}{}
	}
	for _, rc := range recipients {
		if _, dup := present[rc]; dup {
			continue
		}
		present[rc] = struct{}{}
		row.doc.SharedWith = append(row.doc.SharedWith, rc)
	}
	row.doc.ShareableLink = link

	out := cloneDocument(row.doc)
	return &out, nil
}

func (r commentStore) Create(_ context.Context, c *model.Comment) (*model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.seq++
	stored := *c
	r.s.comments[c.DocumentID] = append(r.s.comments[c.DocumentID], commentRow{comment: stored, seq: r.s.seq})

	out := stored
	return &out, nil
}

func (r commentStore) ListByDocument(_ context.Context, documentID string) ([]model.Comment, error) {
	r.s.mu.RLock()
	rows := append([]commentRow(nil), r.s.comments[documentID]...)
	r.s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].comment.CreatedAt.Equal(rows[j].comment.CreatedAt) {
			return rows[i].comment.CreatedAt.After(rows[j].comment.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	items := make([]model.Comment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.comment)
	}
	return items, nil
}

func cloneDocument(d model.Document) model.Document {
	out := d
	out.SharedWith = append([]string{}, d.SharedWith...)
	return out
}
