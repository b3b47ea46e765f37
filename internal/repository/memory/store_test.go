package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"docshare/internal/model"
	"docshare/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(id, owner string, at time.Time) *model.Document {
	return &model.Document{
		ID:               id,
		OwnerID:          owner,
		FileName:         id + ".pdf",
		StorageReference: "documents/" + id + ".pdf",
		CreatedAt:        at,
	}
}

func TestDocumentStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	docs := NewStore().Documents()

	now := time.Now().UTC()
	created, err := docs.Create(ctx, newDoc("d1", "u1", now))
	require.NoError(t, err)
	assert.Equal(t, "d1", created.ID)
	assert.Empty(t, created.SharedWith)
	assert.Empty(t, created.ShareableLink)

	_, err = docs.Create(ctx, newDoc("d1", "u1", now))
	assert.Error(t, err)

	got, err := docs.FindByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.OwnerID)

	_, err = docs.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDocumentStore_ListByOwner_NewestFirst(t *testing.T) {
	ctx := context.Background()
	docs := NewStore().Documents()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _ = docs.Create(ctx, newDoc("old", "u1", base))
	_, _ = docs.Create(ctx, newDoc("new", "u1", base.Add(time.Hour)))
	_, _ = docs.Create(ctx, newDoc("same-time-later", "u1", base.Add(time.Hour)))
	_, _ = docs.Create(ctx, newDoc("other", "u2", base.Add(2*time.Hour)))

	items, err := docs.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "same-time-later", items[0].ID)
	assert.Equal(t, "new", items[1].ID)
	assert.Equal(t, "old", items[2].ID)

	none, err := docs.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDocumentStore_AppendRecipientsAndSetLink(t *testing.T) {
	ctx := context.Background()
	docs := NewStore().Documents()
	_, _ = docs.Create(ctx, newDoc("d1", "u1", time.Now()))

	first, err := docs.AppendRecipientsAndSetLink(ctx, "d1", []string{"a", "b"}, "link-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first.SharedWith)
	assert.Equal(t, "link-1", first.ShareableLink)

	second, err := docs.AppendRecipientsAndSetLink(ctx, "d1", []string{"b", "c"}, "link-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, second.SharedWith)
	assert.Equal(t, "link-2", second.ShareableLink)
	assert.Equal(t, "u1", second.OwnerID)

	_, err = docs.AppendRecipientsAndSetLink(ctx, "missing", []string{"a"}, "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDocumentStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	docs := NewStore().Documents()
	_, _ = docs.Create(ctx, newDoc("d1", "u1", time.Now()))
	got, _ := docs.AppendRecipientsAndSetLink(ctx, "d1", []string{"a"}, "l")

	got.SharedWith[0] = "mutated"
	got.OwnerID = "mutated"

	again, err := docs.FindByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.SharedWith)
	assert.Equal(t, "u1", again.OwnerID)
}

func TestDocumentStore_ConcurrentAppendsLoseNothing(t *testing.T) {
	ctx := context.Background()
	docs := NewStore().Documents()
	_, _ = docs.Create(ctx, newDoc("d1", "u1", time.Now()))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := docs.AppendRecipientsAndSetLink(ctx, "d1", []string{fmt.Sprintf("r%d@example.com", i)}, fmt.Sprintf("link-%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := docs.FindByID(ctx, "d1")
	require.NoError(t, err)
	assert.Len(t, got.SharedWith, 50)
}

func TestCommentStore_NewestFirst(t *testing.T) {
	ctx := context.Background()
	comments := NewStore().Comments()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := comments.Create(ctx, &model.Comment{
			ID:         fmt.Sprintf("c%d", i),
			DocumentID: "d1",
			Author:     "a@example.com",
			Text:       fmt.Sprintf("comment %d", i),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, _ = comments.Create(ctx, &model.Comment{ID: "x", DocumentID: "d2", Text: "elsewhere", CreatedAt: base})

	items, err := comments.ListByDocument(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "c2", items[0].ID)
	assert.Equal(t, "c0", items[2].ID)

	empty, err := comments.ListByDocument(ctx, "none")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
