package postgres

import (
	"context"
	"testing"
	"time"

	"docshare/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCommentPostgres(db)
	now := time.Now().UTC()
	c := &model.Comment{ID: "c1", DocumentID: "d1", Author: "a@example.com", Text: "page 2 typo", CreatedAt: now}

	mock.ExpectQuery("INSERT INTO comments").
		WithArgs(c.ID, c.DocumentID, c.Author, c.Text, c.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_id", "author", "text", "created_at"}).
			AddRow(c.ID, c.DocumentID, c.Author, c.Text, c.CreatedAt))

	out, err := repo.Create(context.Background(), c)

	require.NoError(t, err)
	assert.Equal(t, "page 2 typo", out.Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentPostgres_ListByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCommentPostgres(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM comments WHERE document_id = (.+) ORDER BY created_at DESC, seq DESC").
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_id", "author", "text", "created_at"}).
			AddRow("c2", "d1", "b@example.com", "second", now).
			AddRow("c1", "d1", "a@example.com", "first", now.Add(-time.Minute)))

	items, err := repo.ListByDocument(context.Background(), "d1")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c2", items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
