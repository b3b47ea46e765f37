package postgres

import (
	"context"
	"database/sql"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// CommentPostgres is a PostgreSQL implementation of repository.CommentRepository.
type CommentPostgres struct {
	db *sql.DB
}

// NewCommentPostgres creates a new CommentPostgres repository.
func NewCommentPostgres(db *sql.DB) *CommentPostgres {
	return &CommentPostgres{db: db}
}

var _ repository.CommentRepository = (*CommentPostgres)(nil)

// Create inserts a comment row and returns the stored record.
func (r *CommentPostgres) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	const q = `
		INSERT INTO comments (id, document_id, author, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, document_id, author, text, created_at
	`
	var out model.Comment
	if err := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.DocumentID,
		c.Author,
		c.Text,
		c.CreatedAt,
	).Scan(
		&out.ID,
		&out.DocumentID,
		&out.Author,
		&out.Text,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByDocument returns a document's comments, newest first. Comments with
// the same timestamp come back in reverse insertion order.
func (r *CommentPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.Comment, error) {
	const q = `
		SELECT id, document_id, author, text, created_at
		FROM comments
		WHERE document_id = $1
		ORDER BY created_at DESC, seq DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID,
			&c.DocumentID,
			&c.Author,
			&c.Text,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
