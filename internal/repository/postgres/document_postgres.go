package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// recipients are aggregated as a JSON array so the driver never has to decode a text[].
const selectDocument = `
	SELECT d.id, d.owner_id, d.file_name, d.storage_reference, COALESCE(d.shareable_link, ''), d.created_at,
	       COALESCE((SELECT json_agg(r.recipient ORDER BY r.id) FROM document_recipients r WHERE r.document_id = d.id), '[]'::json)
	FROM documents d
`

type rowScanner interface {
	Scan(dest ...any) error
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var (
		d          model.Document
		recipients []byte
	)
	if err := row.Scan(
		&d.ID,
		&d.OwnerID,
		&d.FileName,
		&d.StorageReference,
		&d.ShareableLink,
		&d.CreatedAt,
		&recipients,
	); err != nil {
		return nil, err
	}
	d.SharedWith = []string{}
	if len(recipients) > 0 {
		if err := json.Unmarshal(recipients, &d.SharedWith); err != nil {
			return nil, fmt.Errorf("decode recipients: %w", err)
		}
	}
	return &d, nil
}

func findByID(ctx context.Context, q queryRower, id string) (*model.Document, error) {
	doc, err := scanDocument(q.QueryRowContext(ctx, selectDocument+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, owner_id, file_name, storage_reference, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, owner_id, file_name, storage_reference, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.OwnerID,
		doc.FileName,
		doc.StorageReference,
		doc.CreatedAt,
	)
	out := model.Document{SharedWith: []string{}}
	if err := row.Scan(
		&out.ID,
		&out.OwnerID,
		&out.FileName,
		&out.StorageReference,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document and its recipients.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	return findByID(ctx, r.db, id)
}

// ListByOwner returns the owner's documents ordered by creation time, newest first.
func (r *DocumentPostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error) {
	rows, err := r.db.QueryContext(ctx, selectDocument+`
		WHERE d.owner_id = $1
		ORDER BY d.created_at DESC, d.id DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// AppendRecipientsAndSetLink overwrites the link and appends new recipients in one transaction.
// The UPDATE takes the document's row lock, so concurrent shares of one document serialize;
// recipient rows are insert-only and therefore never lost.
func (r *DocumentPostgres) AppendRecipientsAndSetLink(ctx context.Context, id string, recipients []string, link string) (*model.Document, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE documents SET shareable_link = $2 WHERE id = $1`, id, link)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, repository.ErrNotFound
	}

	if len(recipients) > 0 {
		ins := sq.Insert("document_recipients").
			Columns("document_id", "recipient").
			Suffix("ON CONFLICT (document_id, recipient) DO NOTHING").
			PlaceholderFormat(sq.Dollar)
		for _, rc := range recipients {
			ins = ins.Values(id, rc)
		}
		q, args, err := ins.ToSql()
		if err != nil {
			return nil, fmt.Errorf("build recipients insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return nil, err
		}
	}

	doc, err := findByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return doc, nil
}
