package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// Error taxonomy shared by every service. Transport maps these with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnavailable     = errors.New("unavailable")
	ErrUnauthenticated = errors.New("unauthenticated")
)

var (
	ErrIDRequired = fmt.Errorf("%w: id is required", ErrInvalidArgument)
	ErrReaderNil  = fmt.Errorf("%w: reader is nil", ErrInvalidArgument)
)

var now = func() time.Time { return time.Now().UTC() }

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func requireCaller(caller model.Identity) error {
	if caller.Anonymous() {
		return ErrUnauthenticated
	}
	return nil
}

// findDocument maps repository failures onto the service taxonomy.
func findDocument(ctx context.Context, repo repository.DocumentRepository, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable("load document", err)
	}
	return doc, nil
}
