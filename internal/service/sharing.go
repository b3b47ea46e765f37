package service

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"docshare/internal/model"
	"docshare/internal/repository"
	"docshare/internal/sharelink"
)

// MaxRecipientsPerShare caps one share call.
const MaxRecipientsPerShare = 50

// LinkMinter produces a fresh share link for a document.
type LinkMinter interface {
	Mint(documentID string) (string, sharelink.Key, error)
}

// ShareNotifier tells recipients about a share. It must not block on delivery and
// never reports failures; those are the notifier's to contain.
type ShareNotifier interface {
	NotifyShared(ctx context.Context, doc *model.Document, recipients []string, link string, sharedBy model.Identity)
}

// ShareResult is returned to the sharing owner.
type ShareResult struct {
	Link     string          `json:"link"`
	Document *model.Document `json:"-"`
}

// SharingService is the owner-exclusive write path of the sharing model.
type SharingService interface {
	// Share appends recipients to the document, rotates its share link and notifies recipients.
	// Only the owner may share; any other caller gets ErrForbidden and nothing changes.
	Share(ctx context.Context, caller model.Identity, documentID string, recipients []string) (*ShareResult, error)
}

type sharingService struct {
	repo     repository.DocumentRepository
	minter   LinkMinter
	notifier ShareNotifier
	log      *zap.Logger
}

// NewSharingService constructs a new SharingService.
func NewSharingService(repo repository.DocumentRepository, minter LinkMinter, notifier ShareNotifier, log *zap.Logger) SharingService {
	return &sharingService{
		repo:     repo,
		minter:   minter,
		notifier: notifier,
		log:      log.With(zap.String("component", "sharing")),
	}
}

// NormalizeRecipients trims and lowercases entries and drops repeats, keeping first-seen order.
func NormalizeRecipients(recipients []string) ([]string, error) {
	if len(recipients) == 0 {
		return nil, invalid("at least one recipient is required")
	}
	out := make([]string, 0, len(recipients))
	seen := make(map[string]struct{}, len(recipients))
	for _, r := range recipients {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			return nil, invalid("recipient must not be empty")
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	if len(out) > MaxRecipientsPerShare {
		return nil, invalid("at most %d recipients per share", MaxRecipientsPerShare)
	}
	return out, nil
}

func (s *sharingService) Share(ctx context.Context, caller model.Identity, documentID string, recipients []string) (_ *ShareResult, err error) {
	ctx, span := startSpan(ctx, "SharingService.Share",
		attribute.String("document.id", documentID),
		attribute.Int("recipients.requested", len(recipients)),
	)
	defer endSpan(span, &err)

	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	doc, err := findDocument(ctx, s.repo, documentID)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != caller.UserID {
		s.log.Warn("share_denied",
			zap.String("document_id", documentID),
			zap.String("caller_id", caller.UserID),
		)
		return nil, ErrForbidden
	}

	normalized, err := NormalizeRecipients(recipients)
	if err != nil {
		return nil, err
	}

	link, _, err := s.minter.Mint(doc.ID)
	if err != nil {
		return nil, unavailable("mint link", err)
	}

	updated, err := s.repo.AppendRecipientsAndSetLink(ctx, doc.ID, normalized, link)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable("save share", err)
	}

	s.notifier.NotifyShared(ctx, updated, normalized, link, caller)

	s.log.Info("document_shared",
		zap.String("document_id", doc.ID),
		zap.Int("recipients", len(normalized)),
		zap.Int("shared_with_total", len(updated.SharedWith)),
	)
	return &ShareResult{Link: link, Document: updated}, nil
}
