// Package access decides what a caller may do with a document.
package access

import (
	"docshare/internal/model"
	"docshare/internal/sharelink"
)

// Level is a caller's capability on one document. Higher levels include lower ones.
type Level int

const (
	None Level = iota
	// LinkHolder presents the document's current share key.
	LinkHolder
	// Recipient is listed in the document's SharedWith.
	Recipient
	// Owner uploaded the document.
	Owner
)

func (l Level) String() string {
	switch l {
	case LinkHolder:
		return "link_holder"
	case Recipient:
		return "recipient"
	case Owner:
		return "owner"
	default:
		return "none"
	}
}

// Allows reports whether l satisfies required.
func (l Level) Allows(required Level) bool {
	return l >= required
}

// Request carries everything a caller may present for one document.
type Request struct {
	Caller model.Identity
	// ShareKey is a {documentID}-{token} key or a full share link; optional.
	ShareKey string
}

// Check returns the highest level the request grants on doc.
func Check(doc *model.Document, req Request) Level {
	if doc == nil {
		return None
	}
	if !req.Caller.Anonymous() && req.Caller.UserID == doc.OwnerID {
		return Owner
	}
	if req.Caller.Email != "" && doc.HasRecipient(req.Caller.Email) {
		return Recipient
	}
	if req.ShareKey != "" && HoldsCurrentLink(doc, req.ShareKey) {
		return LinkHolder
	}
	return None
}

// HoldsCurrentLink reports whether linkOrKey carries the token of doc's current share link.
// Links from before the last re-share no longer match.
func HoldsCurrentLink(doc *model.Document, linkOrKey string) bool {
	if doc == nil || doc.ShareableLink == "" {
		return false
	}
	presented, err := sharelink.Extract(linkOrKey)
	if err != nil {
		return false
	}
	current, err := sharelink.Extract(doc.ShareableLink)
	if err != nil {
		return false
	}
	return current.DocumentID == doc.ID && current.Matches(presented)
}
