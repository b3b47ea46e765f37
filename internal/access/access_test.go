package access

import (
	"strings"
	"testing"

	"docshare/internal/model"

	"github.com/stretchr/testify/assert"
)

const docID = "0f8fad5bd9cb469fa16570867728950e"

var (
	token     = strings.Repeat("ab", 8)
	staleTok  = strings.Repeat("cd", 8)
	sharedDoc = &model.Document{
		ID:            docID,
		OwnerID:       "owner-1",
		SharedWith:    []string{"friend@example.com"},
		ShareableLink: "https://docs.example.com/view/" + docID + "-" + token,
	}
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		doc  *model.Document
		req  Request
		want Level
	}{
		{
			name: "owner",
			doc:  sharedDoc,
			req:  Request{Caller: model.Identity{UserID: "owner-1"}},
			want: Owner,
		},
		{
			name: "recipient by email, case-insensitive",
			doc:  sharedDoc,
			req:  Request{Caller: model.Identity{UserID: "u2", Email: "Friend@Example.com"}},
			want: Recipient,
		},
		{
			name: "link holder with bare key",
			doc:  sharedDoc,
			req:  Request{Caller: model.Identity{UserID: "u3"}, ShareKey: docID + "-" + token},
			want: LinkHolder,
		},
		{
			name: "link holder with full link",
			doc:  sharedDoc,
			req:  Request{Caller: model.Identity{UserID: "u3"}, ShareKey: sharedDoc.ShareableLink},
			want: LinkHolder,
		},
		{
			name: "stale token",
			doc:  sharedDoc,
			req:  Request{Caller: model.Identity{UserID: "u3"}, ShareKey: docID + "-" + staleTok},
			want: None,
		},
		{
			name: "key for another document",
			doc:  sharedDoc,
			req:  Request{Caller: model.Identity{UserID: "u3"}, ShareKey: "aaaa-" + token},
			want: None,
		},
		{
			name: "never shared",
			doc:  &model.Document{ID: docID, OwnerID: "owner-1"},
			req:  Request{Caller: model.Identity{UserID: "u3"}, ShareKey: docID + "-" + token},
			want: None,
		},
		{
			name: "anonymous caller does not match empty owner",
			doc:  &model.Document{ID: docID},
			req:  Request{},
			want: None,
		},
		{
			name: "nil document",
			doc:  nil,
			req:  Request{Caller: model.Identity{UserID: "owner-1"}},
			want: None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.doc, tt.req))
		})
	}
}

func TestLevel_Allows(t *testing.T) {
	assert.True(t, Owner.Allows(LinkHolder))
	assert.True(t, Recipient.Allows(Recipient))
	assert.False(t, LinkHolder.Allows(Recipient))
	assert.False(t, None.Allows(LinkHolder))
	assert.Equal(t, "owner", Owner.String())
	assert.Equal(t, "none", Level(42).String())
}
