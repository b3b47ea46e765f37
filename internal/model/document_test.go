package model

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{32}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.Regexp(t, re, id)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestDocument_HasRecipient(t *testing.T) {
	d := &Document{SharedWith: []string{"alice@example.com", "Bob@Example.com"}}

	assert.True(t, d.Shared())
	assert.True(t, d.HasRecipient("alice@example.com"))
	assert.True(t, d.HasRecipient(" bob@example.com "))
	assert.False(t, d.HasRecipient("carol@example.com"))
	assert.False(t, d.HasRecipient(""))
	assert.False(t, (&Document{}).Shared())
}

func TestIdentity(t *testing.T) {
	assert.True(t, Identity{}.Anonymous())
	assert.Equal(t, "a@b.c", Identity{UserID: "u1", Email: "a@b.c"}.DisplayName())
	assert.Equal(t, "u1", Identity{UserID: "u1"}.DisplayName())
}
