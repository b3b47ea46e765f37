// Package sharelink mints and parses capability links of the form
// {baseURL}/view/{documentID}-{token}.
package sharelink

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

const (
	// Delimiter separates the document ID from the token. Document IDs never contain it.
	Delimiter = "-"
	// ViewPath is the client route that share links point at.
	ViewPath = "/view/"

	// MinTokenBytes is the least entropy a token may carry (16 hex characters).
	MinTokenBytes = 8
	// DefaultTokenBytes is the entropy of minted tokens.
	DefaultTokenBytes = 16
)

var (
	ErrMalformedKey = errors.New("malformed share key")
	ErrBaseURL      = errors.New("invalid base url")
)

// Key is the typed form of the last path segment of a share link.
type Key struct {
	DocumentID string
	Token      string
}

// String renders the key as {documentID}-{token}.
func (k Key) String() string {
	return k.DocumentID + Delimiter + k.Token
}

// Matches reports whether other carries the same document and token.
// The token comparison is constant time.
func (k Key) Matches(other Key) bool {
	if k.DocumentID != other.DocumentID || k.Token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(k.Token), []byte(other.Token)) == 1
}

// ParseKey splits s on the first delimiter and validates both halves.
// The ID must be non-empty lowercase alphanumerics and the token lowercase hex of at
// least 2*MinTokenBytes characters.
func ParseKey(s string) (Key, error) {
	id, token, ok := strings.Cut(s, Delimiter)
	if !ok {
		return Key{DocumentID: s}, fmt.Errorf("%w: missing delimiter", ErrMalformedKey)
	}
	if id == "" || !isLowerAlnum(id) {
		return Key{}, fmt.Errorf("%w: invalid document id", ErrMalformedKey)
	}
	if len(token) < 2*MinTokenBytes || !isLowerHex(token) {
		return Key{DocumentID: id}, fmt.Errorf("%w: invalid token", ErrMalformedKey)
	}
	return Key{DocumentID: id, Token: token}, nil
}

// Extract accepts either a full share link or a bare {documentID}-{token} key.
func Extract(linkOrKey string) (Key, error) {
	s := strings.TrimSpace(linkOrKey)
	if i := strings.LastIndex(s, ViewPath); i >= 0 {
		s = s[i+len(ViewPath):]
	} else if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return ParseKey(s)
}

// Minter produces fresh share links. It is safe for concurrent use.
type Minter struct {
	baseURL    string
	tokenBytes int
	rand       io.Reader
}

// NewMinter creates a Minter for links rooted at baseURL.
// tokenBytes below MinTokenBytes is raised to DefaultTokenBytes.
func NewMinter(baseURL string, tokenBytes int) (*Minter, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBaseURL, baseURL)
	}
	if tokenBytes < MinTokenBytes {
		tokenBytes = DefaultTokenBytes
	}
	return &Minter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokenBytes: tokenBytes,
		rand:       rand.Reader,
	}, nil
}

// Mint generates a new random token for documentID and returns the composed link.
// Every call yields an unrelated token, even for the same document.
func (m *Minter) Mint(documentID string) (string, Key, error) {
	buf := make([]byte, m.tokenBytes)
	if _, err := io.ReadFull(m.rand, buf); err != nil {
		return "", Key{}, fmt.Errorf("read random token: %w", err)
	}
	k := Key{DocumentID: documentID, Token: hex.EncodeToString(buf)}
	return m.Link(k), k, nil
}

// Link composes the externally advertised URL for k.
func (m *Minter) Link(k Key) string {
	return m.baseURL + ViewPath + k.String()
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func isLowerAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}
