package sharelink

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docID = "0f8fad5bd9cb469fa16570867728950e"

func TestNewMinter(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "valid", baseURL: "https://docs.example.com"},
		{name: "trailing slash", baseURL: "https://docs.example.com/"},
		{name: "no scheme", baseURL: "docs.example.com", wantErr: true},
		{name: "empty", baseURL: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMinter(tt.baseURL, 0)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBaseURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultTokenBytes, m.tokenBytes)
		})
	}
}

func TestMinter_Mint(t *testing.T) {
	m, err := NewMinter("https://docs.example.com/", 8)
	require.NoError(t, err)

	link, key, err := m.Mint(docID)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^https://docs\.example\.com/view/`+docID+`-[0-9a-f]{16}$`), link)
	assert.Equal(t, docID, key.DocumentID)
	assert.Len(t, key.Token, 16)
	assert.Equal(t, link, m.Link(key))
}

func TestMinter_TokensAreUnique(t *testing.T) {
	m, err := NewMinter("https://docs.example.com", MinTokenBytes)
	require.NoError(t, err)

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		_, key, err := m.Mint(docID)
		require.NoError(t, err)
		_, dup := seen[key.Token]
		require.False(t, dup, "token collision after %d mints", i)
		seen[key.Token] = struct{}{}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestMinter_RandomFailure(t *testing.T) {
	m, err := NewMinter("https://docs.example.com", 0)
	require.NoError(t, err)
	m.rand = failingReader{}

	_, _, err = m.Mint(docID)
	assert.Error(t, err)
}

func TestParseKey(t *testing.T) {
	token := strings.Repeat("ab", 8)

	tests := []struct {
		name    string
		in      string
		want    Key
		wantErr bool
	}{
		{name: "valid", in: docID + "-" + token, want: Key{DocumentID: docID, Token: token}},
		{name: "splits on first delimiter", in: docID + "-" + token + "-extra", wantErr: true},
		{name: "no delimiter", in: docID, wantErr: true},
		{name: "empty id", in: "-" + token, wantErr: true},
		{name: "short token", in: docID + "-abcd", wantErr: true},
		{name: "uppercase token", in: docID + "-" + strings.ToUpper(token), wantErr: true},
		{name: "id with symbols", in: "ab_cd-" + token, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestExtract(t *testing.T) {
	token := strings.Repeat("0f", 8)
	want := Key{DocumentID: docID, Token: token}

	for _, in := range []string{
		"https://docs.example.com/view/" + docID + "-" + token,
		"https://docs.example.com/app/view/" + docID + "-" + token + "?ref=mail",
		"/api/shared/" + docID + "-" + token,
		"  " + docID + "-" + token + "  ",
	} {
		got, err := Extract(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestKey_Matches(t *testing.T) {
	k := Key{DocumentID: docID, Token: strings.Repeat("a", 16)}

	assert.True(t, k.Matches(Key{DocumentID: docID, Token: strings.Repeat("a", 16)}))
	assert.False(t, k.Matches(Key{DocumentID: docID, Token: strings.Repeat("b", 16)}))
	assert.False(t, k.Matches(Key{DocumentID: "other", Token: strings.Repeat("a", 16)}))
	assert.False(t, Key{DocumentID: docID}.Matches(Key{DocumentID: docID}))
}
