package storage

import (
	"errors"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"docshare/internal/config"
)

func TestNewMinIO_RequiresConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want string
	}{
		{name: "endpoint", cfg: config.MinIOConfig{}, want: "endpoint"},
		{name: "credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000"}, want: "credentials"},
		{name: "bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, want: "bucket"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(t.Context(), tt.cfg, zap.NewNop())
			assert.Nil(t, s)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestTranslate(t *testing.T) {
	missing := minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
	assert.ErrorIs(t, translate(missing), ErrObjectNotFound)

	denied := minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}
	assert.NotErrorIs(t, translate(denied), ErrObjectNotFound)

	plain := errors.New("connection reset")
	assert.Equal(t, plain, translate(plain))
	assert.NoError(t, translate(nil))
}

func TestPresignParams(t *testing.T) {
	p := presignParams(`Q3 report.pdf`)
	assert.Equal(t, "application/pdf", p.Get("response-content-type"))
	assert.Equal(t, `inline; filename="Q3 report.pdf"`, p.Get("response-content-disposition"))

	assert.Equal(t, "inline", presignParams("").Get("response-content-disposition"))
}

func TestInlineDisposition(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "token", in: "a.pdf", want: "inline; filename=a.pdf"},
		{name: "space is quoted", in: "Q3 report.pdf", want: `inline; filename="Q3 report.pdf"`},
		{name: "quote is escaped", in: `weird".pdf`, want: `inline; filename="weird\".pdf"`},
		{name: "non-ascii uses rfc 2231", in: "résumé.pdf", want: "inline; filename*=utf-8''r%C3%A9sum%C3%A9.pdf"},
		{name: "control char is encoded", in: "a\nb.pdf", want: "inline; filename*=utf-8''a%0Ab.pdf"},
		{name: "empty", in: "", want: "inline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InlineDisposition(tt.in))
		})
	}
}
