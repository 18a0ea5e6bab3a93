package infrastructure

import (
	"testing"

	"github.com/Inu41123/api-almacen/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExtensionFromMIME(t *testing.T) {
	cases := []struct {
		mime string
		ext  string
	}{
		{"image/jpeg", "jpg"},
		{"image/jpg", "jpg"},
		{"image/png", "png"},
		{"image/webp", "webp"},
		{"image/gif", "gif"},
	}

	for _, tc := range cases {
		ext, err := GetExtensionFromMIME(tc.mime)
		require.NoError(t, err, tc.mime)
		assert.Equal(t, tc.ext, ext)
	}
}

func TestGetExtensionFromMIME_Unsupported(t *testing.T) {
	_, err := GetExtensionFromMIME("application/pdf")
	assert.ErrorIs(t, err, e.ErrUnsupportedMediaType)
}
