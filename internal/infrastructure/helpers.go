package infrastructure

import "github.com/Inu41123/api-almacen/pkg/e"

// GetExtensionFromMIME maps an image MIME type to a file extension.
// Supports jpeg, jpg, png, webp and gif; returns e.ErrUnsupportedMediaType otherwise.
func GetExtensionFromMIME(mime string) (string, error) {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	case "image/gif":
		return "gif", nil
	default:
		return "bin", e.ErrUnsupportedMediaType
	}
}
