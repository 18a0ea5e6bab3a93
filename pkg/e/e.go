package e

import "fmt"

var (
	// 400 Bad Request
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrFileRequired         = fmt.Errorf("image file is required")
	ErrNameRequired         = fmt.Errorf("product name is required")
	ErrInvalidStock         = fmt.Errorf("invalid stock value")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 500 Internal Server Error
	ErrUploadFailed        = fmt.Errorf("image upload failed")
	ErrMediaDeleteFailed   = fmt.Errorf("image delete failed")
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap wraps an error with an additional message.
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
