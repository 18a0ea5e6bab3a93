package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/Inu41123/api-almacen/internal/usecase"
	"github.com/Inu41123/api-almacen/pkg/e"
	"github.com/jimlawless/whereami"
)

// imageField is the multipart field name carrying the product image.
const imageField = "imagen"

type ErrorResponse struct {
	Mensaje string `json:"mensaje"`
}

func NewErrorResponse(mensaje string) *ErrorResponse {
	return &ErrorResponse{Mensaje: mensaje}
}

// ToHTTPResponse maps internal errors to a status code and a client-facing
// message. Internal detail never reaches the client.
func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrFileRequired):
		return http.StatusBadRequest, "¡Error! No se subió ningún archivo."
	case errors.Is(err, e.ErrNameRequired):
		return http.StatusBadRequest, "El nombre del producto es obligatorio"
	case errors.Is(err, e.ErrInvalidStock):
		return http.StatusBadRequest, "Stock inválido"
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, "Se esperaba multipart/form-data"
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusBadRequest, "El archivo es demasiado grande"
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusBadRequest, "Tipo de archivo no soportado"
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, "Producto no encontrado"
	default:
		return http.StatusInternalServerError, "Error en el servidor"
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

// parseImage reads the image file from the form. Returns nil when the field is
// absent, which the caller decides how to treat.
func parseImage(form *multipart.Form, maxFileSize int64) (*usecase.ProductImage, error) {
	files := form.File[imageField]
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	data, mimeType, err := readFile(fh, maxFileSize)
	if err != nil {
		return nil, err
	}

	return usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename), nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}

func parseStock(s string) (int64, error) {
	stock, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || stock < 0 {
		return 0, e.ErrInvalidStock
	}
	return stock, nil
}

// formString returns a pointer to the first value of the field when it is
// present in the form, nil otherwise. Presence is what decides whether an
// update overwrites the stored value.
func formString(form *multipart.Form, field string) *string {
	vals, ok := form.Value[field]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}
