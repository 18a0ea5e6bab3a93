package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Inu41123/api-almacen/internal/domain"
	"github.com/Inu41123/api-almacen/internal/usecase"
	"github.com/Inu41123/api-almacen/pkg/e"
	"github.com/Inu41123/api-almacen/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// pngBytes is a minimal payload http.DetectContentType recognizes as image/png.
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

// --- Mock usecase ---

type mockProductUC struct {
	products  []domain.Product
	created   *domain.Product
	updated   *domain.Product
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	createCalls int
	lastCreate  *usecase.CreateProductReq
	lastUpdate  *usecase.UpdateProductReq
	lastDelete  string
}

func (m *mockProductUC) ListProducts(_ context.Context) ([]domain.Product, error) {
	return m.products, m.listErr
}

func (m *mockProductUC) CreateProduct(_ context.Context, req *usecase.CreateProductReq) (*domain.Product, error) {
	m.createCalls++
	m.lastCreate = req
	return m.created, m.createErr
}

func (m *mockProductUC) UpdateProduct(_ context.Context, req *usecase.UpdateProductReq) (*domain.Product, error) {
	m.lastUpdate = req
	return m.updated, m.updateErr
}

func (m *mockProductUC) DeleteProduct(_ context.Context, id string) error {
	m.lastDelete = id
	return m.deleteErr
}

// --- Helpers ---

func newTestRouter(uc usecase.ProductUC) *chi.Mux {
	r := chi.NewRouter()
	NewRouter(r, logger.New(io.Discard)).Init(uc)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, file []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile(imageField, "foto.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func testProduct(name string) domain.Product {
	return domain.Product{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Stock:    3,
		Category: "Herramientas",
		ImageURL: "http://minio/almacen/almacen-productos/x.png",
		MediaID:  "almacen-productos/x.png",
	}
}

// --- Tests ---

func TestListProducts_OK(t *testing.T) {
	p := testProduct("Taladro")
	router := newTestRouter(&mockProductUC{products: []domain.Product{p}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/productos", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Taladro", resp[0]["nombre"])
	assert.Equal(t, p.ID.Hex(), resp[0]["id"])
	assert.Equal(t, p.MediaID, resp[0]["public_id"])
	assert.Equal(t, p.ImageURL, resp[0]["imageUrl"])
}

func TestListProducts_StoreFailure(t *testing.T) {
	router := newTestRouter(&mockProductUC{listErr: errors.New("mongo down")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/productos", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Error en el servidor", resp["mensaje"])
}

func TestCreateProduct_Created(t *testing.T) {
	created := testProduct("Taladro")
	uc := &mockProductUC{created: &created}
	router := newTestRouter(uc)

	body, contentType := multipartBody(t, map[string]string{
		"nombre":      "Taladro",
		"descripcion": "700W",
		"stock":       "3",
		"category":    "Herramientas",
	}, pngBytes)

	req := httptest.NewRequest(http.MethodPost, "/productos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, created.ID.Hex(), resp["id"])
	assert.Equal(t, "Taladro", resp["nombre"])

	require.NotNil(t, uc.lastCreate)
	assert.Equal(t, "Taladro", uc.lastCreate.Name)
	assert.Equal(t, int64(3), uc.lastCreate.Stock)
	assert.Equal(t, "image/png", uc.lastCreate.Image.MimeType)
	assert.Equal(t, pngBytes, uc.lastCreate.Image.Data)
}

func TestCreateProduct_WithoutFile(t *testing.T) {
	uc := &mockProductUC{}
	router := newTestRouter(uc)

	body, contentType := multipartBody(t, map[string]string{"nombre": "Taladro"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/productos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, uc.createCalls, "usecase must not run without a file")

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "¡Error! No se subió ningún archivo.", resp["mensaje"])
}

func TestCreateProduct_NotMultipart(t *testing.T) {
	router := newTestRouter(&mockProductUC{})

	req := httptest.NewRequest(http.MethodPost, "/productos", bytes.NewBufferString(`{"nombre":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProduct_InvalidStock(t *testing.T) {
	uc := &mockProductUC{}
	router := newTestRouter(uc)

	body, contentType := multipartBody(t, map[string]string{"nombre": "Taladro", "stock": "muchos"}, pngBytes)

	req := httptest.NewRequest(http.MethodPost, "/productos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, uc.createCalls)
}

func TestUpdateProduct_PresentFieldsOnly(t *testing.T) {
	updated := testProduct("Taladro")
	uc := &mockProductUC{updated: &updated}
	router := newTestRouter(uc)

	// Only stock is present, with value zero; no file.
	body, contentType := multipartBody(t, map[string]string{"stock": "0"}, nil)

	req := httptest.NewRequest(http.MethodPut, "/productos/"+updated.ID.Hex(), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.lastUpdate)
	assert.Equal(t, updated.ID.Hex(), uc.lastUpdate.ID)
	require.NotNil(t, uc.lastUpdate.Stock, "present stock field must be forwarded")
	assert.Zero(t, *uc.lastUpdate.Stock)
	assert.Nil(t, uc.lastUpdate.Name, "absent fields stay nil")
	assert.Nil(t, uc.lastUpdate.Description)
	assert.Nil(t, uc.lastUpdate.Category)
	assert.Nil(t, uc.lastUpdate.Image)
}

func TestUpdateProduct_WithFile(t *testing.T) {
	updated := testProduct("Taladro")
	uc := &mockProductUC{updated: &updated}
	router := newTestRouter(uc)

	body, contentType := multipartBody(t, map[string]string{"category": "Electronics"}, pngBytes)

	req := httptest.NewRequest(http.MethodPut, "/productos/"+updated.ID.Hex(), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.lastUpdate.Image)
	assert.Equal(t, "image/png", uc.lastUpdate.Image.MimeType)
	require.NotNil(t, uc.lastUpdate.Category)
	assert.Equal(t, "Electronics", *uc.lastUpdate.Category)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	uc := &mockProductUC{updateErr: e.ErrProductNotFound}
	router := newTestRouter(uc)

	body, contentType := multipartBody(t, map[string]string{"nombre": "X"}, nil)

	req := httptest.NewRequest(http.MethodPut, "/productos/"+primitive.NewObjectID().Hex(), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Producto no encontrado", resp["mensaje"])
}

func TestDeleteProduct_OK(t *testing.T) {
	uc := &mockProductUC{}
	router := newTestRouter(uc)
	id := primitive.NewObjectID().Hex()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/productos/"+id, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, uc.lastDelete)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Producto y su imagen borrados exitosamente", resp["mensaje"])
}

func TestDeleteProduct_NotFound(t *testing.T) {
	uc := &mockProductUC{deleteErr: e.ErrProductNotFound}
	router := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/productos/"+primitive.NewObjectID().Hex(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProduct_MediaFailure(t *testing.T) {
	uc := &mockProductUC{deleteErr: e.ErrMediaDeleteFailed}
	router := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/productos/"+primitive.NewObjectID().Hex(), nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
