package http

import (
	"net/http"

	"github.com/Inu41123/api-almacen/internal/usecase"
	"github.com/Inu41123/api-almacen/pkg/e"
	"github.com/Inu41123/api-almacen/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const (
	maxTotalRequestSize = 20 << 20
	maxMemory           = 8 << 20
	maxFileSize         = 15 << 20
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// listProducts serves GET /productos.
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.ListProducts(r.Context())
	if err != nil {
		p.logger.Errorf(err, "failed to list products")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, products)
}

// createProduct serves POST /productos. The image file is mandatory; without
// it nothing is uploaded or persisted.
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d bad create request: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	image, err := parseImage(r.MultipartForm, maxFileSize)
	if err != nil {
		p.logger.Warnf("%d bad create request: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}
	if image == nil {
		p.logger.Warnf("%d create request without %q file", http.StatusBadRequest, imageField)
		WriteError(w, e.ErrFileRequired)
		return
	}

	var stock int64
	if s := r.FormValue("stock"); s != "" {
		if stock, err = parseStock(s); err != nil {
			p.logger.Warnf("%d bad create request: %s", http.StatusBadRequest, err.Error())
			WriteError(w, err)
			return
		}
	}

	req := usecase.NewCreateProductReq(
		r.FormValue("nombre"),
		r.FormValue("descripcion"),
		stock,
		r.FormValue("category"),
		*image,
	)

	created, err := p.productUsecase.CreateProduct(r.Context(), req)
	if err != nil {
		p.logger.Errorf(err, "failed to create product")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, created)
}

// updateProduct serves PUT /productos/{id}. Only the form fields present in
// the request overwrite stored values; the image file is optional.
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)
	id := chi.URLParam(r, "id")

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d bad update request: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	image, err := parseImage(r.MultipartForm, maxFileSize)
	if err != nil {
		p.logger.Warnf("%d bad update request: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	req := &usecase.UpdateProductReq{
		ID:          id,
		Name:        formString(r.MultipartForm, "nombre"),
		Description: formString(r.MultipartForm, "descripcion"),
		Category:    formString(r.MultipartForm, "category"),
		Image:       image,
	}

	if s := formString(r.MultipartForm, "stock"); s != nil && *s != "" {
		stock, err := parseStock(*s)
		if err != nil {
			p.logger.Warnf("%d bad update request: %s", http.StatusBadRequest, err.Error())
			WriteError(w, err)
			return
		}
		req.Stock = &stock
	}

	updated, err := p.productUsecase.UpdateProduct(r.Context(), req)
	if err != nil {
		p.logError(err, "failed to update product %s", id)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, updated)
}

// deleteProduct serves DELETE /productos/{id}. The remote image is removed
// before the record; a media failure leaves the record untouched.
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := p.productUsecase.DeleteProduct(r.Context(), id); err != nil {
		p.logError(err, "failed to delete product %s", id)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]string{
		"mensaje": "Producto y su imagen borrados exitosamente",
	})
}

// logError keeps not-found noise at warn level and real failures at error level.
func (p *ProductHandler) logError(err error, format string, args ...any) {
	code, _ := ToHTTPResponse(err)
	if code == http.StatusNotFound {
		p.logger.Warnf(format+": %v", append(args, err)...)
		return
	}
	p.logger.Errorf(err, format, args...)
}
