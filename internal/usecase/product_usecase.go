package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/Inu41123/api-almacen/internal/domain"
	"github.com/Inu41123/api-almacen/pkg/e"
	"github.com/Inu41123/api-almacen/pkg/logger"
	"github.com/google/uuid"
)

// ProductUseCase implements the product CRUD flows: each request runs a single
// sequential chain (media operation first, then persistence) so that a record
// never exists without its uploaded image.
type ProductUseCase struct {
	productRepo ProductRepository
	media       MediaInfra
	cacheRepo   CacheRepository
	events      EventPublisher // nil when event publishing is disabled
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	media MediaInfra,
	cacheRepo CacheRepository,
	events EventPublisher,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		media:       media,
		cacheRepo:   cacheRepo,
		events:      events,
		logger:      logger,
	}
}

// ListProducts returns all products, served from the cache when possible.
func (p *ProductUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductUseCase.ListProducts"

	cached, err := p.cacheRepo.GetProductList(ctx)
	if err != nil {
		p.logger.Warnf("product list cache read failed: %v", e.Wrap(op, err))
	} else if cached != nil {
		return cached, nil
	}

	products, err := p.productRepo.FindAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Background cache fill, detached from the request lifetime.
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProductList(bgCtx, products); err != nil {
			p.logger.Warnf("failed to cache product list in background: %v", e.Wrap(op, err))
		}
	}()

	return products, nil
}

// CreateProduct uploads the image, then inserts the record. When the insert
// fails after a successful upload, the uploaded object is deleted in the
// background so the media store does not accumulate orphans.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	if err := p.validateCreate(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	uploaded, err := p.media.UploadImage(ctx, NewUploadImageReq(req.Image))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product := domain.NewProduct(req.Name, req.Description, req.Stock, req.Category, uploaded.URL, uploaded.Key)

	created, err := p.productRepo.Insert(ctx, product)
	if err != nil {
		p.logger.Warnf("insert failed after upload, cleaning up object %s: %v", uploaded.Key, e.Wrap(op, err))
		p.media.CleanupImage(uploaded.Key)
		return nil, e.Wrap(op, err)
	}

	p.invalidateListCache(ctx, op)
	p.publishChange(ctx, domain.OpProductCreated, created.ID.Hex())

	return created, nil
}

// UpdateProduct merges the provided fields over the stored record. A field
// that is present in the request overwrites the stored value even when it is
// zero or empty; absent fields are kept. When a new image is provided it is
// uploaded first, the references are swapped, and only then is the old object
// deleted (best effort), so the product never points at a missing image.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	existing, err := p.productRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	patch, err := p.buildPatch(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var newKey string
	if req.Image != nil {
		uploaded, err := p.media.UploadImage(ctx, NewUploadImageReq(*req.Image))
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		newKey = uploaded.Key
		patch.ImageURL = &uploaded.URL
		patch.MediaID = &uploaded.Key
	}

	updated, err := p.productRepo.UpdateByID(ctx, req.ID, patch)
	if err != nil {
		if newKey != "" {
			p.media.CleanupImage(newKey)
		}
		return nil, e.Wrap(op, err)
	}

	if newKey != "" && existing.MediaID != "" {
		p.media.CleanupImage(existing.MediaID)
	}

	p.invalidateListCache(ctx, op)
	p.publishChange(ctx, domain.OpProductUpdated, updated.ID.Hex())

	return updated, nil
}

// DeleteProduct removes the remote image first and only then the record, so a
// record never outlives its media. A failed media delete aborts the operation
// and leaves the record (and its still-valid image reference) in place.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	const op = "ProductUseCase.DeleteProduct"

	existing, err := p.productRepo.FindByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := p.media.DeleteImage(ctx, existing.MediaID); err != nil {
		return e.Wrap(op, e.Wrap(err.Error(), e.ErrMediaDeleteFailed))
	}

	if err := p.productRepo.DeleteByID(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	p.invalidateListCache(ctx, op)
	p.publishChange(ctx, domain.OpProductDeleted, id)

	return nil
}

func (p *ProductUseCase) validateCreate(req *CreateProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrNameRequired
	}
	if len(req.Image.Data) == 0 {
		return e.ErrFileRequired
	}

	return nil
}

// buildPatch converts present request fields into a repository patch.
func (p *ProductUseCase) buildPatch(req *UpdateProductReq) (*ProductPatch, error) {
	patch := &ProductPatch{
		Description: req.Description,
		Stock:       req.Stock,
		Category:    req.Category,
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, e.ErrNameRequired
		}
		patch.Name = req.Name
	}

	return patch, nil
}

func (p *ProductUseCase) invalidateListCache(ctx context.Context, op string) {
	if err := p.cacheRepo.InvalidateProductList(ctx); err != nil {
		p.logger.Warnf("failed to invalidate product list cache: %v", e.Wrap(op, err))
	}
}

// publishChange emits a best-effort product change event; failures are logged
// and never fail the request.
func (p *ProductUseCase) publishChange(ctx context.Context, changeOp, productID string) {
	if p.events == nil {
		return
	}

	change := domain.NewProductChange(uuid.NewString(), changeOp, productID, time.Now().UTC())
	if err := p.events.PublishChange(ctx, change); err != nil {
		p.logger.Warnf("failed to publish %s event for product %s: %v", changeOp, productID, err)
	}
}
