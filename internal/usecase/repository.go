package usecase

import (
	"context"

	"github.com/Inu41123/api-almacen/internal/domain"
)

type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateByID(ctx context.Context, id string, patch *ProductPatch) (*domain.Product, error)
	DeleteByID(ctx context.Context, id string) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (*UploadImageRes, error)
	Delete(ctx context.Context, key string) error
}

type CacheRepository interface {
	// GetProductList returns (nil, nil) on a cache miss.
	GetProductList(ctx context.Context) ([]domain.Product, error)
	SetProductList(ctx context.Context, products []domain.Product) error
	InvalidateProductList(ctx context.Context) error
}
