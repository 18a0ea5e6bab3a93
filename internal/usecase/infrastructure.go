package usecase

import (
	"context"

	"github.com/Inu41123/api-almacen/internal/domain"
)

type MediaInfra interface {
	UploadImage(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error)
	DeleteImage(ctx context.Context, key string) error
	// CleanupImage deletes the object in the background, best effort.
	CleanupImage(key string)
}

type EventPublisher interface {
	PublishChange(ctx context.Context, change *domain.ProductChange) error
}
