package minio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Inu41123/api-almacen/internal/cfg"
	"github.com/Inu41123/api-almacen/internal/domain"
	"github.com/Inu41123/api-almacen/internal/usecase"
	"github.com/Inu41123/api-almacen/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ImageRepo implements the image repository on top of MinIO.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload stores the image and returns its public URL together with the object
// key needed to delete it later.
func (i *ImageRepo) Upload(ctx context.Context, image *domain.Image) (*usecase.UploadImageRes, error) {
	reader := bytes.NewReader(image.Bytes)

	info, err := i.mc.PutObject(ctx, i.cfg.BucketName, image.ObjectKey, reader, image.Size, minio.PutObjectOptions{
		ContentType: image.MimeType,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return usecase.NewUploadImageRes(i.publicURL(info.Key), info.Key), nil
}

// Delete removes the object with the given key from MinIO.
func (i *ImageRepo) Delete(ctx context.Context, key string) error {
	if err := i.mc.RemoveObject(ctx, i.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (i *ImageRepo) publicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", i.cfg.PublicBaseURL, i.cfg.BucketName, key)
}
