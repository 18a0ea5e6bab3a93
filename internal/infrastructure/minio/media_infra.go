package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Inu41123/api-almacen/internal/cfg"
	"github.com/Inu41123/api-almacen/internal/domain"
	"github.com/Inu41123/api-almacen/internal/infrastructure"
	"github.com/Inu41123/api-almacen/internal/usecase"
	"github.com/Inu41123/api-almacen/pkg/e"
	"github.com/Inu41123/api-almacen/pkg/jitter"
	"github.com/Inu41123/api-almacen/pkg/logger"
	"github.com/google/uuid"
)

// MediaInfrastructure handles product image uploads and background cleanup of
// objects that lost their owning record (failed insert, replaced image).
type MediaInfrastructure struct {
	imageRepo   usecase.ImageRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewMediaInfrastructure(imageRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MediaInfrastructure {
	return &MediaInfrastructure{
		imageRepo:   imageRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// UploadImage stores one image under the configured upload folder and returns
// its public URL plus the object key used for deletion.
func (m *MediaInfrastructure) UploadImage(ctx context.Context, req *usecase.UploadImageReq) (*usecase.UploadImageRes, error) {
	const op = "MediaInfrastructure.UploadImage"

	ext, err := infrastructure.GetExtensionFromMIME(req.Image.MimeType)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("invalid mime type %s for %s: %w", req.Image.MimeType, req.Image.Name, err))
	}

	imageID := uuid.NewString()
	objKey := fmt.Sprintf("%s/%s.%s", m.cfg.UploadFolder, imageID, ext)
	image := domain.NewImage(imageID, m.cfg.BucketName, objKey, req.Image.Data, req.Image.Size, req.Image.MimeType)

	res, err := m.imageRepo.Upload(ctx, image)
	if err != nil {
		return nil, e.Wrap(op, e.Wrap(err.Error(), e.ErrUploadFailed))
	}

	return res, nil
}

// DeleteImage removes the object synchronously. Used by the delete-product
// flow, where a media failure must be reported to the caller.
func (m *MediaInfrastructure) DeleteImage(ctx context.Context, key string) error {
	return m.imageRepo.Delete(ctx, key)
}

// CleanupImage deletes the object in the background, best effort.
func (m *MediaInfrastructure) CleanupImage(key string) {
	if key == "" {
		return
	}
	m.wg.Add(1)
	go m.cleanupKey(key)
}

// cleanupKey retries the delete with exponential backoff and jitter.
func (m *MediaInfrastructure) cleanupKey(key string) {
	defer m.wg.Done()
	const (
		op          = "MediaInfrastructure.cleanupKey"
		maxAttempts = 3
		baseBackoff = time.Second
		maxBackoff  = 8 * time.Second
	)

	ctx, cancel := context.WithTimeout(m.shutdownCtx, 30*time.Second)
	defer cancel()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := m.imageRepo.Delete(ctx, key)
		if err == nil {
			m.logger.Infof("%s: removed orphaned object %s", op, key)
			return
		}

		m.logger.Warnf("%s: delete attempt %d for %s failed: %v", op, attempt+1, key, err)

		if attempt == maxAttempts-1 {
			break
		}

		select {
		case <-time.After(jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)):
		case <-ctx.Done():
			m.logger.Warnf("%s: cleanup interrupted by shutdown, key=%s", op, key)
			return
		}
	}

	m.logger.Warnf("%s: giving up on object %s, it stays orphaned", op, key)
}

// WaitForCleanup blocks until all background cleanups finish or the shutdown
// timeout expires.
func (m *MediaInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("media cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
