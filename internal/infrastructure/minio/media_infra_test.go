package minio

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/Inu41123/api-almacen/internal/cfg"
	"github.com/Inu41123/api-almacen/internal/domain"
	"github.com/Inu41123/api-almacen/internal/usecase"
	"github.com/Inu41123/api-almacen/pkg/e"
	"github.com/Inu41123/api-almacen/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockImageRepo struct {
	mu       sync.Mutex
	uploaded []domain.Image
	deleted  []string
	err      error
}

func (m *mockImageRepo) Upload(_ context.Context, image *domain.Image) (*usecase.UploadImageRes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.uploaded = append(m.uploaded, *image)
	return usecase.NewUploadImageRes("http://minio/almacen/"+image.ObjectKey, image.ObjectKey), nil
}

func (m *mockImageRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, key)
	return nil
}

func newTestInfra(repo *mockImageRepo) *MediaInfrastructure {
	return NewMediaInfrastructure(repo, &cfg.MinIOCfg{
		BucketName:   "almacen",
		UploadFolder: "almacen-productos",
	}, logger.New(io.Discard), context.Background())
}

func TestUploadImage_KeyUnderUploadFolder(t *testing.T) {
	repo := &mockImageRepo{}
	infra := newTestInfra(repo)

	res, err := infra.UploadImage(context.Background(), usecase.NewUploadImageReq(usecase.ProductImage{
		Data:     []byte{1, 2, 3},
		MimeType: "image/png",
		Size:     3,
		Name:     "foto.png",
	}))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Key, "almacen-productos/"), "key %q must live under the upload folder", res.Key)
	assert.True(t, strings.HasSuffix(res.Key, ".png"))
	require.Len(t, repo.uploaded, 1)
	assert.Equal(t, "image/png", repo.uploaded[0].MimeType)
}

func TestUploadImage_UnsupportedMime(t *testing.T) {
	repo := &mockImageRepo{}
	infra := newTestInfra(repo)

	_, err := infra.UploadImage(context.Background(), usecase.NewUploadImageReq(usecase.ProductImage{
		Data:     []byte{1},
		MimeType: "application/zip",
		Size:     1,
		Name:     "a.zip",
	}))
	require.ErrorIs(t, err, e.ErrUnsupportedMediaType)
	assert.Empty(t, repo.uploaded)
}

func TestCleanupImage_DeletesInBackground(t *testing.T) {
	repo := &mockImageRepo{}
	infra := newTestInfra(repo)

	infra.CleanupImage("almacen-productos/orphan.png")
	require.NoError(t, infra.WaitForCleanup(context.Background()))

	assert.Equal(t, []string{"almacen-productos/orphan.png"}, repo.deleted)
}

func TestCleanupImage_EmptyKeyIsNoop(t *testing.T) {
	repo := &mockImageRepo{}
	infra := newTestInfra(repo)

	infra.CleanupImage("")
	require.NoError(t, infra.WaitForCleanup(context.Background()))
	assert.Empty(t, repo.deleted)
}
