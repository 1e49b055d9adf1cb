package transport

import (
	"context"

	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/gin-gonic/gin"
)

type mockImageService struct {
	uploadFn   func(ctx context.Context, d *model.UploadData) (*model.UploadedImage, error)
	snapshotFn func(ctx context.Context) ([]string, error)
}

func (m *mockImageService) Upload(ctx context.Context, d *model.UploadData) (*model.UploadedImage, error) {
	return m.uploadFn(ctx, d)
}

func (m *mockImageService) Snapshot(ctx context.Context) ([]string, error) {
	return m.snapshotFn(ctx)
}

func init() {
	gin.SetMode(gin.TestMode)
}
