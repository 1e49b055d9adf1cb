package main

import (
	"context"

	"github.com/UnendingLoop/ImageGallery/internal/model"
)

type GalleryAPIService interface {
	Upload(ctx context.Context, data *model.UploadData) (*model.UploadedImage, error)
	Snapshot(ctx context.Context) ([]string, error)
}
