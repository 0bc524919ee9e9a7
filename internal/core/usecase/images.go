package usecase

import (
	"context"
	"io"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type UploadImageUseCase struct {
	images port.ImageStoragePort
}

func NewUploadImageUseCase(images port.ImageStoragePort) *UploadImageUseCase {
	return &UploadImageUseCase{images: images}
}

func (uc *UploadImageUseCase) Execute(ctx context.Context, filename string, r io.Reader) (*domain.StoredImage, error) {
	img, err := uc.images.Save(ctx, filename, r)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Image upload rejected", port.Fields{"filename": filename, "error": err.Error()})
		return nil, err
	}
	contextkeys.LoggerFromContext(ctx).Info("Image stored", port.Fields{"url": img.URL, "size": img.Size})
	return img, nil
}

type DeleteImageUseCase struct {
	images port.ImageStoragePort
}

func NewDeleteImageUseCase(images port.ImageStoragePort) *DeleteImageUseCase {
	return &DeleteImageUseCase{images: images}
}

func (uc *DeleteImageUseCase) Execute(ctx context.Context, imageURL string) error {
	return uc.images.Delete(ctx, imageURL)
}

type ImageExistsUseCase struct {
	images port.ImageStoragePort
}

func NewImageExistsUseCase(images port.ImageStoragePort) *ImageExistsUseCase {
	return &ImageExistsUseCase{images: images}
}

func (uc *ImageExistsUseCase) Execute(ctx context.Context, imageURL string) (bool, error) {
	return uc.images.Exists(ctx, imageURL)
}
