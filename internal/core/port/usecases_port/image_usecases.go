package usecases_port

import (
	"context"
	"io"

	"realty-backoffice/internal/core/domain"
)

type UploadImageUseCase interface {
	Execute(ctx context.Context, filename string, r io.Reader) (*domain.StoredImage, error)
}

type DeleteImageUseCase interface {
	Execute(ctx context.Context, imageURL string) error
}

type ImageExistsUseCase interface {
	Execute(ctx context.Context, imageURL string) (bool, error)
}
