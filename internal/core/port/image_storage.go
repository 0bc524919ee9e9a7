package port

import (
	"context"
	"io"

	"realty-backoffice/internal/core/domain"
)

// ImageStoragePort хранит загруженные изображения и отдает их публичные URL
type ImageStoragePort interface {
	Save(ctx context.Context, filename string, r io.Reader) (*domain.StoredImage, error)
	Delete(ctx context.Context, imageURL string) error
	Exists(ctx context.Context, imageURL string) (bool, error)
}
