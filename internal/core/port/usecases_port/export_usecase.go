package usecases_port

import (
	"context"
	"io"

	"realty-backoffice/internal/core/listing"
)

type ExportOffersUseCase interface {
	// Execute пишет выгрузку в w и возвращает число записей
	Execute(ctx context.Context, q listing.Query, w io.Writer) (int, error)
	ContentType() string
	FileExtension() string
}
