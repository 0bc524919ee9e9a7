package port

import (
	"io"

	"realty-backoffice/internal/core/domain"
)

// OfferExporterPort записывает предложения в файл выгрузки
type OfferExporterPort interface {
	ContentType() string
	FileExtension() string
	WriteOffers(w io.Writer, offers []domain.Offer) error
}
