package usecase

import (
	"context"
	"fmt"
	"io"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"
	"realty-backoffice/internal/core/port"
)

// ExportOffersUseCase выгружает отфильтрованный список предложений
type ExportOffersUseCase struct {
	repo     port.ListingRepository[domain.Offer]
	exporter port.OfferExporterPort
}

func NewExportOffersUseCase(repo port.ListingRepository[domain.Offer], exporter port.OfferExporterPort) *ExportOffersUseCase {
	return &ExportOffersUseCase{repo: repo, exporter: exporter}
}

func (uc *ExportOffersUseCase) Execute(ctx context.Context, q listing.Query, w io.Writer) (int, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ExportOffers"})

	offers, err := uc.repo.FindAll(ctx, q.Normalize(listing.DefaultServerPageSize))
	if err != nil {
		ucLogger.Error("Repository failed to load offers for export", err, nil)
		return 0, err
	}
	if err := uc.exporter.WriteOffers(w, offers); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}

	ucLogger.Info("Offers exported", port.Fields{"rows": len(offers)})
	return len(offers), nil
}

func (uc *ExportOffersUseCase) ContentType() string   { return uc.exporter.ContentType() }
func (uc *ExportOffersUseCase) FileExtension() string { return uc.exporter.FileExtension() }
