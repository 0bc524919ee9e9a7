package usecase

import (
	"context"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type ChangeOfferStatusUseCase struct {
	repo      port.OfferRepositoryPort
	publisher port.ListingEventPublisherPort
}

func NewChangeOfferStatusUseCase(repo port.OfferRepositoryPort, publisher port.ListingEventPublisherPort) *ChangeOfferStatusUseCase {
	return &ChangeOfferStatusUseCase{repo: repo, publisher: publisher}
}

func (uc *ChangeOfferStatusUseCase) Execute(ctx context.Context, id int64, status domain.OfferStatus) (*domain.Offer, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"status": "has unsupported value \"" + string(status) + "\"",
		}}
	}

	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ChangeOfferStatus",
		"offer_id": id,
		"status":   string(status),
	})

	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		ucLogger.Warn("Status update failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	offer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ucLogger.Info("Offer status changed", nil)
	publishEvent(ctx, uc.publisher, domain.EventStatusChanged, domain.EntityOffer, id)
	return offer, nil
}
