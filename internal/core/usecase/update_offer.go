package usecase

import (
	"context"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type UpdateOfferUseCase struct {
	repo      port.OfferRepositoryPort
	publisher port.ListingEventPublisherPort
}

func NewUpdateOfferUseCase(repo port.OfferRepositoryPort, publisher port.ListingEventPublisherPort) *UpdateOfferUseCase {
	return &UpdateOfferUseCase{repo: repo, publisher: publisher}
}

// Execute заменяет поля предложения. Статус и фотографии, не переданные в черновике, сохраняются.
func (uc *UpdateOfferUseCase) Execute(ctx context.Context, id int64, draft domain.OfferDraft) (*domain.Offer, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "UpdateOffer",
		"offer_id": id,
	})

	offer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := offer.Update(draft); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, offer); err != nil {
		ucLogger.Error("Repository failed to update offer", err, nil)
		return nil, err
	}

	ucLogger.Info("Offer updated", nil)
	publishEvent(ctx, uc.publisher, domain.EventUpdated, domain.EntityOffer, offer.ID)
	return offer, nil
}
