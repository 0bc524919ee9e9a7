package usecase

import (
	"context"
	"time"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type CreateOfferUseCase struct {
	repo      port.OfferRepositoryPort
	publisher port.ListingEventPublisherPort
	now       func() time.Time
}

func NewCreateOfferUseCase(repo port.OfferRepositoryPort, publisher port.ListingEventPublisherPort) *CreateOfferUseCase {
	return &CreateOfferUseCase{repo: repo, publisher: publisher, now: time.Now}
}

func (uc *CreateOfferUseCase) Execute(ctx context.Context, draft domain.OfferDraft) (*domain.Offer, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "CreateOffer"})

	offer, err := domain.NewOffer(draft, uc.now())
	if err != nil {
		ucLogger.Debug("Offer draft rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.repo.Create(ctx, offer); err != nil {
		ucLogger.Error("Repository failed to create offer", err, nil)
		return nil, err
	}

	ucLogger.Info("Offer created", port.Fields{"offer_id": offer.ID})
	publishEvent(ctx, uc.publisher, domain.EventCreated, domain.EntityOffer, offer.ID)
	return offer, nil
}
