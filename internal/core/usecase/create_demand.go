package usecase

import (
	"context"
	"time"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type CreateDemandUseCase struct {
	repo      port.DemandRepositoryPort
	publisher port.ListingEventPublisherPort
	now       func() time.Time
}

func NewCreateDemandUseCase(repo port.DemandRepositoryPort, publisher port.ListingEventPublisherPort) *CreateDemandUseCase {
	return &CreateDemandUseCase{repo: repo, publisher: publisher, now: time.Now}
}

func (uc *CreateDemandUseCase) Execute(ctx context.Context, draft domain.DemandDraft) (*domain.Demand, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "CreateDemand"})

	demand, err := domain.NewDemand(draft, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, demand); err != nil {
		ucLogger.Error("Repository failed to create demand", err, nil)
		return nil, err
	}

	ucLogger.Info("Demand created", port.Fields{"demand_id": demand.ID})
	publishEvent(ctx, uc.publisher, domain.EventCreated, domain.EntityDemand, demand.ID)
	return demand, nil
}
