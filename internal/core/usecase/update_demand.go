package usecase

import (
	"context"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type UpdateDemandUseCase struct {
	repo      port.DemandRepositoryPort
	publisher port.ListingEventPublisherPort
}

func NewUpdateDemandUseCase(repo port.DemandRepositoryPort, publisher port.ListingEventPublisherPort) *UpdateDemandUseCase {
	return &UpdateDemandUseCase{repo: repo, publisher: publisher}
}

func (uc *UpdateDemandUseCase) Execute(ctx context.Context, id int64, draft domain.DemandDraft) (*domain.Demand, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":  "UpdateDemand",
		"demand_id": id,
	})

	demand, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := demand.Update(draft); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, demand); err != nil {
		ucLogger.Error("Repository failed to update demand", err, nil)
		return nil, err
	}

	ucLogger.Info("Demand updated", nil)
	publishEvent(ctx, uc.publisher, domain.EventUpdated, domain.EntityDemand, demand.ID)
	return demand, nil
}
