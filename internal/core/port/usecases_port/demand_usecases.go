package usecases_port

import (
	"context"

	"realty-backoffice/internal/core/domain"
)

type CreateDemandUseCase interface {
	Execute(ctx context.Context, draft domain.DemandDraft) (*domain.Demand, error)
}

type UpdateDemandUseCase interface {
	Execute(ctx context.Context, id int64, draft domain.DemandDraft) (*domain.Demand, error)
}
