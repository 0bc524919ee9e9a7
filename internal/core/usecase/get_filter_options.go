package usecase

import (
	"context"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type GetFilterOptionsUseCase struct {
	repo port.FilterRepositoryPort
}

func NewGetFilterOptionsUseCase(repo port.FilterRepositoryPort) *GetFilterOptionsUseCase {
	return &GetFilterOptionsUseCase{repo: repo}
}

func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context) (*domain.FilterOptions, error) {
	opts, err := uc.repo.GetFilterOptions(ctx)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load filter options", err, port.Fields{"use_case": "GetFilterOptions"})
		return nil, err
	}
	// типы и статусы не зависят от данных
	opts.Types = domain.PropertyTypes
	opts.Statuses = domain.OfferStatuses
	return opts, nil
}
