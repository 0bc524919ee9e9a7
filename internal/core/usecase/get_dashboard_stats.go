package usecase

import (
	"context"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type GetDashboardStatsUseCase struct {
	repo port.DashboardRepositoryPort
}

func NewGetDashboardStatsUseCase(repo port.DashboardRepositoryPort) *GetDashboardStatsUseCase {
	return &GetDashboardStatsUseCase{repo: repo}
}

func (uc *GetDashboardStatsUseCase) Execute(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := uc.repo.GetStats(ctx)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to compute dashboard stats", err, port.Fields{"use_case": "GetDashboardStats"})
		return nil, err
	}
	return stats, nil
}
