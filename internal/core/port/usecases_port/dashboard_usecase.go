package usecases_port

import (
	"context"

	"realty-backoffice/internal/core/domain"
)

type GetDashboardStatsUseCase interface {
	Execute(ctx context.Context) (*domain.DashboardStats, error)
}
