package port

import (
	"context"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"
)

// ListingRepository - поиск записей одного списка в хранилище
type ListingRepository[T any] interface {
	// Find возвращает одну страницу и общее число подходящих записей
	Find(ctx context.Context, q listing.Query) ([]T, int, error)
	// FindAll возвращает все подходящие записи без разбиения на страницы
	FindAll(ctx context.Context, q listing.Query) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Delete(ctx context.Context, id int64) error
}

type OfferRepositoryPort interface {
	ListingRepository[domain.Offer]
	// Create сохраняет предложение и проставляет ему ID
	Create(ctx context.Context, offer *domain.Offer) error
	Update(ctx context.Context, offer *domain.Offer) error
	UpdateStatus(ctx context.Context, id int64, status domain.OfferStatus) error
	AddPhotos(ctx context.Context, id int64, urls []string) error
}

type DemandRepositoryPort interface {
	ListingRepository[domain.Demand]
	Create(ctx context.Context, demand *domain.Demand) error
	Update(ctx context.Context, demand *domain.Demand) error
}

type UserRepositoryPort interface {
	Save(ctx context.Context, user *domain.User) error
	// FindByEmail возвращает nil, nil, если пользователя нет
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type FilterRepositoryPort interface {
	GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error)
}

type DashboardRepositoryPort interface {
	GetStats(ctx context.Context) (*domain.DashboardStats, error)
}
