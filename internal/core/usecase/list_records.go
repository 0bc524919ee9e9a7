package usecase

import (
	"context"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/listing"
	"realty-backoffice/internal/core/port"
)

// ListRecordsUseCase отдает одну страницу списка из хранилища
type ListRecordsUseCase[T any] struct {
	repo port.ListingRepository[T]
	name string
}

func NewListRecordsUseCase[T any](repo port.ListingRepository[T], name string) *ListRecordsUseCase[T] {
	return &ListRecordsUseCase[T]{repo: repo, name: name}
}

func (uc *ListRecordsUseCase[T]) Execute(ctx context.Context, q listing.Query) (listing.Result[T], error) {
	q = q.Normalize(listing.DefaultServerPageSize)

	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":  "List" + uc.name,
		"page":      q.Page,
		"page_size": q.PageSize,
		"sort":      string(q.Sort),
	})
	ucLogger.Debug("Use case started", nil)

	items, total, err := uc.repo.Find(ctx, q)
	if err != nil {
		ucLogger.Error("Repository failed to find records", err, nil)
		return listing.Result[T]{}, err
	}
	if items == nil {
		items = []T{}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   total,
		"items_on_page": len(items),
	})

	return listing.Result[T]{
		Items:     items,
		Page:      q.Page,
		PageSize:  q.PageSize,
		PageCount: listing.PageCount(total, q.PageSize),
		Total:     total,
	}, nil
}

// FindAllRecordsUseCase отдает все записи, подходящие под фильтры, без страниц
type FindAllRecordsUseCase[T any] struct {
	repo port.ListingRepository[T]
	name string
}

func NewFindAllRecordsUseCase[T any](repo port.ListingRepository[T], name string) *FindAllRecordsUseCase[T] {
	return &FindAllRecordsUseCase[T]{repo: repo, name: name}
}

func (uc *FindAllRecordsUseCase[T]) Execute(ctx context.Context, q listing.Query) ([]T, error) {
	q = q.Normalize(listing.DefaultServerPageSize)

	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "FindAll" + uc.name})

	items, err := uc.repo.FindAll(ctx, q)
	if err != nil {
		ucLogger.Error("Repository failed to find records", err, nil)
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	ucLogger.Debug("Use case finished successfully", port.Fields{"total_found": len(items)})
	return items, nil
}

// GetRecordUseCase отдает одну запись по ID
type GetRecordUseCase[T any] struct {
	repo port.ListingRepository[T]
}

func NewGetRecordUseCase[T any](repo port.ListingRepository[T]) *GetRecordUseCase[T] {
	return &GetRecordUseCase[T]{repo: repo}
}

func (uc *GetRecordUseCase[T]) Execute(ctx context.Context, id int64) (*T, error) {
	return uc.repo.GetByID(ctx, id)
}
