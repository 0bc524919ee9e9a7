package usecases_port

import (
	"context"

	"realty-backoffice/internal/core/listing"
)

// ListRecordsUseCase - одна страница списка
type ListRecordsUseCase[T any] interface {
	Execute(ctx context.Context, q listing.Query) (listing.Result[T], error)
}

// FindAllRecordsUseCase - все записи, подходящие под фильтры
type FindAllRecordsUseCase[T any] interface {
	Execute(ctx context.Context, q listing.Query) ([]T, error)
}

type GetRecordUseCase[T any] interface {
	Execute(ctx context.Context, id int64) (*T, error)
}

type DeleteRecordUseCase interface {
	Execute(ctx context.Context, id int64) error
}
