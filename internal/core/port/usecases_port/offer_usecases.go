package usecases_port

import (
	"context"
	"io"

	"realty-backoffice/internal/core/domain"
)

type CreateOfferUseCase interface {
	Execute(ctx context.Context, draft domain.OfferDraft) (*domain.Offer, error)
}

type UpdateOfferUseCase interface {
	Execute(ctx context.Context, id int64, draft domain.OfferDraft) (*domain.Offer, error)
}

type ChangeOfferStatusUseCase interface {
	Execute(ctx context.Context, id int64, status domain.OfferStatus) (*domain.Offer, error)
}

// PhotoUpload - один файл из multipart-запроса
type PhotoUpload struct {
	Filename string
	Content  io.Reader
}

type AddOfferPhotosUseCase interface {
	Execute(ctx context.Context, id int64, photos []PhotoUpload) (*domain.Offer, error)
}

type GetFilterOptionsUseCase interface {
	Execute(ctx context.Context) (*domain.FilterOptions, error)
}
