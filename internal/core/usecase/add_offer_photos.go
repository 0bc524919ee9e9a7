package usecase

import (
	"context"
	"fmt"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/core/port/usecases_port"
)

type AddOfferPhotosUseCase struct {
	repo      port.OfferRepositoryPort
	images    port.ImageStoragePort
	publisher port.ListingEventPublisherPort
}

func NewAddOfferPhotosUseCase(repo port.OfferRepositoryPort, images port.ImageStoragePort, publisher port.ListingEventPublisherPort) *AddOfferPhotosUseCase {
	return &AddOfferPhotosUseCase{repo: repo, images: images, publisher: publisher}
}

// Execute сохраняет файлы и добавляет их в конец списка фотографий.
// Если хотя бы один файл не сохранился, уже сохраненные удаляются и предложение не меняется.
func (uc *AddOfferPhotosUseCase) Execute(ctx context.Context, id int64, photos []usecases_port.PhotoUpload) (*domain.Offer, error) {
	if len(photos) == 0 {
		return nil, &domain.ValidationError{Fields: map[string]string{"photos": "is required"}}
	}

	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":     "AddOfferPhotos",
		"offer_id":     id,
		"photos_count": len(photos),
	})

	if _, err := uc.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(photos))
	rollback := func() {
		for _, u := range urls {
			if err := uc.images.Delete(ctx, u); err != nil {
				ucLogger.Warn("Failed to remove stored photo during rollback", port.Fields{"url": u, "error": err.Error()})
			}
		}
	}

	for _, p := range photos {
		img, err := uc.images.Save(ctx, p.Filename, p.Content)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("photo %q: %w", p.Filename, err)
		}
		urls = append(urls, img.URL)
	}

	if err := uc.repo.AddPhotos(ctx, id, urls); err != nil {
		ucLogger.Error("Repository failed to attach photos", err, nil)
		rollback()
		return nil, err
	}

	offer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ucLogger.Info("Photos attached to offer", nil)
	publishEvent(ctx, uc.publisher, domain.EventPhotosAdded, domain.EntityOffer, id)
	return offer, nil
}
