package usecase

import (
	"context"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type recordDeleter interface {
	Delete(ctx context.Context, id int64) error
}

// DeleteRecordUseCase удаляет предложение или заявку и сообщает об этом
type DeleteRecordUseCase struct {
	repo      recordDeleter
	entity    domain.EntityKind
	publisher port.ListingEventPublisherPort
}

func NewDeleteRecordUseCase(repo recordDeleter, entity domain.EntityKind, publisher port.ListingEventPublisherPort) *DeleteRecordUseCase {
	return &DeleteRecordUseCase{repo: repo, entity: entity, publisher: publisher}
}

func (uc *DeleteRecordUseCase) Execute(ctx context.Context, id int64) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":  "DeleteRecord",
		"entity":    string(uc.entity),
		"entity_id": id,
	})

	if err := uc.repo.Delete(ctx, id); err != nil {
		ucLogger.Warn("Delete failed", port.Fields{"error": err.Error()})
		return err
	}

	ucLogger.Info("Record deleted", nil)
	publishEvent(ctx, uc.publisher, domain.EventDeleted, uc.entity, id)
	return nil
}
