package postgres

import (
	"context"
	"errors"
	"fmt"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"
	"realty-backoffice/internal/core/port"

	"github.com/jackc/pgx/v5"
)

const offerSelect = `
	SELECT o.id, o.owner_name, o.owner_phone, o.address, o.city, o.district, o.property_type,
		   o.surface, o.floor, o.price, o.bedrooms, o.description, o.status, o.created_at,
		   COALESCE((SELECT array_agg(p.url ORDER BY p.position) FROM offer_photos p WHERE p.offer_id = o.id), '{}') AS photos
	FROM offers o `

// OfferRepository - реализация OfferRepositoryPort для PostgreSQL
type OfferRepository struct {
	db DB
}

func NewOfferRepository(db DB) (*OfferRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database pool cannot be nil")
	}
	return &OfferRepository{db: db}, nil
}

func scanOffer(row pgx.Row) (*domain.Offer, error) {
	var o domain.Offer
	err := row.Scan(
		&o.ID, &o.OwnerName, &o.OwnerPhone, &o.Address, &o.City, &o.District, &o.PropertyType,
		&o.Surface, &o.Floor, &o.Price, &o.Bedrooms, &o.Description, &o.Status, &o.CreatedAt,
		&o.Photos,
	)
	if err != nil {
		return nil, err
	}
	o.Normalize()
	return &o, nil
}

// Find ищет предложения по фильтрам с пагинацией
func (r *OfferRepository) Find(ctx context.Context, q listing.Query) ([]domain.Offer, int, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "OfferRepository",
		"method":    "Find",
		"page":      q.Page,
		"page_size": q.PageSize,
	})

	whereClause, args := applyFilters(q, offerColumns)

	// COUNT и страница читаются в одной транзакции
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := "SELECT COUNT(*) FROM offers o " + whereClause
	var total int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count offers", err, port.Fields{"query": countQuery})
		return nil, 0, fmt.Errorf("failed to count offers: %w", err)
	}

	if total == 0 {
		return []domain.Offer{}, 0, tx.Commit(ctx)
	}

	limitClause, pageArgs := limitOffset(q, args)
	dataQuery := offerSelect + whereClause + " " + orderClause(q, offerColumns) + " " + limitClause

	offers, err := collectOffers(ctx, tx, dataQuery, pageArgs...)
	if err != nil {
		repoLogger.Error("Failed to find offers", err, port.Fields{"query": dataQuery})
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Offers page loaded", port.Fields{"total": total, "count": len(offers)})
	return offers, int(total), nil
}

// FindAll возвращает все подходящие предложения, для выгрузки
func (r *OfferRepository) FindAll(ctx context.Context, q listing.Query) ([]domain.Offer, error) {
	whereClause, args := applyFilters(q, offerColumns)
	query := offerSelect + whereClause + " " + orderClause(q, offerColumns)

	offers, err := collectOffers(ctx, r.db, query, args...)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to find all offers", err, port.Fields{
			"component": "OfferRepository",
			"query":     query,
		})
		return nil, err
	}
	return offers, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func collectOffers(ctx context.Context, db querier, query string, args ...interface{}) ([]domain.Offer, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	offers := make([]domain.Offer, 0)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, *o)
	}
	return offers, rows.Err()
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	o, err := scanOffer(r.db.QueryRow(ctx, offerSelect+"WHERE o.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOfferNotFound
		}
		contextkeys.LoggerFromContext(ctx).Error("Failed to get offer", err, port.Fields{
			"component": "OfferRepository",
			"offer_id":  id,
		})
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return o, nil
}

// Create сохраняет предложение вместе с фотографиями и проставляет ID
func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "OfferRepository",
		"method":    "Create",
	})

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO offers (owner_name, owner_phone, address, city, district, property_type,
		                    surface, floor, price, bedrooms, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err = tx.QueryRow(ctx, query,
		o.OwnerName, o.OwnerPhone, o.Address, o.City, o.District, string(o.PropertyType),
		o.Surface, o.Floor, o.Price, o.Bedrooms, o.Description, string(o.Status), o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		repoLogger.Error("Failed to insert offer", err, nil)
		return fmt.Errorf("failed to create offer: %w", err)
	}

	if err := insertPhotos(ctx, tx, o.ID, 0, o.Photos); err != nil {
		repoLogger.Error("Failed to insert offer photos", err, port.Fields{"offer_id": o.ID})
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	repoLogger.Debug("Offer inserted", port.Fields{"offer_id": o.ID})
	return nil
}

// Update заменяет поля и список фотографий
func (r *OfferRepository) Update(ctx context.Context, o *domain.Offer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE offers SET owner_name = $1, owner_phone = $2, address = $3, city = $4, district = $5,
		                  property_type = $6, surface = $7, floor = $8, price = $9, bedrooms = $10,
		                  description = $11, status = $12
		WHERE id = $13`
	tag, err := tx.Exec(ctx, query,
		o.OwnerName, o.OwnerPhone, o.Address, o.City, o.District, string(o.PropertyType),
		o.Surface, o.Floor, o.Price, o.Bedrooms, o.Description, string(o.Status), o.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOfferNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM offer_photos WHERE offer_id = $1", o.ID); err != nil {
		return fmt.Errorf("failed to clear offer photos: %w", err)
	}
	if err := insertPhotos(ctx, tx, o.ID, 0, o.Photos); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *OfferRepository) UpdateStatus(ctx context.Context, id int64, status domain.OfferStatus) error {
	tag, err := r.db.Exec(ctx, "UPDATE offers SET status = $1 WHERE id = $2", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update offer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

// AddPhotos добавляет фотографии в конец списка
func (r *OfferRepository) AddPhotos(ctx context.Context, id int64, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// блокируем предложение, чтобы параллельные загрузки не заняли одну позицию
	var next int32
	err = tx.QueryRow(ctx, `
		SELECT COALESCE((SELECT MAX(position) + 1 FROM offer_photos WHERE offer_id = o.id), 0)
		FROM offers o WHERE o.id = $1 FOR UPDATE`, id).Scan(&next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrOfferNotFound
		}
		return fmt.Errorf("failed to lock offer: %w", err)
	}

	if err := insertPhotos(ctx, tx, id, next, urls); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *OfferRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM offers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

func insertPhotos(ctx context.Context, tx pgx.Tx, offerID int64, from int32, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	query := `
		INSERT INTO offer_photos (offer_id, position, url)
		SELECT $1, $2 + t.ord - 1, t.url FROM unnest($3::text[]) WITH ORDINALITY AS t(url, ord)`
	if _, err := tx.Exec(ctx, query, offerID, from, urls); err != nil {
		return fmt.Errorf("failed to insert offer photos: %w", err)
	}
	return nil
}
