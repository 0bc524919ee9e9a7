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

const demandSelect = `
	SELECT d.id, d.client_name, d.client_phone, d.property_type, d.demand_type, d.desired_surface,
		   d.budget, d.bedrooms, d.floor, d.preferred_location, d.notes, d.created_at
	FROM demands d `

type DemandRepository struct {
	db DB
}

func NewDemandRepository(db DB) (*DemandRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database pool cannot be nil")
	}
	return &DemandRepository{db: db}, nil
}

func scanDemand(row pgx.Row) (*domain.Demand, error) {
	var d domain.Demand
	err := row.Scan(
		&d.ID, &d.ClientName, &d.ClientPhone, &d.PropertyType, &d.DemandType, &d.DesiredSurface,
		&d.Budget, &d.Bedrooms, &d.Floor, &d.PreferredLocation, &d.Notes, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Normalize()
	return &d, nil
}

func (r *DemandRepository) Find(ctx context.Context, q listing.Query) ([]domain.Demand, int, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "DemandRepository",
		"method":    "Find",
		"page":      q.Page,
		"page_size": q.PageSize,
	})

	whereClause, args := applyFilters(q, demandColumns)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := "SELECT COUNT(*) FROM demands d " + whereClause
	var total int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count demands", err, port.Fields{"query": countQuery})
		return nil, 0, fmt.Errorf("failed to count demands: %w", err)
	}
	if total == 0 {
		return []domain.Demand{}, 0, tx.Commit(ctx)
	}

	limitClause, pageArgs := limitOffset(q, args)
	dataQuery := demandSelect + whereClause + " " + orderClause(q, demandColumns) + " " + limitClause

	demands, err := collectDemands(ctx, tx, dataQuery, pageArgs...)
	if err != nil {
		repoLogger.Error("Failed to find demands", err, port.Fields{"query": dataQuery})
		return nil, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Demands page loaded", port.Fields{"total": total, "count": len(demands)})
	return demands, int(total), nil
}

func (r *DemandRepository) FindAll(ctx context.Context, q listing.Query) ([]domain.Demand, error) {
	whereClause, args := applyFilters(q, demandColumns)
	return collectDemands(ctx, r.db, demandSelect+whereClause+" "+orderClause(q, demandColumns), args...)
}

func collectDemands(ctx context.Context, db querier, query string, args ...interface{}) ([]domain.Demand, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query demands: %w", err)
	}
	defer rows.Close()

	demands := make([]domain.Demand, 0)
	for rows.Next() {
		d, err := scanDemand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan demand: %w", err)
		}
		demands = append(demands, *d)
	}
	return demands, rows.Err()
}

func (r *DemandRepository) GetByID(ctx context.Context, id int64) (*domain.Demand, error) {
	d, err := scanDemand(r.db.QueryRow(ctx, demandSelect+"WHERE d.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDemandNotFound
		}
		return nil, fmt.Errorf("failed to get demand: %w", err)
	}
	return d, nil
}

func (r *DemandRepository) Create(ctx context.Context, d *domain.Demand) error {
	query := `
		INSERT INTO demands (client_name, client_phone, property_type, demand_type, desired_surface,
		                     budget, bedrooms, floor, preferred_location, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		d.ClientName, d.ClientPhone, string(d.PropertyType), string(d.DemandType), d.DesiredSurface,
		d.Budget, d.Bedrooms, d.Floor, d.PreferredLocation, d.Notes, d.CreatedAt,
	).Scan(&d.ID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to insert demand", err, port.Fields{"component": "DemandRepository"})
		return fmt.Errorf("failed to create demand: %w", err)
	}
	return nil
}

func (r *DemandRepository) Update(ctx context.Context, d *domain.Demand) error {
	query := `
		UPDATE demands SET client_name = $1, client_phone = $2, property_type = $3, demand_type = $4,
		                   desired_surface = $5, budget = $6, bedrooms = $7, floor = $8,
		                   preferred_location = $9, notes = $10
		WHERE id = $11`
	tag, err := r.db.Exec(ctx, query,
		d.ClientName, d.ClientPhone, string(d.PropertyType), string(d.DemandType), d.DesiredSurface,
		d.Budget, d.Bedrooms, d.Floor, d.PreferredLocation, d.Notes, d.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update demand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDemandNotFound
	}
	return nil
}

func (r *DemandRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM demands WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete demand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDemandNotFound
	}
	return nil
}
