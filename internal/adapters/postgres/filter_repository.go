package postgres

import (
	"context"
	"fmt"

	"realty-backoffice/internal/core/domain"
)

type FilterRepository struct {
	db DB
}

func NewFilterRepository(db DB) (*FilterRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database pool cannot be nil")
	}
	return &FilterRepository{db: db}, nil
}

// GetFilterOptions собирает города, районы и диапазоны цены и площади предложений
func (a *FilterRepository) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	opts := &domain.FilterOptions{}

	var err error
	if opts.Cities, err = a.distinct(ctx, "city"); err != nil {
		return nil, err
	}
	if opts.Districts, err = a.distinct(ctx, "district"); err != nil {
		return nil, err
	}

	query := `
		SELECT COALESCE(MIN(price), 0), COALESCE(MAX(price), 0),
		       COALESCE(MIN(surface), 0), COALESCE(MAX(surface), 0)
		FROM offers`
	err = a.db.QueryRow(ctx, query).Scan(&opts.Price.Min, &opts.Price.Max, &opts.Surface.Min, &opts.Surface.Max)
	if err != nil {
		return nil, fmt.Errorf("failed to get price and surface range: %w", err)
	}
	return opts, nil
}

// distinct получает уникальные непустые значения колонки offers
func (a *FilterRepository) distinct(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %[1]s
		FROM offers
		WHERE %[1]s IS NOT NULL AND %[1]s != ''
		ORDER BY %[1]s ASC`, column)

	rows, err := a.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct %s: %w", column, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
