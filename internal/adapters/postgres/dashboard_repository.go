package postgres

import (
	"context"
	"fmt"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"
)

type DashboardRepository struct {
	db DB
}

func NewDashboardRepository(db DB) (*DashboardRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database pool cannot be nil")
	}
	return &DashboardRepository{db: db}, nil
}

// GetStats считает итоги, распределения и средние значения по обоим спискам
func (r *DashboardRepository) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "DashboardRepository",
		"method":    "GetStats",
	})

	stats := domain.NewDashboardStats()

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(surface), 0), COALESCE(ROUND(AVG(price), 2), 0) FROM offers`,
	).Scan(&stats.TotalOffers, &stats.AvgOfferSurface, &stats.AvgOfferPrice)
	if err != nil {
		repoLogger.Error("Failed to aggregate offers", err, nil)
		return nil, fmt.Errorf("failed to aggregate offers: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(desired_surface), 0), COALESCE(ROUND(AVG(budget), 2), 0) FROM demands`,
	).Scan(&stats.TotalDemands, &stats.AvgDemandSurface, &stats.AvgDemandBudget)
	if err != nil {
		repoLogger.Error("Failed to aggregate demands", err, nil)
		return nil, fmt.Errorf("failed to aggregate demands: %w", err)
	}

	groups := []struct {
		query string
		add   func(key string, n int64)
	}{
		{"SELECT property_type, COUNT(*) FROM offers GROUP BY property_type", func(k string, n int64) {
			stats.OffersByType[domain.PropertyType(k)] += n
		}},
		{"SELECT property_type, COUNT(*) FROM demands GROUP BY property_type", func(k string, n int64) {
			stats.DemandsByType[domain.PropertyType(k)] += n
		}},
		{"SELECT status, COUNT(*) FROM offers GROUP BY status", func(k string, n int64) {
			stats.OffersByStatus[domain.OfferStatus(k)] += n
		}},
		{"SELECT demand_type, COUNT(*) FROM demands GROUP BY demand_type", func(k string, n int64) {
			stats.DemandsByKind[domain.DemandType(k)] += n
		}},
	}
	for _, g := range groups {
		if err := r.countBy(ctx, g.query, g.add); err != nil {
			repoLogger.Error("Failed to group listing records", err, port.Fields{"query": g.query})
			return nil, err
		}
	}

	return stats, nil
}

func (r *DashboardRepository) countBy(ctx context.Context, query string, add func(string, int64)) error {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to count by group: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return fmt.Errorf("failed to scan group count: %w", err)
		}
		add(key, n)
	}
	return rows.Err()
}
