package postgres

import (
	"testing"

	"realty-backoffice/internal/core/listing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyFilters(t *testing.T) {
	t.Run("Should produce no WHERE for an empty query", func(t *testing.T) {
		where, args := applyFilters(listing.Query{Type: "all", Kind: ""}, offerColumns)

		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("Should number placeholders in the order filters are applied", func(t *testing.T) {
		priceMin := decimal.NewFromInt(150000)
		surfaceMax := 120.0
		where, args := applyFilters(listing.Query{
			Search:     "gueliz",
			Type:       "villa",
			City:       "Marrakech",
			PriceMin:   &priceMin,
			SurfaceMax: &surfaceMax,
		}, offerColumns)

		assert.Equal(t, "WHERE (unaccent(o.owner_name) ILIKE unaccent($1) OR unaccent(o.owner_phone) ILIKE unaccent($1) OR "+
			"unaccent(o.address) ILIKE unaccent($1) OR unaccent(o.city) ILIKE unaccent($1) OR "+
			"unaccent(o.district) ILIKE unaccent($1) OR unaccent(o.description) ILIKE unaccent($1)) AND "+
			"lower(unaccent(o.property_type)) = lower(unaccent($2)) AND "+
			"lower(unaccent(o.city)) = lower(unaccent($3)) AND "+
			"o.price >= $4 AND o.surface <= $5", where)
		assert.Equal(t, []interface{}{"%gueliz%", "villa", "Marrakech", priceMin, 120.0}, args)
	})

	t.Run("Should match the demand location for the city filter and ignore district", func(t *testing.T) {
		where, args := applyFilters(listing.Query{City: "Rabat", District: "Agdal", Kind: "rental"}, demandColumns)

		assert.Equal(t, "WHERE lower(unaccent(d.demand_type)) = lower(unaccent($1)) AND "+
			"lower(unaccent(d.preferred_location)) = lower(unaccent($2))", where)
		assert.Equal(t, []interface{}{"rental", "Rabat"}, args)
	})

	t.Run("Should escape LIKE wildcards typed by the user", func(t *testing.T) {
		_, args := applyFilters(listing.Query{Search: "50%_off"}, demandColumns)

		assert.Equal(t, []interface{}{`%50\%\_off%`}, args)
	})
}

func TestOrderAndLimit(t *testing.T) {
	t.Run("Should break ties by id in the same direction", func(t *testing.T) {
		assert.Equal(t, "ORDER BY o.price DESC, o.id DESC", orderClause(listing.Query{Sort: listing.SortPrice, Desc: true}, offerColumns))
		assert.Equal(t, "ORDER BY d.desired_surface ASC, d.id ASC", orderClause(listing.Query{Sort: listing.SortSurface}, demandColumns))
	})

	t.Run("Should fall back to newest first", func(t *testing.T) {
		assert.Equal(t, "ORDER BY o.created_at DESC, o.id DESC", orderClause(listing.Query{}, offerColumns))
	})

	t.Run("Should append limit and offset after the filter arguments", func(t *testing.T) {
		args := []interface{}{"x"}
		clause, out := limitOffset(listing.Query{Page: 3, PageSize: 10}, args)

		assert.Equal(t, "LIMIT $2 OFFSET $3", clause)
		assert.Equal(t, []interface{}{"x", 10, 20}, out)
		assert.Len(t, args, 1)
	})
}
