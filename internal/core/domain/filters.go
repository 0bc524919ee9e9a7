package domain

import "github.com/shopspring/decimal"

// PriceRange - минимальная и максимальная цена среди объектов
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

type SurfaceRange struct {
	Min float64
	Max float64
}

// FilterOptions - значения для выпадающих фильтров списка
type FilterOptions struct {
	Types     []PropertyType
	Statuses  []OfferStatus
	Cities    []string
	Districts []string
	Price     PriceRange
	Surface   SurfaceRange
}
