package listing

import (
	"time"

	"realty-backoffice/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Descriptor описывает, как фильтр и сортировка читают поля записи
type Descriptor[T any] struct {
	ID        func(T) int64
	Search    func(T) []string // поля для текстового поиска
	Type      func(T) string
	Kind      func(T) string
	City      func(T) string
	District  func(T) string // nil - фильтр по району не применяется
	Price     func(T) decimal.Decimal
	Surface   func(T) float64
	CreatedAt func(T) time.Time
}

var OfferDescriptor = Descriptor[domain.Offer]{
	ID: func(o domain.Offer) int64 { return o.ID },
	Search: func(o domain.Offer) []string {
		return []string{o.OwnerName, o.OwnerPhone, o.Address, o.City, o.District, o.Description}
	},
	Type:      func(o domain.Offer) string { return string(o.PropertyType) },
	Kind:      func(o domain.Offer) string { return string(o.Status) },
	City:      func(o domain.Offer) string { return o.City },
	District:  func(o domain.Offer) string { return o.District },
	Price:     func(o domain.Offer) decimal.Decimal { return o.Price },
	Surface:   func(o domain.Offer) float64 { return o.Surface },
	CreatedAt: func(o domain.Offer) time.Time { return o.CreatedAt },
}

var DemandDescriptor = Descriptor[domain.Demand]{
	ID: func(d domain.Demand) int64 { return d.ID },
	Search: func(d domain.Demand) []string {
		return []string{d.ClientName, d.ClientPhone, d.PreferredLocation, d.Notes}
	},
	Type:      func(d domain.Demand) string { return string(d.PropertyType) },
	Kind:      func(d domain.Demand) string { return string(d.DemandType) },
	City:      func(d domain.Demand) string { return d.PreferredLocation },
	Price:     func(d domain.Demand) decimal.Decimal { return d.Budget },
	Surface:   func(d domain.Demand) float64 { return d.DesiredSurface },
	CreatedAt: func(d domain.Demand) time.Time { return d.CreatedAt },
}
