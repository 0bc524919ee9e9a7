package wire

import (
	"realty-backoffice/internal/core/domain"

	"github.com/shopspring/decimal"
)

// DashboardDTO - статистика в формате старой панели администратора
type DashboardDTO struct {
	NombreTotalOffres           int64            `json:"nombreTotalOffres"`
	NombreTotalDemandes         int64            `json:"nombreTotalDemandes"`
	RepartitionTypeBienOffres   map[string]int64 `json:"repartitionTypeBienOffres"`
	RepartitionTypeBienDemandes map[string]int64 `json:"repartitionTypeBienDemandes"`
	RepartitionStatutOffres     map[string]int64 `json:"repartitionStatutOffres"`
	RepartitionTypeDemandes     map[string]int64 `json:"repartitionTypeDemandes"`
	MoyenneSurfaceOfferte       float64          `json:"moyenneSurfaceOfferte"`
	MoyenneSurfaceDemandee      float64          `json:"moyenneSurfaceDemandee"`
	MoyennePrixOffert           decimal.Decimal  `json:"moyennePrixOffert"`
	MoyennePrixDemande          decimal.Decimal  `json:"moyennePrixDemande"`
}

func NewDashboardDTO(s domain.DashboardStats) DashboardDTO {
	dto := DashboardDTO{
		NombreTotalOffres:           s.TotalOffers,
		NombreTotalDemandes:         s.TotalDemands,
		RepartitionTypeBienOffres:   make(map[string]int64, len(s.OffersByType)),
		RepartitionTypeBienDemandes: make(map[string]int64, len(s.DemandsByType)),
		RepartitionStatutOffres:     make(map[string]int64, len(s.OffersByStatus)),
		RepartitionTypeDemandes:     make(map[string]int64, len(s.DemandsByKind)),
		MoyenneSurfaceOfferte:       s.AvgOfferSurface,
		MoyenneSurfaceDemandee:      s.AvgDemandSurface,
		MoyennePrixOffert:           s.AvgOfferPrice.Round(2),
		MoyennePrixDemande:          s.AvgDemandBudget.Round(2),
	}
	for t, n := range s.OffersByType {
		dto.RepartitionTypeBienOffres[PropertyTypeCode(t)] = n
	}
	for t, n := range s.DemandsByType {
		dto.RepartitionTypeBienDemandes[PropertyTypeCode(t)] = n
	}
	for st, n := range s.OffersByStatus {
		dto.RepartitionStatutOffres[OfferStatusCode(st)] = n
	}
	for k, n := range s.DemandsByKind {
		dto.RepartitionTypeDemandes[DemandTypeCode(k)] = n
	}
	return dto
}

type RangeDTO[N any] struct {
	Min N `json:"min"`
	Max N `json:"max"`
}

// FilterOptionsDTO - значения для фильтров списка предложений
type FilterOptionsDTO struct {
	TypesBien []string                  `json:"typesBien"`
	Statuts   []string                  `json:"statuts"`
	Villes    []string                  `json:"villes"`
	Quartiers []string                  `json:"quartiers"`
	Prix      RangeDTO[decimal.Decimal] `json:"prix"`
	Surface   RangeDTO[float64]         `json:"surface"`
}

func NewFilterOptionsDTO(o domain.FilterOptions) FilterOptionsDTO {
	return FilterOptionsDTO{
		TypesBien: Convert(o.Types, PropertyTypeCode),
		Statuts:   Convert(o.Statuses, OfferStatusCode),
		Villes:    Convert(o.Cities, identity),
		Quartiers: Convert(o.Districts, identity),
		Prix:      RangeDTO[decimal.Decimal]{Min: o.Price.Min, Max: o.Price.Max},
		Surface:   RangeDTO[float64]{Min: o.Surface.Min, Max: o.Surface.Max},
	}
}

func identity(s string) string { return s }
