package domain

import "github.com/shopspring/decimal"

// DashboardStats - сводка для администратора
type DashboardStats struct {
	TotalOffers  int64
	TotalDemands int64

	OffersByType   map[PropertyType]int64
	DemandsByType  map[PropertyType]int64
	OffersByStatus map[OfferStatus]int64
	DemandsByKind  map[DemandType]int64

	AvgOfferSurface  float64
	AvgDemandSurface float64
	AvgOfferPrice    decimal.Decimal
	AvgDemandBudget  decimal.Decimal
}

// NewDashboardStats заполняет все известные ключи нулями, чтобы в ответе были все типы
func NewDashboardStats() *DashboardStats {
	s := &DashboardStats{
		OffersByType:    make(map[PropertyType]int64, len(PropertyTypes)),
		DemandsByType:   make(map[PropertyType]int64, len(PropertyTypes)),
		OffersByStatus:  make(map[OfferStatus]int64, len(OfferStatuses)),
		DemandsByKind:   make(map[DemandType]int64, len(DemandTypes)),
		AvgOfferPrice:   decimal.Zero,
		AvgDemandBudget: decimal.Zero,
	}
	for _, t := range PropertyTypes {
		s.OffersByType[t] = 0
		s.DemandsByType[t] = 0
	}
	for _, st := range OfferStatuses {
		s.OffersByStatus[st] = 0
	}
	for _, k := range DemandTypes {
		s.DemandsByKind[k] = 0
	}
	return s
}
