package wire

import (
	"strings"

	"realty-backoffice/internal/core/domain"
)

// Коды перечислений во внешнем формате
var (
	propertyTypeCodes = map[domain.PropertyType]string{
		domain.PropertyApartment:  "APPARTEMENT",
		domain.PropertyVilla:      "VILLA",
		domain.PropertyOffice:     "BUREAUX",
		domain.PropertyCommercial: "COMMERCE",
		domain.PropertyLand:       "TERRAIN",
	}
	offerStatusCodes = map[domain.OfferStatus]string{
		domain.StatusAvailable: "DISPONIBLE",
		domain.StatusReserved:  "RESERVE",
		domain.StatusSold:      "VENDU",
	}
	demandTypeCodes = map[domain.DemandType]string{
		domain.DemandPurchase: "ACHAT",
		domain.DemandRental:   "LOCATION",
	}
)

func lookup[K ~string](codes map[K]string, s string) (K, bool) {
	s = strings.TrimSpace(s)
	for k, code := range codes {
		if strings.EqualFold(code, s) || strings.EqualFold(string(k), s) {
			return k, true
		}
	}
	return "", false
}

func PropertyTypeCode(t domain.PropertyType) string { return propertyTypeCodes[t] }
func OfferStatusCode(s domain.OfferStatus) string   { return offerStatusCodes[s] }
func DemandTypeCode(t domain.DemandType) string     { return demandTypeCodes[t] }

// ParsePropertyType принимает и внешний код ("APPARTEMENT"), и каноническое имя ("apartment")
func ParsePropertyType(s string) (domain.PropertyType, bool) { return lookup(propertyTypeCodes, s) }
func ParseOfferStatus(s string) (domain.OfferStatus, bool)   { return lookup(offerStatusCodes, s) }
func ParseDemandType(s string) (domain.DemandType, bool)     { return lookup(demandTypeCodes, s) }

// Нестрогие варианты для чтения записей: неизвестное значение заменяется значением по умолчанию

func propertyTypeOrDefault(s string) domain.PropertyType {
	if t, ok := ParsePropertyType(s); ok {
		return t
	}
	return domain.PropertyApartment
}

func offerStatusOrDefault(s string) domain.OfferStatus {
	if st, ok := ParseOfferStatus(s); ok {
		return st
	}
	return domain.StatusAvailable
}

func demandTypeOrDefault(s string) domain.DemandType {
	if t, ok := ParseDemandType(s); ok {
		return t
	}
	return domain.DemandPurchase
}

// Для черновиков неизвестное значение сохраняется как есть, его отклонит проверка черновика

func DraftPropertyType(s string) domain.PropertyType {
	if t, ok := ParsePropertyType(s); ok {
		return t
	}
	return domain.PropertyType(strings.TrimSpace(s))
}

func DraftOfferStatus(s string) domain.OfferStatus {
	if st, ok := ParseOfferStatus(s); ok {
		return st
	}
	return domain.OfferStatus(strings.TrimSpace(s))
}

func DraftDemandType(s string) domain.DemandType {
	if t, ok := ParseDemandType(s); ok {
		return t
	}
	return domain.DemandType(strings.TrimSpace(s))
}
