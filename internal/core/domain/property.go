package domain

import "strings"

// PropertyType - тип объекта недвижимости
type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyVilla      PropertyType = "villa"
	PropertyOffice     PropertyType = "office"
	PropertyCommercial PropertyType = "commercial"
	PropertyLand       PropertyType = "land"
)

// PropertyTypes в порядке отображения
var PropertyTypes = []PropertyType{
	PropertyApartment,
	PropertyVilla,
	PropertyOffice,
	PropertyCommercial,
	PropertyLand,
}

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyApartment, PropertyVilla, PropertyOffice, PropertyCommercial, PropertyLand:
		return true
	}
	return false
}

// ParsePropertyType разбирает каноническое имя без учета регистра
func ParsePropertyType(s string) (PropertyType, bool) {
	t := PropertyType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

// OfferStatus - состояние предложения
type OfferStatus string

const (
	StatusAvailable OfferStatus = "available"
	StatusReserved  OfferStatus = "reserved"
	StatusSold      OfferStatus = "sold"
)

var OfferStatuses = []OfferStatus{StatusAvailable, StatusReserved, StatusSold}

func (s OfferStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold:
		return true
	}
	return false
}

func ParseOfferStatus(s string) (OfferStatus, bool) {
	st := OfferStatus(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

// DemandType - цель обращения клиента
type DemandType string

const (
	DemandPurchase DemandType = "purchase"
	DemandRental   DemandType = "rental"
)

var DemandTypes = []DemandType{DemandPurchase, DemandRental}

func (d DemandType) Valid() bool {
	return d == DemandPurchase || d == DemandRental
}

func ParseDemandType(s string) (DemandType, bool) {
	d := DemandType(strings.ToLower(strings.TrimSpace(s)))
	return d, d.Valid()
}
