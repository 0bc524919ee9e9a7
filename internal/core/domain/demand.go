package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Demand - заявка клиента на поиск объекта
type Demand struct {
	ID                int64
	ClientName        string
	ClientPhone       string
	PropertyType      PropertyType
	DemandType        DemandType
	DesiredSurface    float64
	Budget            decimal.Decimal
	Bedrooms          *int
	Floor             *int
	PreferredLocation string
	Notes             string
	CreatedAt         time.Time
}

type DemandDraft struct {
	ClientName        string          `json:"clientName" validate:"notblank"`
	ClientPhone       string          `json:"clientPhone" validate:"notblank"`
	PropertyType      PropertyType    `json:"propertyType" validate:"required,enum"`
	DemandType        DemandType      `json:"demandType" validate:"required,enum"`
	DesiredSurface    float64         `json:"desiredSurface" validate:"gt=0"`
	Budget            decimal.Decimal `json:"budget" validate:"gt=0"`
	Bedrooms          *int            `json:"bedrooms" validate:"omitempty,gte=0"`
	Floor             *int            `json:"floor" validate:"omitempty,gte=0"`
	PreferredLocation string          `json:"preferredLocation" validate:"notblank"`
	Notes             string          `json:"notes"`
}

func (d DemandDraft) Validate() error {
	return validateStruct(d)
}

func NewDemand(d DemandDraft, now time.Time) (*Demand, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	dm := &Demand{CreatedAt: now.UTC()}
	dm.apply(d)
	return dm, nil
}

// Update заменяет изменяемые поля заявки
func (dm *Demand) Update(d DemandDraft) error {
	if err := d.Validate(); err != nil {
		return err
	}
	dm.apply(d)
	return nil
}

func (dm *Demand) apply(d DemandDraft) {
	dm.ClientName = d.ClientName
	dm.ClientPhone = d.ClientPhone
	dm.PropertyType = d.PropertyType
	dm.DemandType = d.DemandType
	dm.DesiredSurface = d.DesiredSurface
	dm.Budget = d.Budget
	dm.Bedrooms = d.Bedrooms
	dm.Floor = d.Floor
	dm.PreferredLocation = d.PreferredLocation
	dm.Notes = d.Notes
}

func (dm *Demand) Normalize() {
	if !dm.PropertyType.Valid() {
		dm.PropertyType = PropertyApartment
	}
	if !dm.DemandType.Valid() {
		dm.DemandType = DemandPurchase
	}
}

func (dm Demand) Draft() DemandDraft {
	return DemandDraft{
		ClientName:        dm.ClientName,
		ClientPhone:       dm.ClientPhone,
		PropertyType:      dm.PropertyType,
		DemandType:        dm.DemandType,
		DesiredSurface:    dm.DesiredSurface,
		Budget:            dm.Budget,
		Bedrooms:          dm.Bedrooms,
		Floor:             dm.Floor,
		PreferredLocation: dm.PreferredLocation,
		Notes:             dm.Notes,
	}
}
