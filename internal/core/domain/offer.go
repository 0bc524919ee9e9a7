package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer - предложение собственника
type Offer struct {
	ID           int64
	OwnerName    string
	OwnerPhone   string
	Address      string
	City         string
	District     string
	PropertyType PropertyType
	Surface      float64
	Floor        *int
	Price        decimal.Decimal
	Bedrooms     *int
	Description  string
	Status       OfferStatus
	Photos       []string // первая фотография - обложка
	CreatedAt    time.Time
}

// OfferDraft - данные формы создания и редактирования
type OfferDraft struct {
	OwnerName    string          `json:"ownerName" validate:"notblank"`
	OwnerPhone   string          `json:"ownerPhone" validate:"notblank"`
	Address      string          `json:"address" validate:"notblank"`
	City         string          `json:"city" validate:"notblank"`
	District     string          `json:"district"`
	PropertyType PropertyType    `json:"propertyType" validate:"required,enum"`
	Surface      float64         `json:"surface" validate:"gt=0"`
	Floor        *int            `json:"floor" validate:"omitempty,gte=0"`
	Price        decimal.Decimal `json:"price" validate:"gt=0"`
	Bedrooms     *int            `json:"bedrooms" validate:"omitempty,gte=0"`
	Description  string          `json:"description"`
	Status       OfferStatus     `json:"status" validate:"omitempty,enum"`
	Photos       []string        `json:"photos"`
}

// Validate проверяет обязательные поля и положительность чисел
func (d OfferDraft) Validate() error {
	return validateStruct(d)
}

// NewOffer создает предложение из проверенного черновика
func NewOffer(d OfferDraft, now time.Time) (*Offer, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	o := &Offer{CreatedAt: now.UTC()}
	o.apply(d)
	if o.Status == "" {
		o.Status = StatusAvailable
	}
	o.Normalize()
	return o, nil
}

// Update заменяет все изменяемые поля. ID и CreatedAt не меняются.
func (o *Offer) Update(d OfferDraft) error {
	if err := d.Validate(); err != nil {
		return err
	}
	status, photos := o.Status, o.Photos
	o.apply(d)
	if d.Status == "" {
		o.Status = status
	}
	if d.Photos == nil {
		o.Photos = photos
	}
	o.Normalize()
	return nil
}

func (o *Offer) apply(d OfferDraft) {
	o.OwnerName = d.OwnerName
	o.OwnerPhone = d.OwnerPhone
	o.Address = d.Address
	o.City = d.City
	o.District = d.District
	o.PropertyType = d.PropertyType
	o.Surface = d.Surface
	o.Floor = d.Floor
	o.Price = d.Price
	o.Bedrooms = d.Bedrooms
	o.Description = d.Description
	o.Status = d.Status
	o.Photos = append([]string(nil), d.Photos...)
}

// Normalize приводит необязательные поля к безопасным значениям
func (o *Offer) Normalize() {
	if o.Photos == nil {
		o.Photos = []string{}
	}
	if !o.PropertyType.Valid() {
		o.PropertyType = PropertyApartment
	}
	if !o.Status.Valid() {
		o.Status = StatusAvailable
	}
}

// Cover - обложка или пустая строка, если фотографий нет
func (o Offer) Cover() string {
	if len(o.Photos) == 0 {
		return ""
	}
	return o.Photos[0]
}

// Draft возвращает черновик с текущими значениями, для формы редактирования
func (o Offer) Draft() OfferDraft {
	return OfferDraft{
		OwnerName:    o.OwnerName,
		OwnerPhone:   o.OwnerPhone,
		Address:      o.Address,
		City:         o.City,
		District:     o.District,
		PropertyType: o.PropertyType,
		Surface:      o.Surface,
		Floor:        o.Floor,
		Price:        o.Price,
		Bedrooms:     o.Bedrooms,
		Description:  o.Description,
		Status:       o.Status,
		Photos:       append([]string(nil), o.Photos...),
	}
}
