package wire

import (
	"strings"

	"realty-backoffice/internal/core/domain"

	"github.com/shopspring/decimal"
)

// OfferDTO - предложение во внешнем формате
type OfferDTO struct {
	ID                    int64           `json:"id,omitempty"`
	NomProprietaire       string          `json:"nomProprietaire"`
	PrenomProprietaire    string          `json:"prenomProprietaire"`
	TelephoneProprietaire string          `json:"telephoneProprietaire"`
	AdresseBien           string          `json:"adresseBien"`
	Surface               float64         `json:"surface"`
	Etage                 *int            `json:"etage"`
	TypeBien              string          `json:"typeBien"`
	PrixPropose           decimal.Decimal `json:"prixPropose"`
	LocalisationVille     string          `json:"localisationVille"`
	LocalisationQuartier  string          `json:"localisationQuartier"`
	DescriptionBien       string          `json:"descriptionBien"`
	NbChambresOffre       *int            `json:"nbChambresOffre"`
	StatutOffre           string          `json:"statutOffre,omitempty"`
	Photos                []string        `json:"photos"`
	CreatedAt             Timestamp       `json:"createdAt"`
}

// OfferFieldNames переводит имена полей черновика во внешние имена для ошибок проверки
var OfferFieldNames = map[string]string{
	"ownerName":    "nomProprietaire",
	"ownerPhone":   "telephoneProprietaire",
	"address":      "adresseBien",
	"city":         "localisationVille",
	"district":     "localisationQuartier",
	"propertyType": "typeBien",
	"surface":      "surface",
	"floor":        "etage",
	"price":        "prixPropose",
	"bedrooms":     "nbChambresOffre",
	"description":  "descriptionBien",
	"status":       "statutOffre",
}

func NewOfferDTO(o domain.Offer) OfferDTO {
	first, last := splitName(o.OwnerName)
	photos := o.Photos
	if photos == nil {
		photos = []string{}
	}
	return OfferDTO{
		ID:                    o.ID,
		NomProprietaire:       last,
		PrenomProprietaire:    first,
		TelephoneProprietaire: o.OwnerPhone,
		AdresseBien:           o.Address,
		Surface:               o.Surface,
		Etage:                 o.Floor,
		TypeBien:              PropertyTypeCode(o.PropertyType),
		PrixPropose:           o.Price,
		LocalisationVille:     o.City,
		LocalisationQuartier:  o.District,
		DescriptionBien:       o.Description,
		NbChambresOffre:       o.Bedrooms,
		StatutOffre:           OfferStatusCode(o.Status),
		Photos:                photos,
		CreatedAt:             Timestamp{o.CreatedAt},
	}
}

// Offer переводит запись из внешнего формата. Отсутствующие поля получают нулевые значения.
func (d OfferDTO) Offer() domain.Offer {
	o := domain.Offer{
		ID:           d.ID,
		OwnerName:    joinName(d.PrenomProprietaire, d.NomProprietaire),
		OwnerPhone:   strings.TrimSpace(d.TelephoneProprietaire),
		Address:      strings.TrimSpace(d.AdresseBien),
		City:         strings.TrimSpace(d.LocalisationVille),
		District:     strings.TrimSpace(d.LocalisationQuartier),
		PropertyType: propertyTypeOrDefault(d.TypeBien),
		Surface:      d.Surface,
		Floor:        d.Etage,
		Price:        d.PrixPropose,
		Bedrooms:     d.NbChambresOffre,
		Description:  d.DescriptionBien,
		Status:       offerStatusOrDefault(d.StatutOffre),
		Photos:       append([]string{}, d.Photos...),
		CreatedAt:    d.CreatedAt.Time,
	}
	return o
}

// Draft - черновик из тела запроса создания или изменения
func (d OfferDTO) Draft() domain.OfferDraft {
	draft := domain.OfferDraft{
		OwnerName:    joinName(d.PrenomProprietaire, d.NomProprietaire),
		OwnerPhone:   strings.TrimSpace(d.TelephoneProprietaire),
		Address:      strings.TrimSpace(d.AdresseBien),
		City:         strings.TrimSpace(d.LocalisationVille),
		District:     strings.TrimSpace(d.LocalisationQuartier),
		PropertyType: DraftPropertyType(d.TypeBien),
		Surface:      d.Surface,
		Floor:        d.Etage,
		Price:        d.PrixPropose,
		Bedrooms:     d.NbChambresOffre,
		Description:  d.DescriptionBien,
		Photos:       d.Photos,
	}
	if d.StatutOffre != "" {
		draft.Status = DraftOfferStatus(d.StatutOffre)
	}
	return draft
}

// NewOfferDraftDTO - тело запроса для черновика, используется клиентом
func NewOfferDraftDTO(d domain.OfferDraft) OfferDTO {
	first, last := splitName(d.OwnerName)
	dto := OfferDTO{
		NomProprietaire:       last,
		PrenomProprietaire:    first,
		TelephoneProprietaire: d.OwnerPhone,
		AdresseBien:           d.Address,
		Surface:               d.Surface,
		Etage:                 d.Floor,
		TypeBien:              PropertyTypeCode(d.PropertyType),
		PrixPropose:           d.Price,
		LocalisationVille:     d.City,
		LocalisationQuartier:  d.District,
		DescriptionBien:       d.Description,
		NbChambresOffre:       d.Bedrooms,
		Photos:                d.Photos,
	}
	if d.Status != "" {
		dto.StatutOffre = OfferStatusCode(d.Status)
	}
	return dto
}

// StatusPatchDTO - тело PATCH /offres/{id}/status
type StatusPatchDTO struct {
	StatutOffre string `json:"statutOffre"`
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// splitName делит полное имя по первому пробелу: "Nadia El Amrani" -> "Nadia", "El Amrani"
func splitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	first, last, found := strings.Cut(full, " ")
	if !found {
		return "", full
	}
	return first, strings.TrimSpace(last)
}
