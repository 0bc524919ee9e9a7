package wire

import (
	"strings"

	"realty-backoffice/internal/core/domain"

	"github.com/shopspring/decimal"
)

// DemandDTO - заявка во внешнем формате
type DemandDTO struct {
	ID                    int64           `json:"id,omitempty"`
	NomClient             string          `json:"nomClient"`
	PrenomClient          string          `json:"prenomClient"`
	TelephoneClient       string          `json:"telephoneClient"`
	TypeDemande           string          `json:"typeDemande"`
	TypeBien              string          `json:"typeBien"`
	SurfaceDemandee       float64         `json:"surfaceDemandee"`
	NbChambres            *int            `json:"nbChambres"`
	EtageSouhaite         *int            `json:"etageSouhaite"`
	PrixSouhaite          decimal.Decimal `json:"prixSouhaite"`
	LocalisationSouhaitee string          `json:"localisationSouhaitee"`
	NotesSupplementaires  string          `json:"notesSupplementaires"`
	CreatedAt             Timestamp       `json:"createdAt"`
}

var DemandFieldNames = map[string]string{
	"clientName":        "nomClient",
	"clientPhone":       "telephoneClient",
	"propertyType":      "typeBien",
	"demandType":        "typeDemande",
	"desiredSurface":    "surfaceDemandee",
	"budget":            "prixSouhaite",
	"bedrooms":          "nbChambres",
	"floor":             "etageSouhaite",
	"preferredLocation": "localisationSouhaitee",
	"notes":             "notesSupplementaires",
}

func NewDemandDTO(dm domain.Demand) DemandDTO {
	first, last := splitName(dm.ClientName)
	return DemandDTO{
		ID:                    dm.ID,
		NomClient:             last,
		PrenomClient:          first,
		TelephoneClient:       dm.ClientPhone,
		TypeDemande:           DemandTypeCode(dm.DemandType),
		TypeBien:              PropertyTypeCode(dm.PropertyType),
		SurfaceDemandee:       dm.DesiredSurface,
		NbChambres:            dm.Bedrooms,
		EtageSouhaite:         dm.Floor,
		PrixSouhaite:          dm.Budget,
		LocalisationSouhaitee: dm.PreferredLocation,
		NotesSupplementaires:  dm.Notes,
		CreatedAt:             Timestamp{dm.CreatedAt},
	}
}

func (d DemandDTO) Demand() domain.Demand {
	return domain.Demand{
		ID:                d.ID,
		ClientName:        joinName(d.PrenomClient, d.NomClient),
		ClientPhone:       strings.TrimSpace(d.TelephoneClient),
		PropertyType:      propertyTypeOrDefault(d.TypeBien),
		DemandType:        demandTypeOrDefault(d.TypeDemande),
		DesiredSurface:    d.SurfaceDemandee,
		Budget:            d.PrixSouhaite,
		Bedrooms:          d.NbChambres,
		Floor:             d.EtageSouhaite,
		PreferredLocation: strings.TrimSpace(d.LocalisationSouhaitee),
		Notes:             d.NotesSupplementaires,
		CreatedAt:         d.CreatedAt.Time,
	}
}

func (d DemandDTO) Draft() domain.DemandDraft {
	return domain.DemandDraft{
		ClientName:        joinName(d.PrenomClient, d.NomClient),
		ClientPhone:       strings.TrimSpace(d.TelephoneClient),
		PropertyType:      DraftPropertyType(d.TypeBien),
		DemandType:        DraftDemandType(d.TypeDemande),
		DesiredSurface:    d.SurfaceDemandee,
		Budget:            d.PrixSouhaite,
		Bedrooms:          d.NbChambres,
		Floor:             d.EtageSouhaite,
		PreferredLocation: strings.TrimSpace(d.LocalisationSouhaitee),
		Notes:             d.NotesSupplementaires,
	}
}

func NewDemandDraftDTO(d domain.DemandDraft) DemandDTO {
	first, last := splitName(d.ClientName)
	return DemandDTO{
		NomClient:             last,
		PrenomClient:          first,
		TelephoneClient:       d.ClientPhone,
		TypeDemande:           DemandTypeCode(d.DemandType),
		TypeBien:              PropertyTypeCode(d.PropertyType),
		SurfaceDemandee:       d.DesiredSurface,
		NbChambres:            d.Bedrooms,
		EtageSouhaite:         d.Floor,
		PrixSouhaite:          d.Budget,
		LocalisationSouhaitee: d.PreferredLocation,
		NotesSupplementaires:  d.Notes,
	}
}
