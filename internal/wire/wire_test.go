package wire

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferDTO(t *testing.T) {
	t.Run("Should map a legacy record to the canonical offer", func(t *testing.T) {
		body := `{
			"id": 7,
			"nomProprietaire": "El Amrani",
			"prenomProprietaire": "Nadia",
			"telephoneProprietaire": "0661223344",
			"adresseBien": "12 rue Tarik",
			"surface": 120.5,
			"typeBien": "VILLA",
			"prixPropose": 1250000,
			"localisationVille": "Rabat",
			"localisationQuartier": "Agdal",
			"statutOffre": "RESERVE",
			"photos": ["/uploads/2025/01/a.jpg"],
			"createdAt": "2025-01-03T10:15:30.123"
		}`
		var dto OfferDTO
		require.NoError(t, json.Unmarshal([]byte(body), &dto))

		o := dto.Offer()

		assert.Equal(t, int64(7), o.ID)
		assert.Equal(t, "Nadia El Amrani", o.OwnerName)
		assert.Equal(t, domain.PropertyVilla, o.PropertyType)
		assert.Equal(t, domain.StatusReserved, o.Status)
		assert.True(t, o.Price.Equal(decimal.NewFromInt(1250000)))
		assert.Equal(t, 120.5, o.Surface)
		assert.Equal(t, "/uploads/2025/01/a.jpg", o.Cover())
		assert.Equal(t, time.Date(2025, 1, 3, 10, 15, 30, 123000000, time.UTC), o.CreatedAt)
	})

	t.Run("Should default missing fields to safe zero values", func(t *testing.T) {
		var dto OfferDTO
		require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "typeBien": "CHATEAU", "createdAt": null}`), &dto))

		o := dto.Offer()

		assert.Equal(t, "", o.OwnerName)
		assert.Equal(t, 0.0, o.Surface)
		assert.True(t, o.Price.IsZero())
		assert.NotNil(t, o.Photos)
		assert.Empty(t, o.Photos)
		assert.Nil(t, o.Floor)
		assert.Equal(t, domain.PropertyApartment, o.PropertyType)
		assert.Equal(t, domain.StatusAvailable, o.Status)
		assert.True(t, o.CreatedAt.IsZero())
	})

	t.Run("Should write legacy codes and split the owner name", func(t *testing.T) {
		o := domain.Offer{
			ID:           3,
			OwnerName:    "Nadia El Amrani",
			PropertyType: domain.PropertyOffice,
			Status:       domain.StatusSold,
			Price:        decimal.NewFromInt(900),
		}

		dto := NewOfferDTO(o)

		assert.Equal(t, "Nadia", dto.PrenomProprietaire)
		assert.Equal(t, "El Amrani", dto.NomProprietaire)
		assert.Equal(t, "BUREAUX", dto.TypeBien)
		assert.Equal(t, "VENDU", dto.StatutOffre)
		assert.NotNil(t, dto.Photos)
	})

	t.Run("Should keep an unknown type in the draft so validation rejects it", func(t *testing.T) {
		dto := OfferDTO{
			NomProprietaire:       "Alaoui",
			TelephoneProprietaire: "0600000000",
			AdresseBien:           "Bd Zerktouni",
			LocalisationVille:     "Casablanca",
			TypeBien:              "CHATEAU",
			Surface:               80,
			PrixPropose:           decimal.NewFromInt(500000),
		}

		err := dto.Draft().Validate()

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "propertyType")
		assert.Contains(t, RenameFields(verr.Fields, OfferFieldNames), "typeBien")
	})

	t.Run("Should leave the status empty when the body omits it", func(t *testing.T) {
		draft := OfferDTO{TypeBien: "APPARTEMENT"}.Draft()

		assert.Equal(t, domain.OfferStatus(""), draft.Status)
		assert.Equal(t, domain.PropertyApartment, draft.PropertyType)
	})
}

func TestDemandDTO(t *testing.T) {
	t.Run("Should map a legacy demand", func(t *testing.T) {
		var dto DemandDTO
		require.NoError(t, json.Unmarshal([]byte(`{
			"id": 4, "nomClient": "Bennani", "prenomClient": "Omar",
			"typeDemande": "LOCATION", "typeBien": "APPARTEMENT",
			"surfaceDemandee": 90, "prixSouhaite": "7500.50",
			"localisationSouhaitee": "Maarif"
		}`), &dto))

		dm := dto.Demand()

		assert.Equal(t, "Omar Bennani", dm.ClientName)
		assert.Equal(t, domain.DemandRental, dm.DemandType)
		assert.Equal(t, "7500.5", dm.Budget.String())
		assert.Equal(t, "Maarif", dm.PreferredLocation)
	})

	t.Run("Should write the demand with legacy codes", func(t *testing.T) {
		dto := NewDemandDTO(domain.Demand{ClientName: "Omar", DemandType: domain.DemandPurchase, PropertyType: domain.PropertyLand})

		assert.Equal(t, "ACHAT", dto.TypeDemande)
		assert.Equal(t, "TERRAIN", dto.TypeBien)
		assert.Equal(t, "Omar", dto.NomClient)
		assert.Equal(t, "", dto.PrenomClient)
	})
}

func TestRenameFields(t *testing.T) {
	t.Run("Should rename known fields and keep the rest", func(t *testing.T) {
		got := RenameFields(map[string]string{"price": "must be positive", "other": "is invalid"}, OfferFieldNames)

		assert.Equal(t, map[string]string{"prixPropose": "must be positive", "other": "is invalid"}, got)
	})
}

func TestPageDTO(t *testing.T) {
	t.Run("Should use a zero-based page number on the wire", func(t *testing.T) {
		res := listing.Result[int]{Items: []int{1, 2}, Page: 3, PageSize: 2, PageCount: 4, Total: 8}

		page := NewPageDTO(res, func(i int) int { return i * 10 })

		assert.Equal(t, 2, page.Number)
		assert.Equal(t, []int{10, 20}, page.Content)

		back := PageResult(page, func(i int) int { return i / 10 })
		assert.Equal(t, res, back)
	})

	t.Run("Should take totals from the envelope as they are", func(t *testing.T) {
		var page PageDTO[OfferDTO]
		require.NoError(t, json.Unmarshal([]byte(`{"content":[{"id":1}],"totalElements":41,"totalPages":2,"number":0,"size":30}`), &page))

		res := PageResult(page, OfferDTO.Offer)

		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 2, res.PageCount)
		assert.Equal(t, 41, res.Total)
		assert.Len(t, res.Items, 1)
	})
}

func TestEncodeQuery(t *testing.T) {
	t.Run("Should omit every default value", func(t *testing.T) {
		v := EncodeQuery(domain.EntityOffer, listing.Query{
			Page:     1,
			PageSize: listing.DefaultServerPageSize,
			Sort:     listing.SortCreatedAt,
			Desc:     true,
			Type:     "all",
			City:     " ",
		})

		assert.Empty(t, v)
	})

	t.Run("Should emit set filters with legacy names", func(t *testing.T) {
		priceMin := decimal.NewFromInt(150000)
		surf := 60.5
		v := EncodeQuery(domain.EntityOffer, listing.Query{
			Page:       3,
			PageSize:   10,
			Sort:       listing.SortPrice,
			Search:     "mer",
			Type:       "villa",
			Kind:       "available",
			District:   "Agdal",
			PriceMin:   &priceMin,
			SurfaceMin: &surf,
		})

		assert.Equal(t, url.Values{
			"page":          {"2"},
			"size":          {"10"},
			"sortBy":        {"prixPropose"},
			"sortDir":       {"asc"},
			"searchKeyword": {"mer"},
			"typeBien":      {"VILLA"},
			"statutOffre":   {"DISPONIBLE"},
			"quartier":      {"Agdal"},
			"prixMin":       {"150000"},
			"surfaceMin":    {"60.5"},
		}, v)
	})

	t.Run("Should use demand names for demands", func(t *testing.T) {
		v := EncodeQuery(domain.EntityDemand, listing.Query{Sort: listing.SortPrice, Desc: true, Kind: "rental"})

		assert.Equal(t, "prixSouhaite", v.Get("sortBy"))
		assert.Equal(t, "desc", v.Get("sortDir"))
		assert.Equal(t, "LOCATION", v.Get("typeDemande"))
	})
}

func TestDecodeQuery(t *testing.T) {
	t.Run("Should read an encoded query back", func(t *testing.T) {
		priceMin := decimal.NewFromInt(100)
		in := listing.Query{
			Page:     2,
			PageSize: 10,
			Sort:     listing.SortSurface,
			Search:   "vue",
			Type:     "land",
			Kind:     "purchase",
			City:     "Fès",
			PriceMin: &priceMin,
		}

		out, err := DecodeQuery(domain.EntityDemand, EncodeQuery(domain.EntityDemand, in), listing.DefaultServerPageSize)

		require.NoError(t, err)
		assert.True(t, in.SameFilters(out))
		assert.Equal(t, 2, out.Page)
	})

	t.Run("Should apply defaults for an empty query", func(t *testing.T) {
		q, err := DecodeQuery(domain.EntityOffer, url.Values{}, listing.DefaultServerPageSize)

		require.NoError(t, err)
		assert.Equal(t, 1, q.Page)
		assert.Equal(t, listing.DefaultServerPageSize, q.PageSize)
		assert.Equal(t, listing.SortCreatedAt, q.Sort)
		assert.True(t, q.Desc)
	})

	t.Run("Should apply sortDir without sortBy to the creation date", func(t *testing.T) {
		asc, err := DecodeQuery(domain.EntityOffer, url.Values{"sortDir": {"asc"}}, listing.DefaultServerPageSize)
		require.NoError(t, err)
		byPrice, err := DecodeQuery(domain.EntityOffer, url.Values{"sortBy": {"price"}}, listing.DefaultServerPageSize)
		require.NoError(t, err)

		assert.Equal(t, listing.SortCreatedAt, asc.Sort)
		assert.False(t, asc.Desc)
		assert.Equal(t, listing.SortPrice, byPrice.Sort)
		assert.True(t, byPrice.Desc)
	})

	t.Run("Should report every malformed parameter", func(t *testing.T) {
		v := url.Values{
			"page":     {"-1"},
			"prixMin":  {"abc"},
			"typeBien": {"CHATEAU"},
			"sortBy":   {"color"},
		}

		_, err := DecodeQuery(domain.EntityOffer, v, listing.DefaultServerPageSize)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 4)
		assert.Contains(t, verr.Fields, "prixMin")
	})
}

func TestTimestamp(t *testing.T) {
	t.Run("Should accept zoned and zoneless values", func(t *testing.T) {
		var a, b Timestamp
		require.NoError(t, json.Unmarshal([]byte(`"2025-02-01T08:00:00Z"`), &a))
		require.NoError(t, json.Unmarshal([]byte(`"2025-02-01T08:00:00"`), &b))

		assert.True(t, a.Equal(b.Time))
	})

	t.Run("Should reject an unknown format", func(t *testing.T) {
		var ts Timestamp
		assert.Error(t, json.Unmarshal([]byte(`"01/02/2025"`), &ts))
	})
}
