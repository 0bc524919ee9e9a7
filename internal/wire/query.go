package wire

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"

	"github.com/shopspring/decimal"
)

// Параметры запроса списка
const (
	ParamPage     = "page"
	ParamSize     = "size"
	ParamSortBy   = "sortBy"
	ParamSortDir  = "sortDir"
	ParamSearch   = "searchKeyword"
	ParamType     = "typeBien"
	ParamStatus   = "statutOffre"
	ParamDemand   = "typeDemande"
	ParamCity     = "ville"
	ParamDistrict = "quartier"
	ParamPriceMin = "prixMin"
	ParamPriceMax = "prixMax"
	ParamSurfMin  = "surfaceMin"
	ParamSurfMax  = "surfaceMax"
)

func kindParam(entity domain.EntityKind) string {
	if entity == domain.EntityDemand {
		return ParamDemand
	}
	return ParamStatus
}

func sortFieldCode(entity domain.EntityKind, f listing.SortField) string {
	switch {
	case f == listing.SortPrice && entity == domain.EntityDemand:
		return "prixSouhaite"
	case f == listing.SortPrice:
		return "prixPropose"
	case f == listing.SortSurface && entity == domain.EntityDemand:
		return "surfaceDemandee"
	case f == listing.SortSurface:
		return "surface"
	default:
		return "createdAt"
	}
}

func kindCode(entity domain.EntityKind, kind string) string {
	if entity == domain.EntityDemand {
		if t, ok := ParseDemandType(kind); ok {
			return DemandTypeCode(t)
		}
	} else if st, ok := ParseOfferStatus(kind); ok {
		return OfferStatusCode(st)
	}
	return kind
}

// EncodeQuery переводит запрос в параметры URL. Значения по умолчанию не передаются:
// пустые строки, "all", неуказанные границы, первая страница, стандартный размер и сортировка.
func EncodeQuery(entity domain.EntityKind, q listing.Query) url.Values {
	v := url.Values{}

	if q.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(q.Page-1))
	}
	if q.PageSize > 0 && q.PageSize != listing.DefaultServerPageSize {
		v.Set(ParamSize, strconv.Itoa(q.PageSize))
	}
	if q.Sort.Valid() && !(q.Sort == listing.SortCreatedAt && q.Desc) {
		v.Set(ParamSortBy, sortFieldCode(entity, q.Sort))
		if q.Desc {
			v.Set(ParamSortDir, "desc")
		} else {
			v.Set(ParamSortDir, "asc")
		}
	}

	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set(ParamSearch, s)
	}
	if !listing.IsAll(q.Type) {
		if t, ok := ParsePropertyType(q.Type); ok {
			v.Set(ParamType, PropertyTypeCode(t))
		} else {
			v.Set(ParamType, q.Type)
		}
	}
	if !listing.IsAll(q.Kind) {
		v.Set(kindParam(entity), kindCode(entity, q.Kind))
	}
	if !listing.IsAll(q.City) {
		v.Set(ParamCity, strings.TrimSpace(q.City))
	}
	if !listing.IsAll(q.District) {
		v.Set(ParamDistrict, strings.TrimSpace(q.District))
	}

	if q.PriceMin != nil {
		v.Set(ParamPriceMin, q.PriceMin.String())
	}
	if q.PriceMax != nil {
		v.Set(ParamPriceMax, q.PriceMax.String())
	}
	if q.SurfaceMin != nil {
		v.Set(ParamSurfMin, strconv.FormatFloat(*q.SurfaceMin, 'f', -1, 64))
	}
	if q.SurfaceMax != nil {
		v.Set(ParamSurfMax, strconv.FormatFloat(*q.SurfaceMax, 'f', -1, 64))
	}
	return v
}

// DecodeQuery разбирает параметры URL. Ошибки собираются по параметрам в *domain.ValidationError.
// Результат нормализован с размером страницы defaultPageSize.
func DecodeQuery(entity domain.EntityKind, v url.Values, defaultPageSize int) (listing.Query, error) {
	var q listing.Query
	bad := map[string]string{}

	if s := v.Get(ParamPage); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil || page < 0 {
			bad[ParamPage] = "must be a non-negative integer"
		}
		q.Page = page + 1
	}
	if s := v.Get(ParamSize); s != "" {
		size, err := strconv.Atoi(s)
		if err != nil || size <= 0 {
			bad[ParamSize] = "must be a positive integer"
		}
		q.PageSize = size
	}

	// sortBy по умолчанию createdAt, sortDir по умолчанию desc. Каждый параметр действует сам по себе.
	sortBy, sortDir := v.Get(ParamSortBy), v.Get(ParamSortDir)
	if sortBy != "" || sortDir != "" {
		q.Sort = listing.SortCreatedAt
		if sortBy != "" {
			f, ok := listing.ParseSortField(sortBy)
			if !ok {
				bad[ParamSortBy] = fmt.Sprintf("has unsupported value %q", sortBy)
			}
			q.Sort = f
		}
		q.Desc = !strings.EqualFold(sortDir, "asc")
	}

	q.Search = strings.TrimSpace(v.Get(ParamSearch))

	if s := v.Get(ParamType); !listing.IsAll(s) {
		t, ok := ParsePropertyType(s)
		if !ok {
			bad[ParamType] = fmt.Sprintf("has unsupported value %q", s)
		}
		q.Type = string(t)
	}
	if s := v.Get(kindParam(entity)); !listing.IsAll(s) {
		if entity == domain.EntityDemand {
			t, ok := ParseDemandType(s)
			if !ok {
				bad[ParamDemand] = fmt.Sprintf("has unsupported value %q", s)
			}
			q.Kind = string(t)
		} else {
			st, ok := ParseOfferStatus(s)
			if !ok {
				bad[ParamStatus] = fmt.Sprintf("has unsupported value %q", s)
			}
			q.Kind = string(st)
		}
	}
	if s := strings.TrimSpace(v.Get(ParamCity)); !listing.IsAll(s) {
		q.City = s
	}
	if s := strings.TrimSpace(v.Get(ParamDistrict)); !listing.IsAll(s) {
		q.District = s
	}

	q.PriceMin = decodeDecimal(v, ParamPriceMin, bad)
	q.PriceMax = decodeDecimal(v, ParamPriceMax, bad)
	q.SurfaceMin = decodeFloat(v, ParamSurfMin, bad)
	q.SurfaceMax = decodeFloat(v, ParamSurfMax, bad)

	if len(bad) > 0 {
		return listing.Query{}, &domain.ValidationError{Fields: bad}
	}
	return q.Normalize(defaultPageSize), nil
}

func decodeDecimal(v url.Values, key string, bad map[string]string) *decimal.Decimal {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		bad[key] = "must be a number"
		return nil
	}
	return &d
}

func decodeFloat(v url.Values, key string, bad map[string]string) *float64 {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		bad[key] = "must be a number"
		return nil
	}
	return &f
}
