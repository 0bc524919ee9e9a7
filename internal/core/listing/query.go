package listing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SortField - поле сортировки списка
type SortField string

const (
	SortPrice     SortField = "price"
	SortSurface   SortField = "surface"
	SortCreatedAt SortField = "createdAt"
)

var SortFields = []SortField{SortCreatedAt, SortPrice, SortSurface}

func (f SortField) Valid() bool {
	return f == SortPrice || f == SortSurface || f == SortCreatedAt
}

// ParseSortField принимает и канонические имена, и имена старого API
func ParseSortField(s string) (SortField, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price", "prixpropose", "prixsouhaite", "budget":
		return SortPrice, true
	case "surface", "surfacedemandee", "desiredsurface":
		return SortSurface, true
	case "createdat", "created_at", "date":
		return SortCreatedAt, true
	}
	return "", false
}

const (
	DefaultServerPageSize = 30
	DefaultLoadedPageSize = 50
	MaxPageSize           = 100
)

// Query - единое описание того, что показать в списке.
// Page считается с 1.
type Query struct {
	Search   string
	Type     string // тип объекта
	Kind     string // статус предложения или тип заявки
	City     string
	District string

	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	SurfaceMin *float64
	SurfaceMax *float64

	Sort SortField
	Desc bool

	Page     int
	PageSize int
}

// IsAll - значение фильтра, которое означает "без фильтра"
func IsAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "all")
}

// Normalize подставляет значения по умолчанию и зажимает размер страницы
func (q Query) Normalize(defaultPageSize int) Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	if !q.Sort.Valid() {
		q.Sort = SortCreatedAt
		q.Desc = true
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// SameFilters сравнивает все, кроме номера страницы
func (q Query) SameFilters(o Query) bool {
	return q.Search == o.Search &&
		q.Type == o.Type &&
		q.Kind == o.Kind &&
		q.City == o.City &&
		q.District == o.District &&
		sameDecimal(q.PriceMin, o.PriceMin) &&
		sameDecimal(q.PriceMax, o.PriceMax) &&
		sameFloat(q.SurfaceMin, o.SurfaceMin) &&
		sameFloat(q.SurfaceMax, o.SurfaceMax) &&
		q.Sort == o.Sort &&
		q.Desc == o.Desc &&
		q.PageSize == o.PageSize
}

func sameDecimal(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sameFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Result - одна страница списка
type Result[T any] struct {
	Items     []T
	Page      int
	PageSize  int
	PageCount int
	Total     int
}

// PageCount - число страниц, 0 для пустого списка
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
