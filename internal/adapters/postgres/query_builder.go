package postgres

import (
	"fmt"
	"strings"

	"realty-backoffice/internal/core/listing"

	"github.com/shopspring/decimal"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

func (qb *queryBuilder) AddFloatFilter(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) AddDecimalFilter(fieldName string, min *decimal.Decimal, max *decimal.Decimal) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

// AddEqualsFilter сравнивает без учета регистра и диакритики; "all" и пустая строка пропускаются
func (qb *queryBuilder) AddEqualsFilter(fieldName string, value string) {
	if fieldName == "" || listing.IsAll(value) {
		return
	}
	qb.addCondition("lower(unaccent(%s)) = lower(unaccent($%d))", fieldName, strings.TrimSpace(value))
}

// AddSearch ищет подстроку хотя бы в одном из полей, один аргумент на все поля
func (qb *queryBuilder) AddSearch(needle string, fieldNames ...string) {
	needle = strings.TrimSpace(needle)
	if needle == "" || len(fieldNames) == 0 {
		return
	}
	parts := make([]string, 0, len(fieldNames))
	for _, f := range fieldNames {
		parts = append(parts, fmt.Sprintf("unaccent(%s) ILIKE unaccent($%d)", f, qb.argId))
	}
	qb.conditions = append(qb.conditions, "("+strings.Join(parts, " OR ")+")")
	qb.args = append(qb.args, "%"+escapeLike(needle)+"%")
	qb.argId++
}

// build создает WHERE и список аргументов
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// listingColumns - какие колонки таблицы отвечают полям listing.Query
type listingColumns struct {
	search   []string
	typ      string
	kind     string
	city     string
	district string
	price    string
	surface  string
	id       string
	sort     map[listing.SortField]string
}

var offerColumns = listingColumns{
	search:   []string{"o.owner_name", "o.owner_phone", "o.address", "o.city", "o.district", "o.description"},
	typ:      "o.property_type",
	kind:     "o.status",
	city:     "o.city",
	district: "o.district",
	price:    "o.price",
	surface:  "o.surface",
	id:       "o.id",
	sort: map[listing.SortField]string{
		listing.SortPrice:     "o.price",
		listing.SortSurface:   "o.surface",
		listing.SortCreatedAt: "o.created_at",
	},
}

// у заявки нет района, город ищется в желаемом местоположении
var demandColumns = listingColumns{
	search:  []string{"d.client_name", "d.client_phone", "d.preferred_location", "d.notes"},
	typ:     "d.property_type",
	kind:    "d.demand_type",
	city:    "d.preferred_location",
	price:   "d.budget",
	surface: "d.desired_surface",
	id:      "d.id",
	sort: map[listing.SortField]string{
		listing.SortPrice:     "d.budget",
		listing.SortSurface:   "d.desired_surface",
		listing.SortCreatedAt: "d.created_at",
	},
}

// applyFilters - разбирает запрос списка и строит WHERE
func applyFilters(q listing.Query, cols listingColumns) (string, []interface{}) {
	qb := newQueryBuilder()

	qb.AddSearch(q.Search, cols.search...)
	qb.AddEqualsFilter(cols.typ, q.Type)
	qb.AddEqualsFilter(cols.kind, q.Kind)
	qb.AddEqualsFilter(cols.city, q.City)
	qb.AddEqualsFilter(cols.district, q.District)
	qb.AddDecimalFilter(cols.price, q.PriceMin, q.PriceMax)
	qb.AddFloatFilter(cols.surface, q.SurfaceMin, q.SurfaceMax)

	return qb.build()
}

// orderClause - сортировка с ID вторым ключом, чтобы страницы не пересекались
func orderClause(q listing.Query, cols listingColumns) string {
	column, ok := cols.sort[q.Sort]
	if !ok {
		return fmt.Sprintf("ORDER BY %s DESC, %s DESC", cols.sort[listing.SortCreatedAt], cols.id)
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, %s %s", column, dir, cols.id, dir)
}

// limitOffset добавляет LIMIT/OFFSET к аргументам, страницы считаются с 1
func limitOffset(q listing.Query, args []interface{}) (string, []interface{}) {
	offset := (q.Page - 1) * q.PageSize
	if offset < 0 {
		offset = 0
	}
	clause := fmt.Sprintf("LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	return clause, append(append([]interface{}{}, args...), q.PageSize, offset)
}
