package tui

import (
	"context"
	"strconv"
	"strings"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"
	"realty-backoffice/internal/wire"

	"github.com/shopspring/decimal"
)

// fieldParser читает значения формы и запоминает поля, которые не разобрались
type fieldParser struct {
	values map[string]string
	errs   map[string]string
}

func newFieldParser(values map[string]string) *fieldParser {
	return &fieldParser{values: values, errs: map[string]string{}}
}

func (p *fieldParser) text(key string) string {
	return strings.TrimSpace(p.values[key])
}

func (p *fieldParser) float(key string) float64 {
	if v := p.optFloat(key); v != nil {
		return *v
	}
	return 0
}

func (p *fieldParser) optFloat(key string) *float64 {
	s := strings.ReplaceAll(p.text(key), ",", ".")
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.errs[key] = "must be a number"
		return nil
	}
	return &f
}

func (p *fieldParser) decimal(key string) decimal.Decimal {
	if v := p.optDecimal(key); v != nil {
		return *v
	}
	return decimal.Zero
}

func (p *fieldParser) optDecimal(key string) *decimal.Decimal {
	s := strings.ReplaceAll(p.text(key), " ", "")
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		p.errs[key] = "must be a number"
		return nil
	}
	return &d
}

func (p *fieldParser) optInt(key string) *int {
	s := p.text(key)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		p.errs[key] = "must be a whole number"
		return nil
	}
	return &n
}

// result объединяет ошибки разбора с ошибкой проверки черновика.
// Для поля, которое не разобралось, остается сообщение разбора.
func (p *fieldParser) result(validateErr error) error {
	if validateErr == nil && len(p.errs) == 0 {
		return nil
	}
	out := &domain.ValidationError{Fields: map[string]string{}}
	if validateErr != nil {
		verr, ok := validateErr.(*domain.ValidationError)
		if !ok {
			return validateErr
		}
		for k, v := range verr.Fields {
			out.Fields[k] = v
		}
	}
	for k, v := range p.errs {
		out.Fields[k] = v
	}
	return out
}

func optIntText(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optDecimalText(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func optFloatText(v *float64) string {
	if v == nil {
		return ""
	}
	return formatSurface(*v)
}

// --- предложения ---

func offerDetails(o domain.Offer) []detailLine {
	return []detailLine{
		{"Owner", o.OwnerName},
		{"Phone", o.OwnerPhone},
		{"Address", o.Address},
		{"City", o.City},
		{"District", o.District},
		{"Type", wire.PropertyTypeCode(o.PropertyType)},
		{"Status", wire.OfferStatusCode(o.Status)},
		{"Surface m²", formatSurface(o.Surface)},
		{"Floor", optIntText(o.Floor)},
		{"Bedrooms", optIntText(o.Bedrooms)},
		{"Price", formatPrice(o.Price)},
		{"Description", o.Description},
		{"Photos", strconv.Itoa(len(o.Photos))},
		{"Created", formatDate(o.CreatedAt)},
	}
}

func offerFields(o domain.Offer) []formField {
	return []formField{
		{"ownerName", "Owner", o.OwnerName},
		{"ownerPhone", "Phone", o.OwnerPhone},
		{"address", "Address", o.Address},
		{"city", "City", o.City},
		{"district", "District", o.District},
		{"propertyType", "Type", string(o.PropertyType)},
		{"surface", "Surface m²", formatSurface(o.Surface)},
		{"floor", "Floor", optIntText(o.Floor)},
		{"price", "Price", o.Price.String()},
		{"bedrooms", "Bedrooms", optIntText(o.Bedrooms)},
		{"description", "Description", o.Description},
		{"status", "Status", string(o.Status)},
	}
}

// offerDraft собирает полный черновик из формы. Фотографии в форме не правятся
// и переходят из исходной записи.
func offerDraft(orig domain.Offer, values map[string]string) (domain.OfferDraft, error) {
	p := newFieldParser(values)
	d := domain.OfferDraft{
		OwnerName:    p.text("ownerName"),
		OwnerPhone:   p.text("ownerPhone"),
		Address:      p.text("address"),
		City:         p.text("city"),
		District:     p.text("district"),
		PropertyType: wire.DraftPropertyType(p.text("propertyType")),
		Surface:      p.float("surface"),
		Floor:        p.optInt("floor"),
		Price:        p.decimal("price"),
		Bedrooms:     p.optInt("bedrooms"),
		Description:  p.text("description"),
		Photos:       append([]string(nil), orig.Photos...),
	}
	if s := p.text("status"); s != "" {
		d.Status = wire.DraftOfferStatus(s)
	}
	return d, p.result(d.Validate())
}

func offerPreparer(update func(context.Context, int64, domain.OfferDraft) (*domain.Offer, error)) func(domain.Offer, map[string]string) (func(context.Context) error, error) {
	if update == nil {
		return nil
	}
	return func(orig domain.Offer, values map[string]string) (func(context.Context) error, error) {
		d, err := offerDraft(orig, values)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) error {
			_, err := update(ctx, orig.ID, d)
			return err
		}, nil
	}
}

// --- заявки ---

func demandDetails(d domain.Demand) []detailLine {
	return []detailLine{
		{"Client", d.ClientName},
		{"Phone", d.ClientPhone},
		{"Demand", wire.DemandTypeCode(d.DemandType)},
		{"Type", wire.PropertyTypeCode(d.PropertyType)},
		{"Location", d.PreferredLocation},
		{"Surface m²", formatSurface(d.DesiredSurface)},
		{"Budget", formatPrice(d.Budget)},
		{"Bedrooms", optIntText(d.Bedrooms)},
		{"Floor", optIntText(d.Floor)},
		{"Notes", d.Notes},
		{"Created", formatDate(d.CreatedAt)},
	}
}

func demandFields(d domain.Demand) []formField {
	return []formField{
		{"clientName", "Client", d.ClientName},
		{"clientPhone", "Phone", d.ClientPhone},
		{"propertyType", "Type", string(d.PropertyType)},
		{"demandType", "Demand", string(d.DemandType)},
		{"desiredSurface", "Surface m²", formatSurface(d.DesiredSurface)},
		{"budget", "Budget", d.Budget.String()},
		{"bedrooms", "Bedrooms", optIntText(d.Bedrooms)},
		{"floor", "Floor", optIntText(d.Floor)},
		{"preferredLocation", "Location", d.PreferredLocation},
		{"notes", "Notes", d.Notes},
	}
}

func demandDraft(values map[string]string) (domain.DemandDraft, error) {
	p := newFieldParser(values)
	d := domain.DemandDraft{
		ClientName:        p.text("clientName"),
		ClientPhone:       p.text("clientPhone"),
		PropertyType:      wire.DraftPropertyType(p.text("propertyType")),
		DemandType:        wire.DraftDemandType(p.text("demandType")),
		DesiredSurface:    p.float("desiredSurface"),
		Budget:            p.decimal("budget"),
		Bedrooms:          p.optInt("bedrooms"),
		Floor:             p.optInt("floor"),
		PreferredLocation: p.text("preferredLocation"),
		Notes:             p.text("notes"),
	}
	return d, p.result(d.Validate())
}

func demandPreparer(update func(context.Context, int64, domain.DemandDraft) (*domain.Demand, error)) func(domain.Demand, map[string]string) (func(context.Context) error, error) {
	if update == nil {
		return nil
	}
	return func(orig domain.Demand, values map[string]string) (func(context.Context) error, error) {
		d, err := demandDraft(values)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) error {
			_, err := update(ctx, orig.ID, d)
			return err
		}, nil
	}
}

// --- диапазоны цены и площади ---

func rangeFields(q listing.Query, priceLabel string) []formField {
	return []formField{
		{"priceMin", priceLabel + " min", optDecimalText(q.PriceMin)},
		{"priceMax", priceLabel + " max", optDecimalText(q.PriceMax)},
		{"surfaceMin", "Surface min", optFloatText(q.SurfaceMin)},
		{"surfaceMax", "Surface max", optFloatText(q.SurfaceMax)},
	}
}

// applyRange переносит границы из формы в запрос. Пустое поле снимает границу.
func applyRange(q listing.Query, values map[string]string) (listing.Query, error) {
	p := newFieldParser(values)
	q.PriceMin = p.optDecimal("priceMin")
	q.PriceMax = p.optDecimal("priceMax")
	q.SurfaceMin = p.optFloat("surfaceMin")
	q.SurfaceMax = p.optFloat("surfaceMax")

	for k, v := range map[string]*decimal.Decimal{"priceMin": q.PriceMin, "priceMax": q.PriceMax} {
		if v != nil && v.IsNegative() {
			p.errs[k] = "must not be negative"
		}
	}
	for k, v := range map[string]*float64{"surfaceMin": q.SurfaceMin, "surfaceMax": q.SurfaceMax} {
		if v != nil && *v < 0 {
			p.errs[k] = "must not be negative"
		}
	}
	if q.PriceMin != nil && q.PriceMax != nil && q.PriceMin.GreaterThan(*q.PriceMax) {
		p.errs["priceMax"] = "must not be below the minimum"
	}
	if q.SurfaceMin != nil && q.SurfaceMax != nil && *q.SurfaceMin > *q.SurfaceMax {
		p.errs["surfaceMax"] = "must not be below the minimum"
	}
	return q, p.result(nil)
}

// rangeLabel - "100000-250000", "≥ 100000", "≤ 250000" или пустая строка
func rangeLabel(lo, hi string) string {
	switch {
	case lo != "" && hi != "":
		return lo + "-" + hi
	case lo != "":
		return "≥ " + lo
	case hi != "":
		return "≤ " + hi
	}
	return ""
}
