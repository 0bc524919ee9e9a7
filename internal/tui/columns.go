package tui

import (
	"strconv"
	"strings"
	"time"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"
	"realty-backoffice/internal/wire"

	"github.com/charmbracelet/bubbles/table"
	"github.com/shopspring/decimal"
)

const allLabel = "all"

func offerColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Owner", Width: 22},
		{Title: "Type", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "City", Width: 14},
		{Title: "District", Width: 14},
		{Title: "m²", Width: 7},
		{Title: "Price", Width: 12},
		{Title: "Created", Width: 10},
	}
}

func offerRow(o domain.Offer) table.Row {
	return table.Row{
		strconv.FormatInt(o.ID, 10),
		o.OwnerName,
		wire.PropertyTypeCode(o.PropertyType),
		wire.OfferStatusCode(o.Status),
		o.City,
		o.District,
		formatSurface(o.Surface),
		formatPrice(o.Price),
		formatDate(o.CreatedAt),
	}
}

func demandColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Client", Width: 22},
		{Title: "Demand", Width: 9},
		{Title: "Type", Width: 12},
		{Title: "Location", Width: 20},
		{Title: "m²", Width: 7},
		{Title: "Budget", Width: 12},
		{Title: "Created", Width: 10},
	}
}

func demandRow(d domain.Demand) table.Row {
	return table.Row{
		strconv.FormatInt(d.ID, 10),
		d.ClientName,
		wire.DemandTypeCode(d.DemandType),
		wire.PropertyTypeCode(d.PropertyType),
		d.PreferredLocation,
		formatSurface(d.DesiredSurface),
		formatPrice(d.Budget),
		formatDate(d.CreatedAt),
	}
}

func newOfferPane(tab int, opts Options, initial listing.Query) *pane[domain.Offer] {
	kinds := []string{allLabel}
	for _, s := range domain.OfferStatuses {
		kinds = append(kinds, string(s))
	}
	return &pane[domain.Offer]{
		tab:         tab,
		name:        "Offres",
		view:        listing.NewView(opts.Offers, listing.OfferDescriptor.ID, initial),
		id:          listing.OfferDescriptor.ID,
		row:         offerRow,
		remove:      opts.DeleteOffer,
		get:         opts.GetOffer,
		details:     offerDetails,
		fields:      offerFields,
		prepare:     offerPreparer(opts.UpdateOffer),
		singular:    "Offer",
		price:       "Price",
		kindOptions: kinds,
		kindName: func(kind string) string {
			if st, ok := wire.ParseOfferStatus(kind); ok {
				return wire.OfferStatusCode(st)
			}
			return allLabel
		},
		table: newTable(offerColumns()),
	}
}

func newDemandPane(tab int, opts Options, initial listing.Query) *pane[domain.Demand] {
	kinds := []string{allLabel}
	for _, d := range domain.DemandTypes {
		kinds = append(kinds, string(d))
	}
	return &pane[domain.Demand]{
		tab:         tab,
		name:        "Demandes",
		view:        listing.NewView(opts.Demands, listing.DemandDescriptor.ID, initial),
		id:          listing.DemandDescriptor.ID,
		row:         demandRow,
		remove:      opts.DeleteDemand,
		get:         opts.GetDemand,
		details:     demandDetails,
		fields:      demandFields,
		prepare:     demandPreparer(opts.UpdateDemand),
		singular:    "Demand",
		price:       "Budget",
		kindOptions: kinds,
		kindName: func(kind string) string {
			if d, ok := wire.ParseDemandType(kind); ok {
				return wire.DemandTypeCode(d)
			}
			return allLabel
		},
		table: newTable(demandColumns()),
	}
}

func newTable(columns []table.Column) table.Model {
	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
}

func typeOptions() []string {
	opts := []string{allLabel}
	for _, t := range domain.PropertyTypes {
		opts = append(opts, string(t))
	}
	return opts
}

func typeLabel(t string) string {
	if pt, ok := wire.ParsePropertyType(t); ok {
		return wire.PropertyTypeCode(pt)
	}
	return allLabel
}

// cycle возвращает значение, следующее за current. Пустое значение считается "all".
func cycle(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	if listing.IsAll(current) {
		current = allLabel
	}
	for i, o := range options {
		if strings.EqualFold(o, current) {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func nextSort(current listing.SortField) listing.SortField {
	for i, f := range listing.SortFields {
		if f == current {
			return listing.SortFields[(i+1)%len(listing.SortFields)]
		}
	}
	return listing.SortFields[0]
}

func formatSurface(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPrice(d decimal.Decimal) string {
	return d.StringFixed(0)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("2006-01-02")
}
