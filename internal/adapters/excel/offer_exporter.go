package excel_adapter

import (
	"fmt"
	"io"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/wire"

	"github.com/xuri/excelize/v2"
)

const offersSheet = "Offres"

// столбцы выгрузки и их ширина
var offerColumns = []struct {
	header string
	width  float64
}{
	{"ID", 8},
	{"Propriétaire", 24},
	{"Téléphone", 16},
	{"Adresse", 30},
	{"Ville", 16},
	{"Quartier", 16},
	{"Type", 14},
	{"Surface (m²)", 12},
	{"Étage", 8},
	{"Prix", 14},
	{"Chambres", 10},
	{"Statut", 12},
	{"Photos", 8},
	{"Créé le", 18},
}

// OfferExporter пишет предложения в xlsx
type OfferExporter struct{}

func NewOfferExporter() *OfferExporter {
	return &OfferExporter{}
}

func (e *OfferExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *OfferExporter) FileExtension() string { return ".xlsx" }

func (e *OfferExporter) WriteOffers(w io.Writer, offers []domain.Offer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", offersSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range offerColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(offersSheet, cell, col.header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(offersSheet, name, name, col.width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(offerColumns), 1)
	if err := f.SetCellStyle(offersSheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for i, o := range offers {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(offersSheet, cell, offerRow(o)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(offersSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func offerRow(o domain.Offer) *[]interface{} {
	price, _ := o.Price.Float64()
	row := []interface{}{
		o.ID,
		o.OwnerName,
		o.OwnerPhone,
		o.Address,
		o.City,
		o.District,
		wire.PropertyTypeCode(o.PropertyType),
		o.Surface,
		optionalInt(o.Floor),
		price,
		optionalInt(o.Bedrooms),
		wire.OfferStatusCode(o.Status),
		len(o.Photos),
		o.CreatedAt.UTC().Format("2006-01-02 15:04"),
	}
	return &row
}

func optionalInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
