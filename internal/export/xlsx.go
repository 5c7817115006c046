package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
)

// listingLabelMax caps the listing title length in the workbook so the
// column stays readable.
const listingLabelMax = 50

// xlsxColumns defines the ordered sheet columns and their widths.
var xlsxColumns = []struct {
	title string
	width float64
}{
	{"Part Name", 25},
	{"eBay Listing", 40},
	{"Junkyard $", 12},
	{"eBay $", 12},
	{"ROI", 10},
	{"Rating", 12},
	{"YouTube", 15},
	{"Notes", 35},
	{"Added", 18},
}

// WriteXLSX writes the saved parts list as an XLSX workbook, with cars
// and trucks split across two sheets. An empty list still produces a
// valid workbook with a lone header sheet.
func WriteXLSX(w io.Writer, parts []model.SavedPart) error {
	cars, trucks := splitByVehicleType(parts)

	f := xlsx.NewFile()
	if len(cars) > 0 || len(trucks) == 0 {
		if err := addPartsSheet(f, "Cars", cars); err != nil {
			return err
		}
	}
	if len(trucks) > 0 {
		if err := addPartsSheet(f, "Trucks & SUVs", trucks); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

func addPartsSheet(f *xlsx.File, name string, parts []model.SavedPart) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %q", name)
	}

	header := sheet.AddRow()
	for _, col := range xlsxColumns {
		cell := header.AddCell()
		cell.SetString(col.title)
		cell.SetStyle(headerStyle())
	}

	for _, p := range parts {
		addPartRow(sheet, p)
	}

	for i, col := range xlsxColumns {
		if err := sheet.SetColWidth(i, i, col.width); err != nil {
			return eris.Wrapf(err, "export: size column %d", i)
		}
	}
	return nil
}

func addPartRow(sheet *xlsx.Sheet, p model.SavedPart) {
	row := sheet.AddRow()

	row.AddCell().SetString(p.PartName)
	row.AddCell().SetString(listingLabel(p))
	row.AddCell().SetString(fmt.Sprintf("$%.2f", p.JunkyardPrice))
	row.AddCell().SetString(fmt.Sprintf("$%.2f", p.EbaySoldPrice))
	row.AddCell().SetString(fmt.Sprintf("%.2fx", p.ROI))

	rating := row.AddCell()
	rating.SetString(p.Tier.Label())
	rating.SetStyle(ratingStyle(p.Tier))

	if link := strings.TrimSpace(p.YouTubeLink); link != "" {
		row.AddCell().SetString(link)
	} else {
		row.AddCell().SetString("-")
	}
	row.AddCell().SetString(p.Notes)
	row.AddCell().SetString(formatAdded(p.SavedAt))
}

func listingLabel(p model.SavedPart) string {
	title := p.EbayTitle
	if title == "" {
		title = "View Listing"
	}
	if r := []rune(title); len(r) > listingLabelMax {
		title = string(r[:listingLabelMax])
	}
	return title
}

func headerStyle() *xlsx.Style {
	st := xlsx.NewStyle()
	st.Fill = *xlsx.NewFill("solid", "FF"+colorHeader, "FF"+colorHeader)
	st.Font.Bold = true
	st.Font.Color = "FFFFFFFF"
	st.ApplyFill = true
	st.ApplyFont = true
	st.Alignment.Horizontal = "center"
	st.Alignment.Vertical = "center"
	st.ApplyAlignment = true
	return st
}

func ratingStyle(t model.Tier) *xlsx.Style {
	st := xlsx.NewStyle()
	st.Font.Bold = true
	st.ApplyFont = true
	st.ApplyFill = true
	st.Alignment.Horizontal = "center"
	st.ApplyAlignment = true

	switch t {
	case model.TierHigh:
		st.Fill = *xlsx.NewFill("solid", "FF"+colorHigh, "FF"+colorHigh)
		st.Font.Color = "FFFFFFFF"
	case model.TierMedium:
		st.Fill = *xlsx.NewFill("solid", "FF"+colorMedium, "FF"+colorMedium)
	default:
		st.Fill = *xlsx.NewFill("solid", "FF"+colorLow, "FF"+colorLow)
		st.Font.Color = "FFFFFFFF"
	}
	return st
}
