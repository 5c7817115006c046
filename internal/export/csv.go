package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
)

// csvColumns defines the ordered CSV output columns.
var csvColumns = []string{
	"Part Name",
	"eBay Title",
	"eBay URL",
	"eBay Image",
	"eBay Price",
	"Junkyard Parts",
	"Junkyard Price",
	"ROI",
	"ROI Rating",
	"Vehicle Type",
	"Year",
	"Make",
	"Model",
	"YouTube Tutorial",
	"Notes",
	"Date Added",
}

// WriteCSV writes the saved parts list as CSV, one row per part.
func WriteCSV(w io.Writer, parts []model.SavedPart) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvColumns); err != nil {
		return eris.Wrap(err, "export: write CSV header")
	}

	for _, p := range parts {
		if err := cw.Write(buildCSVRow(p)); err != nil {
			return eris.Wrap(err, "export: write CSV row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush CSV")
	}
	return nil
}

// buildCSVRow maps a SavedPart to a CSV row.
func buildCSVRow(p model.SavedPart) []string {
	return []string{
		p.PartName,                          // Part Name
		p.EbayTitle,                         // eBay Title
		p.EbayURL,                           // eBay URL
		p.ImageURL,                          // eBay Image
		formatFloat(p.EbaySoldPrice),        // eBay Price
		strings.Join(p.JunkyardParts, ", "), // Junkyard Parts
		formatFloat(p.JunkyardPrice),        // Junkyard Price
		formatFloat(p.ROI),                  // ROI
		p.Tier.Label(),                      // ROI Rating
		string(p.VehicleType),               // Vehicle Type
		p.Year,                              // Year
		p.Make,                              // Make
		p.Model,                             // Model
		p.YouTubeLink,                       // YouTube Tutorial
		p.Notes,                             // Notes
		formatSavedAt(p.SavedAt),            // Date Added
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatSavedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
