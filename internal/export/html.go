package export

import (
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
)

var moneyPrinter = message.NewPrinter(language.English)

func formatMoney(v float64) string {
	return moneyPrinter.Sprintf("%.2f", v)
}

func htmlTierColor(t model.Tier) string {
	return "#" + tierColor(t)
}

type htmlData struct {
	Date       string
	Total      int
	CarCount   int
	TruckCount int
	Exported   string
	Sections   []htmlSection
}

type htmlSection struct {
	Title string
	Parts []model.SavedPart
}

// WriteHTML renders the saved parts list as a standalone mobile-friendly
// page. All styling is inlined so the file opens anywhere without extra
// assets.
func WriteHTML(w io.Writer, parts []model.SavedPart, now time.Time) error {
	cars, trucks := splitByVehicleType(parts)

	data := htmlData{
		Date:       now.Format("2006-01-02"),
		Total:      len(parts),
		CarCount:   len(cars),
		TruckCount: len(trucks),
		Exported:   now.Format("January 2, 2006 at 3:04 PM"),
	}
	if len(cars) > 0 {
		data.Sections = append(data.Sections, htmlSection{Title: "Cars", Parts: cars})
	}
	if len(trucks) > 0 {
		data.Sections = append(data.Sections, htmlSection{Title: "Trucks / SUVs", Parts: trucks})
	}

	if err := htmlPage.Execute(w, data); err != nil {
		return eris.Wrap(err, "export: render HTML")
	}
	return nil
}

var htmlPage = template.Must(template.New("parts").Funcs(template.FuncMap{
	"money":     formatMoney,
	"tierColor": htmlTierColor,
	"added":     formatAdded,
	"trim":      strings.TrimSpace,
}).Parse(htmlPageTemplate))

const htmlPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Car Parts List - {{.Date}}</title>
<style>
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 15px; line-height: 1.6; }
.container { max-width: 800px; margin: 0 auto; }
h1 { color: white; text-align: center; margin: 20px 0; font-size: 1.8em; }
h2 { color: #667eea; margin-top: 30px; border-bottom: 2px solid #667eea; padding-bottom: 10px; }
.summary { background: white; padding: 20px; border-radius: 12px; margin-bottom: 20px; text-align: center; }
.summary h3 { color: #667eea; font-size: 1.5em; margin-bottom: 10px; }
.summary p { color: #666; }
.card { background: white; padding: 20px; margin: 15px 0; border-radius: 12px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); }
.card h3 { margin: 0 0 15px 0; color: #333; font-size: 1.3em; }
.vehicle { margin: 5px 0; color: #666; font-size: 0.95em; }
.listing-title { margin: 15px 0; padding: 12px; background: #f0f9ff; border-left: 4px solid #667eea; border-radius: 4px; font-family: monospace; font-size: 0.9em; color: #333; word-break: break-word; }
.prices { display: grid; grid-template-columns: 1fr 1fr; gap: 10px; margin: 15px 0; }
.price-box { background: #f8f9fa; padding: 12px; border-radius: 8px; text-align: center; }
.price-box .label { font-size: 0.85em; color: #666; }
.price-box .value { font-size: 1.4em; font-weight: bold; }
.roi { text-align: center; margin: 15px 0; }
.roi .label { font-size: 0.85em; color: #666; margin-bottom: 5px; }
.roi-badge { display: inline-block; color: white; padding: 8px 20px; border-radius: 20px; font-size: 1.2em; font-weight: bold; }
.button { display: inline-block; background: #667eea; color: white; padding: 10px 20px; border-radius: 8px; text-decoration: none; font-weight: bold; }
.button.video { background: #ff0000; }
.notes { background: #fff3cd; padding: 12px; border-radius: 8px; margin-top: 10px; color: #856404; }
.added { margin: 10px 0 0 0; font-size: 0.8em; color: #999; }
@media print { body { background: white; padding: 0; } .container { max-width: 100%; } }
</style>
</head>
<body>
<div class="container">
<h1>Car Parts List</h1>
<div class="summary">
<h3>Total Parts: {{.Total}}</h3>
<p>Cars: {{.CarCount}} | Trucks/SUVs: {{.TruckCount}}</p>
<p>Exported: {{.Exported}}</p>
</div>
{{range .Sections}}
<h2>{{.Title}}</h2>
{{range .Parts}}
<div class="card">
<h3>{{.PartName}}</h3>
{{with .VehicleInfo}}<p class="vehicle"><strong>Vehicle:</strong> {{.}}</p>{{end}}
{{with .EbayTitle}}<div class="listing-title">{{.}}</div>{{end}}
{{with .EbayURL}}<p><a class="button" href="{{.}}" target="_blank">Open eBay Listing</a></p>{{end}}
<div class="prices">
<div class="price-box"><div class="label">Junkyard</div><div class="value" style="color: #28a745;">${{money .JunkyardPrice}}</div></div>
<div class="price-box"><div class="label">eBay Sold</div><div class="value" style="color: #667eea;">${{money .EbaySoldPrice}}</div></div>
</div>
<div class="roi">
<div class="label">ROI</div>
<div class="roi-badge" style="background: {{tierColor .Tier}};">{{printf "%.2fx" .ROI}} - {{.Tier.Label}}</div>
</div>
{{with trim .YouTubeLink}}<p><a class="button video" href="{{.}}" target="_blank">Watch Tutorial</a></p>{{end}}
{{with trim .Notes}}<div class="notes"><strong>Notes:</strong><br>{{.}}</div>{{end}}
<p class="added">Added: {{added .SavedAt}}</p>
</div>
{{end}}
{{end}}
</div>
</body>
</html>
`
