package catalog

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// LoadCSV parses a junkyard pricing sheet into catalog rows. Real-world
// sheets carry title and note rows above the data, so the first row
// holding both a "part" and a "price" column is taken as the header.
// Price cells may carry "$" and thousands separators. Rows with an
// empty name or an unparsable price are skipped.
func LoadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "catalog: read csv")
	}

	nameIdx, priceIdx, start := findHeader(records)
	if start < 0 {
		return nil, eris.New("catalog: no part/price header row found")
	}

	var entries []Entry
	for _, row := range records[start:] {
		name := getCell(row, nameIdx)
		if name == "" {
			continue
		}
		price, ok := parsePrice(getCell(row, priceIdx))
		if !ok {
			continue
		}
		entries = append(entries, Entry{Name: name, Price: price})
	}
	if len(entries) == 0 {
		return nil, eris.New("catalog: no usable rows in csv")
	}
	return entries, nil
}

// Load reads the pricing sheet and builds the catalog in one step.
func Load(path string) (*Catalog, error) {
	entries, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return New(entries), nil
}

// findHeader locates the header row and the part/price column indexes.
// start is the index of the first data row, or -1 when no header exists.
func findHeader(records [][]string) (nameIdx, priceIdx, start int) {
	for r, row := range records {
		name, price := -1, -1
		for i, cell := range row {
			c := strings.ToLower(strings.TrimSpace(cell))
			switch {
			case name < 0 && strings.Contains(c, "part"):
				name = i
			case price < 0 && strings.Contains(c, "price"):
				price = i
			}
		}
		if name >= 0 && price >= 0 {
			return name, price, r + 1
		}
	}
	return -1, -1, -1
}

// getCell safely retrieves a trimmed cell from a possibly short row.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parsePrice(s string) (float64, bool) {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
