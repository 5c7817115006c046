package analyzer

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// PartFilter selects which slice of the catalog a vehicle analysis
// covers. Analyzing the full catalog takes hundreds of searches, so
// the narrower filters exist to keep a run short.
type PartFilter string

const (
	// FilterAll analyzes every catalog part.
	FilterAll PartFilter = "all"
	// FilterHighPriority analyzes the historically most profitable
	// parts, capped at 30.
	FilterHighPriority PartFilter = "high_priority"
	// FilterInterior analyzes interior and easy-to-carry parts.
	FilterInterior PartFilter = "interior"
	// FilterLight analyzes interior plus light exterior parts.
	FilterLight PartFilter = "light"
)

const maxHighPriorityParts = 30

// PartLists holds the keyword tables behind the part filters. Matching
// is case-insensitive in both directions for the priority table and by
// substring for the keyword tables.
type PartLists struct {
	HighPriority  []string `yaml:"high_priority"`
	Interior      []string `yaml:"interior"`
	LightExterior []string `yaml:"light_exterior"`
}

// DefaultPartLists returns the built-in tables.
func DefaultPartLists() PartLists {
	return PartLists{
		HighPriority: []string{
			// Electronics resell best.
			"RADIO",
			"RADIO WITH DISPLAY",
			"RADIO WITHOUT DISPLAY",
			"INSTRUMENT CLUSTER",
			"SPEEDOMETER HEAD ONLY",
			"NAVIGATION GPS SCREEN",
			"DISPLAY SCREEN",
			"ECM (ELECTRONIC CONTROL MODULE)",
			"TCM (TRANSMISSION CONTROL MOD.)",
			"HEADLIGHT",
			"TAILLIGHT",
			"FOG LIGHT",
			"STEERING WHEEL",
			"CLIMATE CONTROL",
			"SWITCH PANEL",
			"CENTER CONSOLE",
			"MIRROR (SIDE VIEW)",
			"INTERIOR MIRROR",
			"SEAT WITH AIR BAG FRONT",
			"SEAT NO AIR BAG FRONT",
			"AIR BAG (FRONT, DRIVER)",
			"AIR BAG (FRONT, PASSENGER)",
			"GRILLE",
			"BUMPER COVER, FRONT",
			"DOOR, FRONT",
			"HOOD",
			"FENDER",
			"WHEEL (ALUMINUM)",
		},
		Interior: []string{
			"CONSOLE", "DASHBOARD", "DASH", "GLOVE", "STEERING", "SEAT",
			"DOOR PANEL", "ARMREST", "CARPET", "HEADLINER", "VISOR",
			"MIRROR", "RADIO", "INSTRUMENT", "CLUSTER", "TRIM", "HANDLE",
			"SWITCH", "VENT", "SHIFTER", "BEZEL", "CUBBY", "ASHTRAY",
			"CUP HOLDER", "KNOB", "BUTTON", "CLOCK",
		},
		LightExterior: []string{
			"HEADLIGHT", "TAILLIGHT", "BUMPER COVER", "GRILLE", "EMBLEM",
			"DOOR", "HOOD", "WHEEL", "HUBCAP", "BADGE",
		},
	}
}

// LoadPartLists reads keyword tables from a YAML file. Tables missing
// from the file keep their built-in defaults.
func LoadPartLists(path string) (PartLists, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PartLists{}, eris.Wrap(err, "analyzer: read part lists")
	}

	var pl PartLists
	if err := yaml.Unmarshal(data, &pl); err != nil {
		return PartLists{}, eris.Wrap(err, "analyzer: parse part lists")
	}

	def := DefaultPartLists()
	if len(pl.HighPriority) == 0 {
		pl.HighPriority = def.HighPriority
	}
	if len(pl.Interior) == 0 {
		pl.Interior = def.Interior
	}
	if len(pl.LightExterior) == 0 {
		pl.LightExterior = def.LightExterior
	}
	return pl, nil
}

// Select applies a filter to catalog part names. The interior and
// light filters fall back to the full list when nothing matches;
// high_priority does not, its result is what it is.
func (pl PartLists) Select(parts []string, filter PartFilter) []string {
	switch filter {
	case FilterHighPriority:
		return pl.selectHighPriority(parts)
	case FilterInterior:
		return orAll(parts, selectByKeywords(parts, pl.Interior))
	case FilterLight:
		keywords := append(append([]string{}, pl.Interior...), pl.LightExterior...)
		return orAll(parts, selectByKeywords(parts, keywords))
	default:
		return parts
	}
}

// selectHighPriority walks the priority table in order and collects
// catalog parts matching by substring in either direction, dedupes,
// and caps the result.
func (pl PartLists) selectHighPriority(parts []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, priority := range pl.HighPriority {
		p := strings.ToUpper(priority)
		for _, part := range parts {
			u := strings.ToUpper(part)
			if !strings.Contains(u, p) && !strings.Contains(p, u) {
				continue
			}
			if seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	if len(out) > maxHighPriorityParts {
		out = out[:maxHighPriorityParts]
	}
	return out
}

func selectByKeywords(parts, keywords []string) []string {
	var out []string
	for _, part := range parts {
		u := strings.ToUpper(part)
		for _, kw := range keywords {
			if strings.Contains(u, strings.ToUpper(kw)) {
				out = append(out, part)
				break
			}
		}
	}
	return out
}

func orAll(all, filtered []string) []string {
	if len(filtered) == 0 {
		return all
	}
	return filtered
}
