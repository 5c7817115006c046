package linkparse

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// partKeywords is scanned in order; the first keyword found in the title
// names the part.
var partKeywords = []string{
	"headlight", "taillight", "bumper", "fender", "hood", "door",
	"mirror", "grille", "radio", "stereo", "cluster", "speedometer",
	"wheel", "rim", "seat", "console", "dashboard", "steering wheel",
	"ecm", "tcm", "pcm", "module", "sensor", "switch", "airbag",
}

// partAcronyms stay fully uppercased instead of title-cased.
var partAcronyms = map[string]bool{
	"ecm": true,
	"tcm": true,
	"pcm": true,
}

// ExtractPartName pulls a recognizable part name out of a listing title,
// e.g. "2013 Honda Accord Headlight Left" yields "Headlight". When no
// keyword matches it falls back to the first three words of the title.
func ExtractPartName(title string) string {
	lower := strings.ToLower(title)
	for _, kw := range partKeywords {
		if !strings.Contains(lower, kw) {
			continue
		}
		if partAcronyms[kw] {
			return strings.ToUpper(kw)
		}
		return cases.Title(language.English).String(kw)
	}

	words := strings.Fields(title)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ")
}
