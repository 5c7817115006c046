// Package catalog holds the junkyard price list and answers part-name
// lookups against it.
//
// Keys are normalized (lowercased, whitespace-trimmed) at load time and
// query time. An exact match wins; otherwise the first entry in load
// order whose name contains the query, or is contained by it, matches.
// The load-order tie-break is deliberate and relied upon by callers.
package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Entry is one catalog row. Name is stored normalized.
type Entry struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Catalog is an immutable part-name to price table.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// Normalize lowercases and trims a part name the way catalog keys are
// stored.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// New builds a catalog from parsed rows. A duplicate name overwrites the
// earlier price but keeps the earlier position. Rows whose name
// normalizes to "" are dropped.
func New(entries []Entry) *Catalog {
	c := &Catalog{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		key := Normalize(e.Name)
		if key == "" {
			continue
		}
		if i, ok := c.index[key]; ok {
			c.entries[i].Price = e.Price
			continue
		}
		c.index[key] = len(c.entries)
		c.entries = append(c.entries, Entry{Name: key, Price: e.Price})
	}
	return c
}

// Lookup resolves a part name to its junkyard price. ok is false on a
// miss; a miss never yields a price.
func (c *Catalog) Lookup(name string) (float64, bool) {
	e, ok := c.Match(name)
	if !ok {
		return 0, false
	}
	return e.Price, true
}

// Match is Lookup returning the matched entry, so callers can report
// which catalog key a fuzzy query resolved to.
func (c *Catalog) Match(name string) (Entry, bool) {
	key := Normalize(name)
	if key == "" {
		return Entry{}, false
	}
	if i, ok := c.index[key]; ok {
		return c.entries[i], true
	}
	for _, e := range c.entries {
		if strings.Contains(e.Name, key) || strings.Contains(key, e.Name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Parts returns all catalog names sorted ascending.
func (c *Catalog) Parts() []string {
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Entries returns the catalog rows in load order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Search returns entries whose name contains term, in load order.
func (c *Catalog) Search(term string) []Entry {
	key := Normalize(term)
	if key == "" {
		return nil
	}
	var out []Entry
	for _, e := range c.entries {
		if strings.Contains(e.Name, key) {
			out = append(out, e)
		}
	}
	return out
}

// Suggest returns up to n catalog names nearest to name by edit
// distance, nearest first. Used for "did you mean" output after a
// Lookup miss; it never changes Lookup results.
func (c *Catalog) Suggest(name string, n int) []string {
	key := Normalize(name)
	if key == "" || n <= 0 || len(c.entries) == 0 {
		return nil
	}
	type scored struct {
		name string
		dist int
	}
	ranked := make([]scored, 0, len(c.entries))
	for _, e := range c.entries {
		ranked = append(ranked, scored{name: e.Name, dist: levenshtein.ComputeDistance(key, e.Name)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].dist != ranked[j].dist {
			return ranked[i].dist < ranked[j].dist
		}
		return ranked[i].name < ranked[j].name
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]string, 0, n)
	for _, s := range ranked[:n] {
		out = append(out, s.name)
	}
	return out
}

// Len reports the number of distinct catalog entries.
func (c *Catalog) Len() int { return len(c.entries) }
