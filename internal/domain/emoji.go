package domain

import (
	"sort"
	"strings"
)

type EmojiRecord struct {
	Name      string `json:"name"`
	SourceURL string `json:"source_url"`
}

// Inventory is the transferable slice of a workspace catalog, ordered by name.
type Inventory []EmojiRecord

// BuildInventory turns a name->URL catalog map into a sorted Inventory.
func BuildInventory(entries map[string]string) Inventory {
	inv := make(Inventory, 0, len(entries))
	for name, url := range entries {
		inv = append(inv, EmojiRecord{Name: name, SourceURL: url})
	}
	sort.Slice(inv, func(i, j int) bool { return inv[i].Name < inv[j].Name })
	return inv
}

// URLMap flattens the inventory back into the catalog's name->URL shape.
func (inv Inventory) URLMap() map[string]string {
	m := make(map[string]string, len(inv))
	for _, rec := range inv {
		m[rec.Name] = rec.SourceURL
	}
	return m
}

// SanitizeName maps characters that are unsafe in file names to underscores.
// Slack emoji names are typically alphanumeric plus '-', '_' and '+', all of
// which pass through untouched.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '+':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
