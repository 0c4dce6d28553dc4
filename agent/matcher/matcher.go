// Package matcher resolves free-form customer text against the product
// catalog. Matching is deliberately a substring heuristic with a
// first-match tie-break, not a ranked search.
package matcher

import (
	"strings"

	catalogx "github.com/rndas/wallie/agent/catalog"
)

// FindMention returns the first catalog product whose display name, or
// its space-stripped variant, appears in the text. Catalog insertion
// order decides ties.
func FindMention(text string, c *catalogx.Catalog) (catalogx.Product, bool) {
	lower := strings.ToLower(text)
	for _, p := range c.Products() {
		name := strings.ToLower(p.Name)
		if strings.Contains(lower, name) || strings.Contains(lower, strings.ReplaceAll(name, " ", "")) {
			return p, true
		}
	}
	return catalogx.Product{}, false
}

// IsAnyProductMentioned is the looser variant used for phase
// transitions: it also matches any single name word longer than two
// characters, so "the laptop" catches "Gaming Laptop 15-inch".
func IsAnyProductMentioned(text string, c *catalogx.Catalog) bool {
	lower := strings.ToLower(text)
	for _, p := range c.Products() {
		name := strings.ToLower(p.Name)
		if strings.Contains(lower, name) {
			return true
		}
		for _, word := range strings.Fields(name) {
			if len(word) > 2 && strings.Contains(lower, word) {
				return true
			}
		}
		if strings.Contains(lower, strings.ReplaceAll(name, " ", "")) {
			return true
		}
	}
	return false
}
