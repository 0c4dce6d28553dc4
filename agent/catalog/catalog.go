package catalog

import "strings"

// Product is an immutable snapshot of a purchasable item. Price is
// pre-formatted with the currency prefix.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Catalog is a read-only product lookup built once per session.
// Iteration order is insertion order; mention matching relies on it
// for its first-match tie-break.
type Catalog struct {
	keys  []string
	items map[string]Product
}

// NormalizeKey lowercases a display name and strips spaces and hyphens.
func NormalizeKey(name string) string {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "-", "")
	return key
}

// Build constructs a catalog from products in the given order. A
// duplicate key replaces the stored product but keeps its original
// position.
func Build(products []Product) *Catalog {
	c := &Catalog{
		keys:  make([]string, 0, len(products)),
		items: make(map[string]Product, len(products)),
	}
	for _, p := range products {
		c.put(NormalizeKey(p.Name), p)
	}
	return c
}

func (c *Catalog) put(key string, p Product) {
	if _, ok := c.items[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.items[key] = p
}

// Fallback returns the static product set used when the shop source is
// unavailable.
func Fallback() *Catalog {
	c := &Catalog{
		keys:  make([]string, 0, 5),
		items: make(map[string]Product, 5),
	}
	c.put("laptop", Product{ID: 1, Name: "Laptop", Price: "₹50,000", Description: "High-performance laptop", Category: "Electronics"})
	c.put("smartphone", Product{ID: 2, Name: "Smartphone", Price: "₹25,000", Description: "Latest smartphone", Category: "Electronics"})
	c.put("headphones", Product{ID: 3, Name: "Wireless Headphones", Price: "₹5,000", Description: "Premium audio quality", Category: "Audio"})
	c.put("watch", Product{ID: 4, Name: "Smart Watch", Price: "₹15,000", Description: "Fitness and health tracking", Category: "Wearables"})
	c.put("tablet", Product{ID: 5, Name: "Tablet", Price: "₹30,000", Description: "Perfect for work and entertainment", Category: "Electronics"})
	return c
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Get looks a product up by its normalized key.
func (c *Catalog) Get(key string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	p, ok := c.items[key]
	return p, ok
}

// Products returns the catalog contents in insertion order.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, 0, len(c.keys))
	for _, key := range c.keys {
		out = append(out, c.items[key])
	}
	return out
}

// Names renders the comma-separated product name list used by the
// greeting prompt.
func (c *Catalog) Names() string {
	names := make([]string, 0, c.Len())
	for _, p := range c.Products() {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

// NamesWithPrices renders the name (price) list used by the
// post-greeting prompts.
func (c *Catalog) NamesWithPrices() string {
	entries := make([]string, 0, c.Len())
	for _, p := range c.Products() {
		entries = append(entries, p.Name+" ("+p.Price+")")
	}
	return strings.Join(entries, ", ")
}
