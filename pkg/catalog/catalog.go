// Package catalog exposes the read-only brooch product catalog.
package catalog

// Product is a pre-made brooch offered alongside custom generations.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	NameDE        string  `json:"nameDE"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"imageUrl"`
	Description   string  `json:"description"`
	DescriptionDE string  `json:"descriptionDE"`
	Available     bool    `json:"available"`
}

// Catalog is an immutable product lookup seeded at construction.
type Catalog struct {
	byID  map[string]Product
	order []string
}

// New builds a catalog over the given products, preserving order.
func New(products []Product) *Catalog {
	c := &Catalog{byID: make(map[string]Product, len(products))}
	for _, p := range products {
		if _, exists := c.byID[p.ID]; !exists {
			c.order = append(c.order, p.ID)
		}
		c.byID[p.ID] = p
	}
	return c
}

// Default returns the catalog seeded with the boutique's sample brooches.
func Default() *Catalog {
	return New(sampleProducts)
}

// ListAll returns all products in catalog order.
func (c *Catalog) ListAll() []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// GetByID looks up a product.
func (c *Catalog) GetByID(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}
