package product

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Catalog holds every product lot loaded for the run, in file order.
// The pricing engine is the only writer; all other access is read-only.
type Catalog struct {
	products []*Product
}

// NewCatalog builds a catalog preserving the load order of the lots.
func NewCatalog(products []*Product) *Catalog {
	return &Catalog{products: products}
}

// Find returns the first lot with the given name.
func (c *Catalog) Find(name string) (*Product, bool) {
	for _, p := range c.products {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// FindAll returns every lot with the given name, promotional lot first when
// one exists.
func (c *Catalog) FindAll(name string) []*Product {
	var lots []*Product
	for _, p := range c.products {
		if p.Name == name && p.Promoted() {
			lots = append(lots, p)
		}
	}
	for _, p := range c.products {
		if p.Name == name && !p.Promoted() {
			lots = append(lots, p)
		}
	}
	return lots
}

// TotalStock sums the remaining quantity across all lots sharing the name.
func (c *Catalog) TotalStock(name string) int {
	total := 0
	for _, p := range c.products {
		if p.Name == name {
			total += p.quantity
		}
	}
	return total
}

// Len returns the number of lots in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Describe renders one display line per lot, in load order. A promotional
// lot with no plain counterpart gets a synthetic out-of-stock plain line so
// shoppers see that full-price stock does not exist.
func (c *Catalog) Describe() []string {
	lines := make([]string, 0, len(c.products))
	for _, p := range c.products {
		lines = append(lines, p.describe())
		if p.Promoted() && !c.hasPlainLot(p.Name) {
			lines = append(lines, fmt.Sprintf("- %s %s won out of stock", p.Name, money(p.Price.IntPart())))
		}
	}
	return lines
}

func (c *Catalog) hasPlainLot(name string) bool {
	for _, p := range c.products {
		if p.Name == name && !p.Promoted() {
			return true
		}
	}
	return false
}

func (p *Product) describe() string {
	stock := "out of stock"
	if p.quantity > 0 {
		stock = fmt.Sprintf("%d ea", p.quantity)
	}
	line := fmt.Sprintf("- %s %s won %s", p.Name, money(p.Price.IntPart()), stock)
	if p.Promoted() {
		line += " " + p.PromotionRef
	}
	return line
}

func money(n int64) string {
	return humanize.Comma(n)
}
