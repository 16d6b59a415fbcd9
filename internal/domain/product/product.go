// Package product holds the product catalog. A product name may be backed by
// two stock lots sharing a price: one tied to a promotion and one plain.
package product

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for stock mutation.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
)

// Product is a single stock lot of a catalog item.
type Product struct {
	Name         string
	Price        decimal.Decimal
	PromotionRef string

	quantity int
}

// New validates the lot data and returns the product.
func New(name string, price decimal.Decimal, quantity int, promotionRef string) (*Product, error) {
	if name == "" {
		return nil, errors.New("product name is empty")
	}
	if !price.IsPositive() {
		return nil, errors.Errorf("product %s: price must be positive, got %s", name, price)
	}
	if quantity < 0 {
		return nil, errors.Errorf("product %s: quantity must not be negative, got %d", name, quantity)
	}

	return &Product{
		Name:         name,
		Price:        price,
		PromotionRef: promotionRef,
		quantity:     quantity,
	}, nil
}

// Promoted reports whether this lot carries a promotion reference.
func (p *Product) Promoted() bool {
	return p.PromotionRef != ""
}

// Quantity returns the remaining stock of this lot.
func (p *Product) Quantity() int {
	return p.quantity
}

// HasStock reports whether the lot can cover n units.
func (p *Product) HasStock(n int) bool {
	return p.quantity >= n
}

// Decrease removes n units from the lot. Stock never goes negative.
func (p *Product) Decrease(n int) error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidQuantity, "decrease %s by %d", p.Name, n)
	}
	if n > p.quantity {
		return errors.Wrapf(ErrInsufficientStock, "product %s: have %d, need %d", p.Name, p.quantity, n)
	}
	p.quantity -= n
	return nil
}
