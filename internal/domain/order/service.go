// Package order implements the pricing engine: it allocates requested
// quantities across promotional and plain stock lots, computes gift units,
// and produces the priced receipt.
package order

import (
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/convenience-store/internal/domain/product"
	"github.com/xenking/convenience-store/internal/domain/promotion"
	"github.com/xenking/convenience-store/internal/domain/receipt"
)

// ErrEmptyOrder is returned when an order has no items.
var ErrEmptyOrder = errors.New("order has no items")

// UnknownProductError indicates a requested product does not exist in the
// catalog.
type UnknownProductError struct {
	Name string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("product %s not found", e.Name)
}

// InvalidQuantityError indicates an order line has a non-positive quantity.
type InvalidQuantityError struct {
	Name string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %s", e.Name)
}

// StockExceededError indicates a requested quantity exceeds the total stock
// across all lots of the product.
type StockExceededError struct {
	Name      string
	Requested int
	Available int
}

func (e *StockExceededError) Error() string {
	return fmt.Sprintf("product %s: requested %d exceeds stock of %d", e.Name, e.Requested, e.Available)
}

// Item is one order line: a product name and the requested quantity.
type Item struct {
	Name     string
	Quantity int
}

// Service prices orders against the product and promotion catalogs. It owns
// all stock mutation for the duration of one PriceOrder call; the query
// methods never mutate.
type Service struct {
	products   *product.Catalog
	promotions *promotion.Catalog
	membership receipt.MembershipPolicy
	now        func() time.Time
}

// NewService creates the pricing engine. A nil clock defaults to time.Now.
func NewService(
	products *product.Catalog,
	promotions *promotion.Catalog,
	membership receipt.MembershipPolicy,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		products:   products,
		promotions: promotions,
		membership: membership,
		now:        now,
	}
}

// Validate checks the whole order against current stock before any prompt or
// mutation. It reports the first offending line and never touches stock.
func (s *Service) Validate(items []Item) error {
	items = mergeItems(items)
	if len(items) == 0 {
		return ErrEmptyOrder
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return &InvalidQuantityError{Name: it.Name}
		}
		if _, ok := s.products.Find(it.Name); !ok {
			return &UnknownProductError{Name: it.Name}
		}
		if total := s.products.TotalStock(it.Name); it.Quantity > total {
			return &StockExceededError{Name: it.Name, Requested: it.Quantity, Available: total}
		}
	}
	return nil
}

// CanOfferBonus reports whether the requested quantity is exactly one bundle
// remainder short of another free unit and the promotional lot can cover the
// extra units. The session uses it to drive the "one more for free?" prompt.
func (s *Service) CanOfferBonus(name string, quantity int) bool {
	lot, promo, ok := s.activePromotion(name)
	if !ok || quantity <= 0 {
		return false
	}
	if quantity%promo.BundleSize() != promo.Buy {
		return false
	}
	return lot.Quantity() >= quantity+promo.FreeUnits()
}

// BonusUnits returns the number of free units an accepted bonus offer adds.
func (s *Service) BonusUnits(name string) int {
	_, promo, ok := s.activePromotion(name)
	if !ok {
		return 0
	}
	return promo.FreeUnits()
}

// NeedsWarning reports whether part of the request would be sold at full
// price because the promotional lot cannot cover it.
func (s *Service) NeedsWarning(name string, quantity int) bool {
	lot, _, ok := s.activePromotion(name)
	return ok && quantity > lot.Quantity()
}

// ExcessQuantity is the portion of the request not covered by usable
// promotional stock, where usable stock is rounded down to full bundles.
func (s *Service) ExcessQuantity(name string, quantity int) int {
	lot, promo, ok := s.activePromotion(name)
	if !ok {
		return 0
	}
	usable := lot.Quantity() / promo.BundleSize() * promo.BundleSize()
	if excess := quantity - usable; excess > 0 {
		return excess
	}
	return 0
}

// allocation is the planned stock movement for one order line.
type allocation struct {
	promoLot *product.Product
	promoQty int
	plainLot *product.Product
	plainQty int
	item     receipt.Item
}

// PriceOrder validates the order, plans the allocation for every line
// without touching stock, then commits all decrements and returns the
// priced receipt. A failure on any line leaves the catalog unchanged.
func (s *Service) PriceOrder(items []Item, useMembership bool) (*receipt.Receipt, error) {
	items = mergeItems(items)
	if err := s.Validate(items); err != nil {
		return nil, err
	}

	plan := make([]allocation, 0, len(items))
	for _, it := range items {
		alloc, err := s.planLine(it)
		if err != nil {
			return nil, errors.Wrapf(err, "allocate %s", it.Name)
		}
		plan = append(plan, alloc)
	}

	receiptItems := make([]receipt.Item, 0, len(plan))
	promotionDiscount := decimal.Zero
	for _, alloc := range plan {
		if alloc.promoQty > 0 {
			if err := alloc.promoLot.Decrease(alloc.promoQty); err != nil {
				return nil, errors.Wrap(err, "commit promotional lot")
			}
		}
		if alloc.plainQty > 0 {
			if err := alloc.plainLot.Decrease(alloc.plainQty); err != nil {
				return nil, errors.Wrap(err, "commit plain lot")
			}
		}
		receiptItems = append(receiptItems, alloc.item)
		gift := decimal.NewFromInt(int64(alloc.item.GiftQuantity))
		promotionDiscount = promotionDiscount.Add(alloc.item.UnitPrice.Mul(gift))
	}

	return receipt.New(receiptItems, promotionDiscount, useMembership, s.membership), nil
}

// planLine computes the allocation for one line as a pure function.
// Promotional stock is preferred; units consumed beyond full bundles still
// come from the promotional lot, they simply are not gifted. The residual
// must fit in the plain lot.
func (s *Service) planLine(it Item) (allocation, error) {
	lots := s.products.FindAll(it.Name)
	var plainLot *product.Product
	for _, lot := range lots {
		if !lot.Promoted() {
			plainLot = lot
			break
		}
	}

	var alloc allocation
	gift := 0
	remaining := it.Quantity

	if lot, promo, ok := s.activePromotion(it.Name); ok {
		available := min(lot.Quantity(), it.Quantity)
		bundles := available / promo.BundleSize()
		if bundles > 0 {
			gift = bundles * promo.FreeUnits()
			alloc.promoLot = lot
			alloc.promoQty = available
			remaining = it.Quantity - available
		}
	}

	if remaining > 0 {
		if plainLot == nil || !plainLot.HasStock(remaining) {
			return allocation{}, errors.Wrapf(product.ErrInsufficientStock,
				"plain lot of %s cannot cover %d units", it.Name, remaining)
		}
		alloc.plainLot = plainLot
		alloc.plainQty = remaining
	}

	promoted := len(lots) > 0 && lots[0].Promoted()
	alloc.item = receipt.Item{
		Name:         it.Name,
		Quantity:     it.Quantity,
		UnitPrice:    lots[0].Price,
		GiftQuantity: gift,
		Promoted:     promoted,
	}
	return alloc, nil
}

// activePromotion returns the promotional lot for name together with its
// promotion, when that promotion is active on the current date.
func (s *Service) activePromotion(name string) (*product.Product, promotion.Promotion, bool) {
	var promoLot *product.Product
	for _, lot := range s.products.FindAll(name) {
		if lot.Promoted() {
			promoLot = lot
			break
		}
	}
	if promoLot == nil {
		return nil, promotion.Promotion{}, false
	}
	promo, ok := s.promotions.Find(promoLot.PromotionRef)
	if !ok || !promo.ActiveOn(s.now()) {
		return nil, promotion.Promotion{}, false
	}
	return promoLot, promo, true
}

// mergeItems sums duplicate product names, preserving first-seen order.
// Planning reads stock before committing, so two lines for the same product
// must collapse into one to keep the plan consistent.
func mergeItems(items []Item) []Item {
	index := make(map[string]int, len(items))
	merged := make([]Item, 0, len(items))
	for _, it := range items {
		if i, ok := index[it.Name]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.Name] = len(merged)
		merged = append(merged, it)
	}
	return merged
}
