// Package receipt aggregates priced order lines into totals and the
// discount breakdown. It is pure computation over immutable items and never
// touches catalog state.
package receipt

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MembershipPolicy controls the percentage discount applied to spend that
// carries no promotion.
type MembershipPolicy struct {
	Rate decimal.Decimal
	Cap  decimal.Decimal
}

// DefaultMembership is the store's standard policy: 30% off, capped at 8,000 won.
func DefaultMembership() MembershipPolicy {
	return MembershipPolicy{
		Rate: decimal.New(3, -1),
		Cap:  decimal.NewFromInt(8000),
	}
}

// Item is one priced line of a receipt. GiftQuantity of the Quantity units
// were free. Promoted marks promotion-bearing products, which never stack
// with the membership discount even when no gift triggered.
type Item struct {
	Name         string
	Quantity     int
	UnitPrice    decimal.Decimal
	GiftQuantity int
	Promoted     bool
}

// Amount is the gross amount for this line, gifted units included.
func (i Item) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// HasGift reports whether any units of this line were free.
func (i Item) HasGift() bool {
	return i.GiftQuantity > 0
}

// Receipt holds the priced lines of one order.
type Receipt struct {
	ID                string
	Items             []Item
	PromotionDiscount decimal.Decimal
	UseMembership     bool

	membership MembershipPolicy
}

// New assembles a receipt from priced items and the precomputed promotion
// discount.
func New(items []Item, promotionDiscount decimal.Decimal, useMembership bool, policy MembershipPolicy) *Receipt {
	return &Receipt{
		ID:                uuid.New().String(),
		Items:             items,
		PromotionDiscount: promotionDiscount,
		UseMembership:     useMembership,
		membership:        policy,
	}
}

// TotalQuantity is the number of units billed, gifted units included.
func (r *Receipt) TotalQuantity() int {
	total := 0
	for _, it := range r.Items {
		total += it.Quantity
	}
	return total
}

// TotalAmount is the gross amount before any discount.
func (r *Receipt) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range r.Items {
		total = total.Add(it.Amount())
	}
	return total
}

// MembershipDiscount applies the policy rate to spend with no gift units and
// no promotion tag, truncated toward zero and capped.
func (r *Receipt) MembershipDiscount() decimal.Decimal {
	if !r.UseMembership {
		return decimal.Zero
	}

	discountable := decimal.Zero
	for _, it := range r.Items {
		if it.HasGift() || it.Promoted {
			continue
		}
		discountable = discountable.Add(it.Amount())
	}

	discount := discountable.Mul(r.membership.Rate).Truncate(0)
	return decimal.Min(discount, r.membership.Cap)
}

// FinalAmount is the amount due after both discounts, floored at zero.
func (r *Receipt) FinalAmount() decimal.Decimal {
	final := r.TotalAmount().Sub(r.PromotionDiscount).Sub(r.MembershipDiscount())
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

// HasPromotionDiscount reports whether any line carried gift units.
func (r *Receipt) HasPromotionDiscount() bool {
	return r.PromotionDiscount.IsPositive()
}
