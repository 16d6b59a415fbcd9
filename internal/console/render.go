package console

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/xenking/convenience-store/internal/domain/receipt"
)

// RenderCatalog writes the greeting and the product listing.
func RenderCatalog(w io.Writer, lines []string) {
	fmt.Fprintln(w, "Welcome to W Store.")
	fmt.Fprintln(w, "Here is what we have in stock.")
	fmt.Fprintln(w)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

// RenderReceipt writes the priced order in the store's receipt layout:
// order lines, gift lines, then totals and the discount breakdown.
func RenderReceipt(w io.Writer, r *receipt.Receipt) {
	fmt.Fprintln(w, "==============W Store=================")
	fmt.Fprintf(w, "%-16s %5s %11s\n", "Name", "Qty", "Amount")
	for _, it := range r.Items {
		fmt.Fprintf(w, "%-16s %5d %11s\n", it.Name, it.Quantity, money(it.Amount()))
	}

	if r.HasPromotionDiscount() {
		fmt.Fprintln(w, "==============Gifts===================")
		for _, it := range r.Items {
			if it.HasGift() {
				fmt.Fprintf(w, "%-16s %5d\n", it.Name, it.GiftQuantity)
			}
		}
	}

	fmt.Fprintln(w, "======================================")
	fmt.Fprintf(w, "%-16s %5d %11s\n", "Total", r.TotalQuantity(), money(r.TotalAmount()))
	fmt.Fprintf(w, "%-22s %11s\n", "Promotion discount", "-"+money(r.PromotionDiscount))
	fmt.Fprintf(w, "%-22s %11s\n", "Membership discount", "-"+money(r.MembershipDiscount()))
	fmt.Fprintf(w, "%-22s %11s\n", "Amount due", money(r.FinalAmount()))
}

func money(d decimal.Decimal) string {
	return humanize.Comma(d.IntPart())
}
