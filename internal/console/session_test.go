package console

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xenking/convenience-store/internal/domain/order"
	"github.com/xenking/convenience-store/internal/domain/product"
	"github.com/xenking/convenience-store/internal/domain/promotion"
	"github.com/xenking/convenience-store/internal/domain/receipt"
)

func newTestSession(t *testing.T, input string) (*Session, *strings.Builder) {
	t.Helper()

	promo, err := promotion.New("Soda 2+1", 2, 1,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	promotions, err := promotion.NewCatalog([]promotion.Promotion{promo})
	require.NoError(t, err)

	colaPromo, err := product.New("Cola", decimal.NewFromInt(1000), 10, "Soda 2+1")
	require.NoError(t, err)
	colaPlain, err := product.New("Cola", decimal.NewFromInt(1000), 10, "")
	require.NoError(t, err)
	water, err := product.New("Water", decimal.NewFromInt(500), 10, "")
	require.NoError(t, err)
	products := product.NewCatalog([]*product.Product{colaPromo, colaPlain, water})

	now := func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	orders := order.NewService(products, promotions, receipt.DefaultMembership(), now)

	var out strings.Builder
	return NewSession(strings.NewReader(input), &out, orders, products, zap.NewNop()), &out
}

func TestSession_SingleOrder(t *testing.T) {
	s, out := newTestSession(t, "[Cola-3]\nN\nN\n")

	require.NoError(t, s.Run(t.Context()))

	got := out.String()
	assert.Contains(t, got, "Welcome to W Store.")
	assert.Contains(t, got, "==============W Store=================")
	assert.Contains(t, got, "==============Gifts===================")
	assert.Contains(t, got, "Amount due")
	// 3 Cola at 1,000 with one gifted unit: 3,000 gross, 2,000 due.
	assert.Contains(t, got, "3,000")
	assert.Contains(t, got, "2,000")
}

func TestSession_BonusAccepted(t *testing.T) {
	// Two Cola is one short of a full 2+1 bundle; accept the free unit.
	s, out := newTestSession(t, "[Cola-2]\nY\nN\nN\n")

	require.NoError(t, s.Run(t.Context()))

	got := out.String()
	assert.Contains(t, got, "You can get 1 more Cola for free.")
	assert.Contains(t, got, "==============Gifts===================")
	assert.Contains(t, got, "2,000")
}

func TestSession_BonusDeclined(t *testing.T) {
	s, out := newTestSession(t, "[Cola-2]\nN\nN\nN\n")

	require.NoError(t, s.Run(t.Context()))

	got := out.String()
	// No full bundle formed, so no gift section and no promotion savings.
	assert.NotContains(t, got, "==============Gifts===================")
	assert.Contains(t, got, fmt.Sprintf("%-22s %11s", "Promotion discount", "-0"))
}

func TestSession_FullPriceRemainderDeclined(t *testing.T) {
	// 12 Cola exceeds the promotional lot; declining the full-price part
	// aborts the order, then a fresh one goes through.
	s, out := newTestSession(t, "[Cola-12]\nN\n[Water-1]\nN\nN\n")

	require.NoError(t, s.Run(t.Context()))

	got := out.String()
	assert.Contains(t, got, "are not eligible for the promotion discount")
	assert.NotContains(t, got, "[ERROR]")
	assert.Contains(t, got, "Water")
	assert.Contains(t, got, "500")
}

func TestSession_MembershipDiscount(t *testing.T) {
	s, out := newTestSession(t, "[Water-2]\nY\nN\n")

	require.NoError(t, s.Run(t.Context()))

	got := out.String()
	assert.Contains(t, got, fmt.Sprintf("%-22s %11s", "Membership discount", "-300"))
	assert.Contains(t, got, "700")
}

func TestSession_MalformedOrderRetries(t *testing.T) {
	s, out := newTestSession(t, "Cola-3\n[Water-1]\nN\nN\n")

	require.NoError(t, s.Run(t.Context()))

	got := out.String()
	assert.Contains(t, got, "[ERROR]")
	assert.Contains(t, got, "Please try again.")
	assert.Contains(t, got, "Amount due")
}

func TestSession_UnknownProductRetries(t *testing.T) {
	s, out := newTestSession(t, "[Kimchi-1]\n[Water-1]\nN\nN\n")

	require.NoError(t, s.Run(t.Context()))

	got := out.String()
	assert.Contains(t, got, "[ERROR]")
	assert.Contains(t, got, "Kimchi")
}

func TestSession_EndsOnEOF(t *testing.T) {
	s, out := newTestSession(t, "")

	require.NoError(t, s.Run(t.Context()))

	assert.Contains(t, out.String(), "Welcome to W Store.")
}

func TestSession_MultipleRounds(t *testing.T) {
	s, out := newTestSession(t, "[Water-1]\nN\nY\n[Water-2]\nN\nN\n")

	require.NoError(t, s.Run(t.Context()))

	got := out.String()
	assert.Equal(t, 2, strings.Count(got, "Amount due"))
	assert.Equal(t, 2, strings.Count(got, "Welcome to W Store."))
}

func TestRenderReceipt_Layout(t *testing.T) {
	r := receipt.New([]receipt.Item{
		{Name: "Cola", Quantity: 3, UnitPrice: decimal.NewFromInt(1000), GiftQuantity: 1, Promoted: true},
		{Name: "Water", Quantity: 2, UnitPrice: decimal.NewFromInt(500)},
	}, decimal.NewFromInt(1000), true, receipt.DefaultMembership())

	var out strings.Builder
	RenderReceipt(&out, r)

	got := out.String()
	assert.Contains(t, got, fmt.Sprintf("%-16s %5d %11s", "Cola", 3, "3,000"))
	assert.Contains(t, got, fmt.Sprintf("%-16s %5d %11s", "Water", 2, "1,000"))
	assert.Contains(t, got, fmt.Sprintf("%-16s %5d\n", "Cola", 1))
	assert.Contains(t, got, fmt.Sprintf("%-16s %5d %11s", "Total", 5, "4,000"))
	assert.Contains(t, got, fmt.Sprintf("%-22s %11s", "Promotion discount", "-1,000"))
	assert.Contains(t, got, fmt.Sprintf("%-22s %11s", "Membership discount", "-300"))
	assert.Contains(t, got, fmt.Sprintf("%-22s %11s", "Amount due", "2,700"))
}
