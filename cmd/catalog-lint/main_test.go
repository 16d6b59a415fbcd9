package main

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/convenience-store/internal/domain/product"
	"github.com/xenking/convenience-store/internal/domain/promotion"
)

func lintLot(t *testing.T, name, ref string) *product.Product {
	t.Helper()
	p, err := product.New(name, decimal.NewFromInt(1000), 10, ref)
	require.NoError(t, err)
	return p
}

func lintPromo(t *testing.T, name string) promotion.Promotion {
	t.Helper()
	p, err := promotion.New(name, 2, 1,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return p
}

func TestLint_CleanCatalog(t *testing.T) {
	products := []*product.Product{
		lintLot(t, "Cola", "Soda 2+1"),
		lintLot(t, "Cola", ""),
		lintLot(t, "Water", ""),
	}
	promotions := []promotion.Promotion{lintPromo(t, "Soda 2+1")}

	assert.Empty(t, lint(products, promotions))
}

func TestLint_DuplicatePromotion(t *testing.T) {
	promotions := []promotion.Promotion{
		lintPromo(t, "Soda 2+1"),
		lintPromo(t, "Soda 2+1"),
	}

	findings := lint(nil, promotions)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "promotion Soda 2+1 defined 2 times")
}

func TestLint_DanglingPromotionRef(t *testing.T) {
	products := []*product.Product{lintLot(t, "Cola", "Gone")}

	findings := lint(products, nil)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "unknown promotion Gone")
}

func TestLint_TooManyLots(t *testing.T) {
	products := []*product.Product{
		lintLot(t, "Cola", "Soda 2+1"),
		lintLot(t, "Cola", ""),
		lintLot(t, "Cola", ""),
	}
	promotions := []promotion.Promotion{lintPromo(t, "Soda 2+1")}

	findings := lint(products, promotions)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "3 lots")
}

func TestLint_TwoPromotionalLots(t *testing.T) {
	products := []*product.Product{
		lintLot(t, "Cola", "Soda 2+1"),
		lintLot(t, "Cola", "Soda 2+1"),
	}
	promotions := []promotion.Promotion{lintPromo(t, "Soda 2+1")}

	findings := lint(products, promotions)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "2 promotional lots")
}
