// Package app wires the catalogs, the pricing engine, and the console
// session together.
package app

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/convenience-store/data"
	"github.com/xenking/convenience-store/internal/console"
	"github.com/xenking/convenience-store/internal/domain/order"
	"github.com/xenking/convenience-store/internal/domain/product"
	"github.com/xenking/convenience-store/internal/domain/promotion"
	"github.com/xenking/convenience-store/internal/storage/flatfile"
)

// Run loads the catalogs, builds the pricing engine, and drives the console
// session until the shopper leaves. It is the single wiring point for the
// application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	now, err := cfg.clock()
	if err != nil {
		return err
	}
	policy, err := cfg.membershipPolicy()
	if err != nil {
		return err
	}

	var (
		products   *product.Catalog
		promotions *promotion.Catalog
	)
	if cfg.ProductsFile != "" {
		products, promotions, err = flatfile.Load(ctx, cfg.ProductsFile, cfg.PromotionsFile)
	} else {
		products, promotions, err = flatfile.LoadBytes(data.Products, data.Promotions)
	}
	if err != nil {
		return errors.Wrap(err, "load catalogs")
	}

	lg.Info("catalogs loaded",
		zap.Int("lots", products.Len()),
		zap.Int("promotions", promotions.Len()),
	)

	orders := order.NewService(products, promotions, policy, now)
	session := console.NewSession(os.Stdin, os.Stdout, orders, products, lg)
	return session.Run(ctx)
}
