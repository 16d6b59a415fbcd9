// Command catalog-lint validates catalog data files without running the
// store: malformed rows, duplicate promotions, impossible lot layouts, and
// dangling promotion references.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/convenience-store/internal/domain/product"
	"github.com/xenking/convenience-store/internal/domain/promotion"
	"github.com/xenking/convenience-store/internal/storage/flatfile"
)

func main() {
	var (
		productsPath   string
		promotionsPath string
	)

	flag.StringVar(&productsPath, "products", "data/products.md", "path to the product table")
	flag.StringVar(&promotionsPath, "promotions", "data/promotions.md", "path to the promotion table")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, productsPath, promotionsPath); err != nil {
		slog.Error("catalog lint failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, productsPath, promotionsPath string) error {
	var (
		products   []*product.Product
		promotions []promotion.Promotion
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := os.Open(productsPath)
		if err != nil {
			return errors.Wrap(err, "open products")
		}
		defer func() { _ = f.Close() }()

		products, err = flatfile.LoadProducts(f)
		return errors.Wrapf(err, "parse %s", productsPath)
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := os.Open(promotionsPath)
		if err != nil {
			return errors.Wrap(err, "open promotions")
		}
		defer func() { _ = f.Close() }()

		promotions, err = flatfile.LoadPromotions(f)
		return errors.Wrapf(err, "parse %s", promotionsPath)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	findings := lint(products, promotions)
	for _, f := range findings {
		slog.Error("catalog problem", slog.String("finding", f))
	}
	if len(findings) > 0 {
		return errors.Errorf("%d problem(s) found", len(findings))
	}

	slog.Info("catalogs are clean",
		slog.Int("lots", len(products)),
		slog.Int("promotions", len(promotions)),
	)
	return nil
}

// lint runs the cross-table checks the loaders do not enforce.
func lint(products []*product.Product, promotions []promotion.Promotion) []string {
	var findings []string

	promoNames := make(map[string]int, len(promotions))
	for _, p := range promotions {
		promoNames[p.Name]++
	}
	for name, n := range promoNames {
		if n > 1 {
			findings = append(findings, fmt.Sprintf("promotion %s defined %d times", name, n))
		}
	}

	lots := make(map[string]int, len(products))
	promoLots := make(map[string]int, len(products))
	for _, p := range products {
		lots[p.Name]++
		if !p.Promoted() {
			continue
		}
		promoLots[p.Name]++
		if _, ok := promoNames[p.PromotionRef]; !ok {
			findings = append(findings, fmt.Sprintf(
				"product %s references unknown promotion %s", p.Name, p.PromotionRef))
		}
	}
	for name, n := range lots {
		if n > 2 {
			findings = append(findings, fmt.Sprintf("product %s has %d lots, at most 2 allowed", name, n))
		}
	}
	for name, n := range promoLots {
		if n > 1 {
			findings = append(findings, fmt.Sprintf("product %s has %d promotional lots, at most 1 allowed", name, n))
		}
	}

	return findings
}
