// Package flatfile loads the product and promotion catalogs from the
// delimited text tables the store ships with. Each table is a header line
// followed by comma-separated rows.
package flatfile

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/convenience-store/internal/domain/product"
	"github.com/xenking/convenience-store/internal/domain/promotion"
)

const (
	fieldSep        = ","
	noPromotion     = "null"
	productFields   = 4
	promotionFields = 5
	dateLayout      = "2006-01-02"
)

// LoadProducts parses the product table: name,price,quantity,promotionName
// rows. A promotionName of "null" or empty means no promotion. Blank lines
// are skipped.
func LoadProducts(r io.Reader) ([]*product.Product, error) {
	var products []*product.Product
	err := scanRows(r, productFields, func(row int, fields []string) error {
		price, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "price %q", fields[1])
		}
		quantity, err := strconv.Atoi(fields[2])
		if err != nil {
			return errors.Wrapf(err, "quantity %q", fields[2])
		}
		ref := fields[3]
		if ref == noPromotion {
			ref = ""
		}

		p, err := product.New(fields[0], decimal.NewFromInt(price), quantity, ref)
		if err != nil {
			return err
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// LoadPromotions parses the promotion table:
// name,buyQuantity,giftQuantity,startDate,endDate rows with ISO dates.
func LoadPromotions(r io.Reader) ([]promotion.Promotion, error) {
	var promotions []promotion.Promotion
	err := scanRows(r, promotionFields, func(row int, fields []string) error {
		buy, err := strconv.Atoi(fields[1])
		if err != nil {
			return errors.Wrapf(err, "buy quantity %q", fields[1])
		}
		get, err := strconv.Atoi(fields[2])
		if err != nil {
			return errors.Wrapf(err, "gift quantity %q", fields[2])
		}
		start, err := time.Parse(dateLayout, fields[3])
		if err != nil {
			return errors.Wrapf(err, "start date %q", fields[3])
		}
		end, err := time.Parse(dateLayout, fields[4])
		if err != nil {
			return errors.Wrapf(err, "end date %q", fields[4])
		}

		p, err := promotion.New(fields[0], buy, get, start, end)
		if err != nil {
			return err
		}
		promotions = append(promotions, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return promotions, nil
}

// scanRows walks the table line by line, skipping the header and blank
// lines, and hands the split fields of each row to fn.
func scanRows(r io.Reader, wantFields int, fn func(row int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		row++
		line := strings.TrimSpace(scanner.Text())
		if row == 1 || line == "" {
			continue
		}

		fields := strings.Split(line, fieldSep)
		if len(fields) != wantFields {
			return errors.Errorf("row %d: want %d fields, got %d", row, wantFields, len(fields))
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if err := fn(row, fields); err != nil {
			return errors.Wrapf(err, "row %d", row)
		}
	}
	return errors.Wrap(scanner.Err(), "scan table")
}

// Load reads both catalog files in parallel and assembles the catalogs.
func Load(ctx context.Context, productsPath, promotionsPath string) (*product.Catalog, *promotion.Catalog, error) {
	var (
		products   []*product.Product
		promotions []promotion.Promotion
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		products, err = loadFile(productsPath, LoadProducts)
		return errors.Wrapf(err, "load products from %s", productsPath)
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		promotions, err = loadFile(promotionsPath, LoadPromotions)
		return errors.Wrapf(err, "load promotions from %s", promotionsPath)
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return buildCatalogs(products, promotions)
}

// LoadBytes builds the catalogs from in-memory tables, used for the
// embedded defaults.
func LoadBytes(productsTable, promotionsTable []byte) (*product.Catalog, *promotion.Catalog, error) {
	products, err := LoadProducts(bytes.NewReader(productsTable))
	if err != nil {
		return nil, nil, errors.Wrap(err, "load products")
	}
	promotions, err := LoadPromotions(bytes.NewReader(promotionsTable))
	if err != nil {
		return nil, nil, errors.Wrap(err, "load promotions")
	}
	return buildCatalogs(products, promotions)
}

func buildCatalogs(products []*product.Product, promotions []promotion.Promotion) (*product.Catalog, *promotion.Catalog, error) {
	promoCatalog, err := promotion.NewCatalog(promotions)
	if err != nil {
		return nil, nil, errors.Wrap(err, "build promotion catalog")
	}
	return product.NewCatalog(products), promoCatalog, nil
}

func loadFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer func() { _ = f.Close() }()

	return parse(f)
}
