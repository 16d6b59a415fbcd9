package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/convenience-store/internal/domain/order"
	"github.com/xenking/convenience-store/internal/domain/product"
	"github.com/xenking/convenience-store/internal/domain/receipt"
)

// errOrderDeclined aborts the current order when the shopper refuses the
// full-price remainder; the whole order is re-solicited.
var errOrderDeclined = errors.New("order declined")

// Session drives the interactive checkout loop against the pricing engine.
type Session struct {
	in      *bufio.Scanner
	out     io.Writer
	orders  *order.Service
	catalog *product.Catalog
	lg      *zap.Logger
}

// NewSession wires the session to its input, output, and the pricing engine.
func NewSession(in io.Reader, out io.Writer, orders *order.Service, catalog *product.Catalog, lg *zap.Logger) *Session {
	return &Session{
		in:      bufio.NewScanner(in),
		out:     out,
		orders:  orders,
		catalog: catalog,
		lg:      lg,
	}
}

// Run executes checkout rounds until the shopper declines to continue, the
// input ends, or the context is cancelled.
func (s *Session) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		RenderCatalog(s.out, s.catalog.Describe())

		rcpt, err := s.checkout()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if !errors.Is(err, errOrderDeclined) {
				s.printError(err)
			}
			continue
		}

		RenderReceipt(s.out, rcpt)
		s.lg.Info("order priced",
			zap.String("receipt_id", rcpt.ID),
			zap.Int("items", len(rcpt.Items)),
			zap.String("final_amount", rcpt.FinalAmount().String()),
		)

		again, err := s.readYesNo("\nThank you. Anything else you would like to buy? (Y/N)")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.printError(err)
			continue
		}
		if !again {
			return nil
		}
	}
}

// checkout runs one order round: read and validate the order, resolve the
// interactive confirmations, then price it.
func (s *Session) checkout() (*receipt.Receipt, error) {
	items, err := s.readOrder()
	if err != nil {
		return nil, err
	}
	if err := s.orders.Validate(items); err != nil {
		return nil, err
	}

	items, err = s.offerBonuses(items)
	if err != nil {
		return nil, err
	}
	if err := s.confirmFullPriceRemainders(items); err != nil {
		return nil, err
	}

	useMembership, err := s.readYesNo("\nWould you like the membership discount? (Y/N)")
	if err != nil {
		return nil, err
	}

	return s.orders.PriceOrder(items, useMembership)
}

func (s *Session) readOrder() ([]order.Item, error) {
	fmt.Fprintln(s.out, "\nEnter product name and quantity (e.g. [Cola-3],[Water-1])")
	line, err := s.readLine()
	if err != nil {
		return nil, err
	}
	return ParseOrder(line)
}

// offerBonuses asks about lines that are one unit short of another free
// unit and adds the gifted units on acceptance.
func (s *Session) offerBonuses(items []order.Item) ([]order.Item, error) {
	for i, it := range items {
		if !s.orders.CanOfferBonus(it.Name, it.Quantity) {
			continue
		}
		bonus := s.orders.BonusUnits(it.Name)
		yes, err := s.readYesNo(fmt.Sprintf(
			"\nYou can get %d more %s for free. Add it? (Y/N)", bonus, it.Name))
		if err != nil {
			return nil, err
		}
		if yes {
			items[i].Quantity += bonus
		}
	}
	return items, nil
}

// confirmFullPriceRemainders warns about the part of a line the promotion
// cannot cover. Declining aborts the whole order.
func (s *Session) confirmFullPriceRemainders(items []order.Item) error {
	for _, it := range items {
		if !s.orders.NeedsWarning(it.Name, it.Quantity) {
			continue
		}
		excess := s.orders.ExcessQuantity(it.Name, it.Quantity)
		yes, err := s.readYesNo(fmt.Sprintf(
			"\n%d of %s are not eligible for the promotion discount. Buy them at full price? (Y/N)",
			excess, it.Name))
		if err != nil {
			return err
		}
		if !yes {
			return errOrderDeclined
		}
	}
	return nil
}

func (s *Session) readYesNo(prompt string) (bool, error) {
	fmt.Fprintln(s.out, prompt)
	line, err := s.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToUpper(strings.TrimSpace(line)) {
	case "Y":
		return true, nil
	case "N":
		return false, nil
	default:
		return false, errors.Wrapf(ErrMalformedInput, "answer %q, want Y or N", strings.TrimSpace(line))
	}
}

func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

func (s *Session) printError(err error) {
	fmt.Fprintf(s.out, "\n[ERROR] %s. Please try again.\n", err)
}
