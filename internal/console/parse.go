// Package console drives the interactive checkout session: order-text
// parsing, prompts, and catalog/receipt rendering.
package console

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/xenking/convenience-store/internal/domain/order"
)

// ErrMalformedInput is returned when order text does not match the
// [name-quantity] grammar.
var ErrMalformedInput = errors.New("order does not match the [name-quantity] format")

var itemPattern = regexp.MustCompile(`^\[([^\[\]\-]+)-(\d+)\]$`)

// ParseOrder parses raw order text such as "[Cola-3],[Chips-1]" into order
// items. Duplicate product names are merged by summing their quantities.
func ParseOrder(text string) ([]order.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.Wrap(ErrMalformedInput, "empty input")
	}

	segments := strings.Split(text, ",")
	index := make(map[string]int, len(segments))
	items := make([]order.Item, 0, len(segments))
	for _, seg := range segments {
		m := itemPattern.FindStringSubmatch(strings.TrimSpace(seg))
		if m == nil {
			return nil, errors.Wrapf(ErrMalformedInput, "segment %q", strings.TrimSpace(seg))
		}

		name := strings.TrimSpace(m[1])
		quantity, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInput, "quantity %q for %s", m[2], name)
		}
		if quantity <= 0 {
			return nil, errors.Wrapf(ErrMalformedInput, "quantity for %s must be greater than 0", name)
		}

		if i, ok := index[name]; ok {
			items[i].Quantity += quantity
			continue
		}
		index[name] = len(items)
		items = append(items, order.Item{Name: name, Quantity: quantity})
	}
	return items, nil
}
