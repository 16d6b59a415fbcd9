package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/convenience-store/internal/domain/order"
)

func TestParseOrder(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []order.Item
	}{
		{
			name: "single item",
			text: "[Cola-3]",
			want: []order.Item{{Name: "Cola", Quantity: 3}},
		},
		{
			name: "multiple items",
			text: "[Cola-3],[Energy Bar-5]",
			want: []order.Item{
				{Name: "Cola", Quantity: 3},
				{Name: "Energy Bar", Quantity: 5},
			},
		},
		{
			name: "surrounding whitespace",
			text: "  [Cola-1] , [Water-2]  ",
			want: []order.Item{
				{Name: "Cola", Quantity: 1},
				{Name: "Water", Quantity: 2},
			},
		},
		{
			name: "duplicate names merged",
			text: "[Cola-3],[Water-1],[Cola-2]",
			want: []order.Item{
				{Name: "Cola", Quantity: 5},
				{Name: "Water", Quantity: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrder(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrder_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty input", text: ""},
		{name: "whitespace only", text: "   "},
		{name: "missing brackets", text: "Cola-3"},
		{name: "missing dash", text: "[Cola3]"},
		{name: "missing quantity", text: "[Cola-]"},
		{name: "missing name", text: "[-3]"},
		{name: "non numeric quantity", text: "[Cola-three]"},
		{name: "zero quantity", text: "[Cola-0]"},
		{name: "negative quantity", text: "[Cola--1]"},
		{name: "trailing comma", text: "[Cola-3],"},
		{name: "nested brackets", text: "[[Cola-3]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOrder(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}
