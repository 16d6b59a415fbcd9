// Package data provides the embedded default catalog tables.
package data

import _ "embed"

// Products contains the default product table.
//
//go:embed products.md
var Products []byte

// Promotions contains the default promotion table.
//
//go:embed promotions.md
var Promotions []byte
