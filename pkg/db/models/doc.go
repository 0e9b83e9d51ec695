// Package models holds the GORM mappings for the restaurant schema.
package models

import "github.com/shopspring/decimal"

func init() {
	// money columns travel as JSON numbers, which is what the browser client sums
	decimal.MarshalJSONWithoutQuotes = true
}
