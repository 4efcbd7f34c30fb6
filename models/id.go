package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Frontend membaca harga sebagai angka, bukan string
	decimal.MarshalJSONWithoutQuotes = true
}

// newID menghasilkan id opak untuk primary key
func newID() string {
	return uuid.NewString()
}
