package services

import "github.com/shopspring/decimal"

// centPlaces is the scale of every money, rate and dimension column.
const centPlaces = 2

// isPositive reports whether d is present and greater than zero.
func isPositive(d *decimal.Decimal) bool {
	return d != nil && d.GreaterThan(decimal.Zero)
}

// checkCents rejects amounts with more precision than the database stores.
// Nil values are skipped.
func checkCents(values ...*decimal.Decimal) error {
	for _, v := range values {
		if v != nil && !v.Equal(v.Round(centPlaces)) {
			return newError(ErrValidation, "Amounts can have at most two decimal places")
		}
	}
	return nil
}
