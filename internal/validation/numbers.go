package validation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/suar-net/iberbanco-go/internal/sdkerr"
)

// MinTransferAmount is the smallest amount accepted for a bank transfer.
var MinTransferAmount = decimal.RequireFromString("0.01")

// Finite rejects NaN and the infinities, which decode from strings such as
// "NaN" and "Inf".
func Finite(amount float64, field string) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return sdkerr.InvalidFormat(field, "finite number")
	}
	return nil
}

// MinAmount rejects amounts below min. Comparison is done in decimal so that
// bounds such as 0.01 are exact.
func MinAmount(amount float64, min decimal.Decimal, field string) error {
	if err := Finite(amount, field); err != nil {
		return err
	}
	if decimal.NewFromFloat(amount).LessThan(min) {
		return sdkerr.Minimum(field, amount, min)
	}
	return nil
}

// AmountRange bounds amount to the closed interval [min, max].
func AmountRange(amount float64, min, max decimal.Decimal, field string) error {
	if err := Finite(amount, field); err != nil {
		return err
	}
	a := decimal.NewFromFloat(amount)
	if a.LessThan(min) || a.GreaterThan(max) {
		return sdkerr.Range(field, amount, min, max)
	}
	return nil
}

// PositiveAmount bounds amount to (0, max].
func PositiveAmount(amount float64, max decimal.Decimal, field string) error {
	if err := Finite(amount, field); err != nil {
		return err
	}
	a := decimal.NewFromFloat(amount)
	if !a.IsPositive() {
		return sdkerr.GreaterThan(field, amount, 0)
	}
	if a.GreaterThan(max) {
		return sdkerr.Maximum(field, amount, max)
	}
	return nil
}

func MinInt(v, min int, field string) error {
	if v < min {
		return sdkerr.Minimum(field, v, min)
	}
	return nil
}

func MaxInt(v, max int, field string) error {
	if v > max {
		return sdkerr.Maximum(field, v, max)
	}
	return nil
}

// IntWithin reports a value outside [min, max] as an invalid value, the way
// paging and export limits are reported by the platform.
func IntWithin(v, min, max int, field string) error {
	if v < min || v > max {
		return sdkerr.InvalidValue(field, v, fmt.Sprintf("%d-%d", min, max))
	}
	return nil
}

func OneOfInt(v int, allowed []int, field string) error {
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		if v == a {
			return nil
		}
		names = append(names, fmt.Sprint(a))
	}
	return sdkerr.InvalidValue(field, v, names...)
}
