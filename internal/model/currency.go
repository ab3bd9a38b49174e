package model

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/suar-net/iberbanco-go/internal/enum"
	"github.com/suar-net/iberbanco-go/internal/sdkerr"
	"github.com/suar-net/iberbanco-go/internal/validation"
)

type currencyKind uint8

const (
	currencyInvalid currencyKind = iota
	currencyID
	currencyCode
	currencyMany
)

// Currency is a currency field that may hold an internal id, an alphabetic
// code, or a list of either. Values of any other shape are kept and rejected
// by Validate.
type Currency struct {
	kind currencyKind
	id   int
	code string
	many []Currency
	raw  any
}

func CurrencyID(id int) Currency        { return Currency{kind: currencyID, id: id} }
func CurrencyCode(code string) Currency { return Currency{kind: currencyCode, code: code} }

func Currencies(items ...Currency) Currency {
	return Currency{kind: currencyMany, many: items}
}

// ParseCurrency builds a Currency from a decoded JSON or Go value. Numeric
// strings are read as ids.
func ParseCurrency(v any) Currency {
	switch x := v.(type) {
	case Currency:
		return x
	case *Currency:
		if x != nil {
			return *x
		}
	case int:
		return CurrencyID(x)
	case int64:
		return CurrencyID(int(x))
	case float64:
		if x == float64(int(x)) {
			return CurrencyID(int(x))
		}
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return CurrencyID(int(n))
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return CurrencyID(n)
		}
		return CurrencyCode(x)
	case []any:
		items := make([]Currency, 0, len(x))
		for _, e := range x {
			items = append(items, ParseCurrency(e))
		}
		return Currencies(items...)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice {
			items := make([]Currency, 0, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				items = append(items, ParseCurrency(rv.Index(i).Interface()))
			}
			return Currencies(items...)
		}
	}
	return Currency{kind: currencyInvalid, raw: v}
}

func (c Currency) IsMany() bool { return c.kind == currencyMany }

// ID returns the internal id, resolving a code through the currency table.
func (c Currency) ID() (int, bool) {
	switch c.kind {
	case currencyID:
		return c.id, true
	case currencyCode:
		if cur, ok := enum.CurrencyByCode(c.code); ok {
			return int(cur), true
		}
	}
	return 0, false
}

// Value is the plain form sent on the wire.
func (c Currency) Value() any {
	switch c.kind {
	case currencyID:
		return c.id
	case currencyCode:
		return c.code
	case currencyMany:
		out := make([]any, 0, len(c.many))
		for _, m := range c.many {
			out = append(out, m.Value())
		}
		return out
	}
	return c.raw
}

// Validate checks a single value or every element of a list.
func (c Currency) Validate(field string) error {
	switch c.kind {
	case currencyID:
		return validation.CurrencyID(c.id, field)
	case currencyCode:
		return validation.CurrencyCode(c.code, field)
	case currencyMany:
		for _, m := range c.many {
			if m.kind == currencyMany {
				return sdkerr.InvalidCurrency(field, fmt.Sprint(m.Value()))
			}
			if err := m.Validate(field); err != nil {
				return err
			}
		}
		return nil
	}
	return sdkerr.InvalidCurrency(field, fmt.Sprint(c.raw))
}

func (c Currency) String() string {
	return fmt.Sprint(c.Value())
}

func (c Currency) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value())
}

func (c *Currency) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = ParseCurrency(v)
	return nil
}
