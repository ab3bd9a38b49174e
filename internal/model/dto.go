package model

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/suar-net/iberbanco-go/internal/sdkerr"
	"github.com/suar-net/iberbanco-go/internal/validation"
)

// DTO is one API operation's request payload. Fields are pointers so that an
// unset field stays nil and is left out of the wire form.
type DTO interface {
	// RequiredFields lists the wire names that must be present.
	RequiredFields() []string
	// Validate runs the required check, then each field check in declaration
	// order, stopping at the first failure. now feeds date-relative rules.
	Validate(now time.Time) error

	fields() []field
}

type field struct {
	name  string
	value any
	set   bool
}

func opt[T any](name string, p *T) field {
	if p == nil {
		return field{name: name}
	}
	return field{name: name, value: *p, set: true}
}

func list[T any](name string, s []T) field {
	if s == nil {
		return field{name: name}
	}
	return field{name: name, value: s, set: true}
}

func currency(name string, c *Currency) field {
	if c == nil {
		return field{name: name}
	}
	return field{name: name, value: c.Value(), set: true}
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for date-relative checks such as minimum age.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// FromMap copies the recognized keys of data into a new T and validates it.
// Unknown keys are ignored. Numeric strings are accepted for numeric fields.
// On failure no DTO is returned.
func FromMap[T any, P interface {
	*T
	DTO
}](data map[string]any, opts ...Option) (P, error) {
	o := options{now: time.Now}
	for _, apply := range opts {
		apply(&o)
	}

	dto := P(new(T))
	if err := decode(data, dto); err != nil {
		return nil, err
	}
	if err := dto.Validate(o.now()); err != nil {
		return nil, err
	}
	return dto, nil
}

// ToMap returns the wire form in declaration order. Unset fields are omitted
// unless includeNulls is true. Values carry the field's Go type rather than
// the caller's input type: an int amount comes back as float64 and a numeric
// string currency as an int.
func ToMap(dto DTO, includeNulls bool) map[string]any {
	out := make(map[string]any)
	for _, f := range dto.fields() {
		if f.set || includeNulls {
			out[f.name] = f.value
		}
	}
	return out
}

// FieldNames lists the recognized keys of a DTO in declaration order.
func FieldNames(dto DTO) []string {
	fs := dto.fields()
	names := make([]string, 0, len(fs))
	for _, f := range fs {
		names = append(names, f.name)
	}
	return names
}

func requireFields(dto DTO) error {
	return validation.Required(ToMap(dto, true), dto.RequiredFields())
}

var currencyType = reflect.TypeOf(Currency{})

func currencyHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != currencyType {
		return data, nil
	}
	return ParseCurrency(data), nil
}

func decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(currencyHook),
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(data); err != nil {
		return decodeError(err)
	}
	return nil
}

// decodeError turns a type mismatch reported by the decoder into a
// validation failure naming the offending fields.
func decodeError(err error) error {
	var fields, msgs []string
	if me, ok := err.(*mapstructure.Error); ok {
		for _, e := range me.Errors {
			msgs = append(msgs, e)
			if name := quoted(e); name != "" {
				fields = append(fields, name)
			}
		}
	} else {
		msgs = []string{err.Error()}
	}
	return &sdkerr.ValidationError{
		Fields:  fields,
		Message: "Invalid field types: " + strings.Join(msgs, "; "),
		Errors:  msgs,
	}
}

// quoted returns the first single-quoted name in a decoder message.
func quoted(msg string) string {
	_, rest, ok := strings.Cut(msg, "'")
	if !ok {
		return ""
	}
	name, _, ok := strings.Cut(rest, "'")
	if !ok {
		return ""
	}
	return name
}

// Ptr returns a pointer to v, for building DTOs in code.
func Ptr[T any](v T) *T {
	return &v
}

func has(p *string) bool {
	return p != nil && *p != ""
}

func checkPaging(perPage, page *int) error {
	if perPage != nil {
		if err := validation.IntWithin(*perPage, 1, 100, "per_page"); err != nil {
			return err
		}
	}
	return checkPage(page)
}

func checkPage(page *int) error {
	if page != nil {
		return validation.MinInt(*page, 1, "page")
	}
	return nil
}

// checkDates validates each present date and, when both are present, their
// order and the maxDays span (0 means unbounded).
func checkDates(from, to *string, maxDays int) error {
	if has(from) {
		if err := validation.Date(*from, "date_from"); err != nil {
			return err
		}
	}
	if has(to) {
		if err := validation.Date(*to, "date_to"); err != nil {
			return err
		}
	}
	if has(from) && has(to) {
		return validation.DateRange(*from, *to, maxDays)
	}
	return nil
}

// checkBounds validates an optional non-negative min/max pair.
func checkBounds(min, max *float64, minField, maxField, rangeField string) error {
	if min != nil {
		if err := validation.Finite(*min, minField); err != nil {
			return err
		}
	}
	if max != nil {
		if err := validation.Finite(*max, maxField); err != nil {
			return err
		}
	}
	if min != nil && *min < 0 {
		return sdkerr.Minimum(minField, *min, 0)
	}
	if max != nil && *max < 0 {
		return sdkerr.Minimum(maxField, *max, 0)
	}
	if min != nil && max != nil && *min > *max {
		return sdkerr.InvalidValue(rangeField, fmt.Sprintf("%v - %v", *min, *max),
			minField+" must be less than or equal to "+maxField)
	}
	return nil
}
