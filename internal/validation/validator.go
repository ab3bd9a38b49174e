// Package validation holds the stateless field checks shared by every request
// payload. Each check returns nil or a *sdkerr.ValidationError naming the field.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/suar-net/iberbanco-go/internal/sdkerr"
)

var validate = validator.New()

var (
	nameRe         = regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`)
	countryCodeRe  = regexp.MustCompile(`^[A-Z]{2}$`)
	postalCodeRe   = regexp.MustCompile(`^[a-zA-Z0-9\s\-]{3,10}$`)
	phoneRe        = regexp.MustCompile(`^[+]?[1-9]\d{1,14}$`)
	swiftRe        = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
	sortCodeRe     = regexp.MustCompile(`^\d{6}$`)
	ibanRe         = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]+$`)
	identityDocRe  = regexp.MustCompile(`^[a-zA-Z0-9\-\s]+$`)
)

var (
	IdentityDocumentTypes   = []string{"passport", "national_id", "driving_license"}
	DeliveryMethods         = []string{"Standard", "Registered"}
	CryptoPaymentCurrencies = []string{"USD", "EUR", "GBP", "CAD", "TRY"}
	ExportFormats           = []string{"csv", "xlsx", "json", "xml"}
	SelectedServices        = []string{"card", "crypto", "bank"}
	SortOrders              = []string{"asc", "desc"}
)

// IsBlank reports whether a value counts as absent for a required field:
// nil, an empty or whitespace-only string, or an empty list or map.
func IsBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

// Required checks every field at once and reports all missing names together.
func Required(values map[string]any, fields []string) error {
	var missing []string
	for _, f := range fields {
		if IsBlank(values[f]) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return sdkerr.MissingFields(missing)
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
