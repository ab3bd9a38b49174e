package validation

import (
	"strings"

	"github.com/suar-net/iberbanco-go/internal/enum"
	"github.com/suar-net/iberbanco-go/internal/sdkerr"
)

// Length bounds the byte length of value to [min, max].
func Length(value string, min, max int, field string) error {
	if err := MinLength(value, min, field); err != nil {
		return err
	}
	return MaxLength(value, max, field)
}

func MinLength(value string, min int, field string) error {
	if n := len(value); n < min {
		return sdkerr.Minimum(field, n, min)
	}
	return nil
}

func MaxLength(value string, max int, field string) error {
	if n := len(value); n > max {
		return sdkerr.Maximum(field, n, max)
	}
	return nil
}

func NameFormat(value, field string) error {
	if !nameRe.MatchString(value) {
		return sdkerr.InvalidFormat(field, "letters, spaces, hyphens, apostrophes, and periods only")
	}
	return nil
}

func Alphanumeric(value, field string) error {
	if validate.Var(value, "required,alphanum") != nil {
		return sdkerr.InvalidFormat(field, "alphanumeric characters only")
	}
	return nil
}

// CountryCode accepts an ISO 3166-1 alpha-2 code in upper case.
func CountryCode(value, field string) error {
	if len(value) != 2 {
		return sdkerr.InvalidFormat(field, "ISO 3166-1 alpha-2 (2 letters)")
	}
	if !countryCodeRe.MatchString(strings.ToUpper(value)) {
		return sdkerr.InvalidFormat(field, "alphabetic characters only")
	}
	if !countryCodeRe.MatchString(value) {
		return sdkerr.InvalidFormat(field, "uppercase letters")
	}
	return nil
}

func PostalCode(value, field string) error {
	if !postalCodeRe.MatchString(value) {
		return sdkerr.InvalidFormat(field, "alphanumeric with spaces and hyphens, 3-10 characters")
	}
	return nil
}

func Phone(value, field string) error {
	if !phoneRe.MatchString(value) {
		return sdkerr.InvalidFormat(field, "valid international phone number")
	}
	return nil
}

func IdentityDocumentNumber(value, field string) error {
	if err := Length(value, 5, 50, field); err != nil {
		return err
	}
	if !identityDocRe.MatchString(value) {
		return sdkerr.InvalidFormat(field, "alphanumeric characters, hyphens, and spaces only")
	}
	return nil
}

func Email(value, field string) error {
	if err := validate.Var(value, "required,email"); err != nil {
		return sdkerr.InvalidEmail(field, value)
	}
	return nil
}

// URL requires an absolute URL no longer than maxLen bytes.
func URL(value string, maxLen int, field string) error {
	if err := validate.Var(value, "required,url"); err != nil {
		return sdkerr.InvalidFormat(field, "valid URL")
	}
	return MaxLength(value, maxLen, field)
}

func OneOf(value string, allowed []string, field string) error {
	if validate.Var(value, "oneof="+strings.Join(allowed, " ")) != nil {
		return sdkerr.InvalidValue(field, value, allowed...)
	}
	return nil
}

// OneOfFold is OneOf ignoring case.
func OneOfFold(value string, allowed []string, field string) error {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return sdkerr.InvalidValue(field, value, allowed...)
}

// CurrencyCode accepts any supported alphabetic code, ignoring case.
func CurrencyCode(code, field string) error {
	if !enum.IsSupportedCurrency(code) {
		return sdkerr.InvalidCurrency(field, code)
	}
	return nil
}

func CurrencyID(id int, field string) error {
	if !enum.Currency(id).IsValid() {
		return sdkerr.InvalidCurrency(field, id)
	}
	return nil
}

// Address checks a nested address object. Fields are reported as prefix.name.
func Address(addr map[string]any, prefix string) error {
	for _, f := range []string{"street", "city", "state", "postal_code", "country"} {
		if IsBlank(addr[f]) {
			return sdkerr.Required(prefix + "." + f)
		}
	}
	str := func(k string) string {
		s, _ := addr[k].(string)
		return s
	}
	city := str("city")
	return First(
		Length(str("street"), 5, 255, prefix+".street"),
		Length(city, 2, 100, prefix+".city"),
		NameFormat(city, prefix+".city"),
		Length(str("state"), 2, 100, prefix+".state"),
		PostalCode(str("postal_code"), prefix+".postal_code"),
		CountryCode(str("country"), prefix+".country"),
	)
}
