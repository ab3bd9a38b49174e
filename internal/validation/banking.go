package validation

import (
	"strings"

	"github.com/suar-net/iberbanco-go/internal/sdkerr"
)

// IBAN checks structure and the ISO 7064 mod-97 checksum. Spaces are ignored
// and letters are matched case-insensitively.
func IBAN(value, field string) error {
	iban := NormalizeIBAN(value)
	if len(iban) < 15 || len(iban) > 34 {
		return sdkerr.InvalidFormat(field, "valid IBAN (15-34 characters)")
	}
	if !ibanRe.MatchString(iban) {
		return sdkerr.InvalidFormat(field, "valid IBAN format")
	}
	if ibanMod97(iban) != 1 {
		return sdkerr.InvalidFormat(field, "valid IBAN checksum")
	}
	return nil
}

func IsValidIBAN(value string) bool {
	return IBAN(value, "iban") == nil
}

func NormalizeIBAN(value string) string {
	return strings.ToUpper(strings.ReplaceAll(value, " ", ""))
}

// ibanMod97 moves the first four characters to the end, expands letters to
// two-digit numbers (A=10 .. Z=35) and reduces the numeral mod 97 digit by digit.
func ibanMod97(iban string) int {
	rearranged := iban[4:] + iban[:4]
	rem := 0
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		switch {
		case c >= '0' && c <= '9':
			rem = (rem*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			rem = (rem*100 + int(c-'A') + 10) % 97
		}
	}
	return rem
}

// SwiftCode accepts an 8 or 11 character BIC, ignoring case.
func SwiftCode(value, field string) error {
	if !swiftRe.MatchString(strings.ToUpper(value)) {
		return sdkerr.InvalidFormat(field, "valid SWIFT/BIC code (8-11 characters)")
	}
	return nil
}

func RoutingNumber(value, field string) error {
	if validate.Var(value, "number,len=9") != nil {
		return sdkerr.InvalidFormat(field, "9-digit routing number")
	}
	return nil
}

// SortCode accepts a UK sort code written as 123456 or 12-34-56.
func SortCode(value, field string) error {
	if !sortCodeRe.MatchString(strings.ReplaceAll(value, "-", "")) {
		return sdkerr.InvalidFormat(field, "6-digit sort code")
	}
	return nil
}
