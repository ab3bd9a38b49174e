package validation_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suar-net/iberbanco-go/internal/sdkerr"
	"github.com/suar-net/iberbanco-go/internal/validation"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var verr *sdkerr.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr.Field()
}

func TestIBAN(t *testing.T) {
	valid := []string{
		"GB82WEST12345698765432",
		"GB82 WEST 1234 5698 7654 32",
		"DE89370400440532013000",
		"FR1420041010050500013M02606",
		"NL91ABNA0417164300",
		"gb82west12345698765432",
	}
	for _, iban := range valid {
		assert.NoError(t, validation.IBAN(iban, "recipient_iban"), iban)
		assert.True(t, validation.IsValidIBAN(iban), iban)
	}

	invalid := map[string]string{
		"too short":        "GB82WEST1234",
		"too long":         "GB82" + strings.Repeat("1", 31),
		"bad checksum":     "GB83WEST12345698765432",
		"corrupted digit":  "DE89370400440532013001",
		"digits in prefix": "1282WEST12345698765432",
		"symbols":          "GB82WEST1234569876543!",
	}
	for name, iban := range invalid {
		err := validation.IBAN(iban, "recipient_iban")
		assert.ErrorIs(t, err, sdkerr.ErrValidation, name)
		assert.Equal(t, "recipient_iban", fieldOf(t, err), name)
	}
}

func TestRequiredBatchesMissingFields(t *testing.T) {
	err := validation.Required(map[string]any{
		"username": "  ",
		"password": nil,
		"currency": []string{},
		"amount":   0.0,
		"accepted": false,
	}, []string{"username", "password", "currency", "amount", "accepted", "email"})

	var verr *sdkerr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"username", "password", "currency", "email"}, verr.Fields)
	assert.Equal(t, "Missing required fields: username, password, currency, email", verr.Message)

	assert.NoError(t, validation.Required(map[string]any{"a": "x"}, []string{"a"}))
}

func TestLength(t *testing.T) {
	err := validation.Length("ab", 3, 255, "username")
	require.Error(t, err)
	assert.Equal(t, "The username field must be at least 3. Got: 2", err.Error())

	err = validation.Length(strings.Repeat("a", 256), 3, 255, "username")
	assert.Equal(t, "The username field must not exceed 255. Got: 256", err.Error())

	assert.NoError(t, validation.Length("abc", 3, 255, "username"))
}

func TestFormats(t *testing.T) {
	tests := []struct {
		name  string
		check func(string, string) error
		ok    []string
		bad   []string
	}{
		{"name", validation.NameFormat, []string{"Anne-Marie", "O'Neil", "J. Doe"}, []string{"R2D2", "Zoë"}},
		{"alnum", validation.Alphanumeric, []string{"U12345"}, []string{"U-1", "", "Ü1", "U 1"}},
		{"country", validation.CountryCode, []string{"GB", "US"}, []string{"gb", "G1", "GBR"}},
		{"postal", validation.PostalCode, []string{"SW1A 1AA", "10001", "123-45"}, []string{"12", "12345678901", "1_2_3"}},
		{"phone", validation.Phone, []string{"+447911123456", "14155552671"}, []string{"0123", "+0123456", "+12345678901234567"}},
		{"swift", validation.SwiftCode, []string{"DEUTDEFF", "deutdeff500", "NWBKGB2L"}, []string{"DEUT", "DEUTDEFF5", "12UTDEFF"}},
		{"routing", validation.RoutingNumber, []string{"021000021"}, []string{"02100002", "02100002A", "+21000021", "0210000.1", "0210000210"}},
		{"sort code", validation.SortCode, []string{"12-34-56", "123456"}, []string{"12-34-5", "12 34 56"}},
		{"identity", validation.IdentityDocumentNumber, []string{"AB 123-456"}, []string{"AB1", "AB#12345"}},
		{"email", validation.Email, []string{"jane@example.com"}, []string{"jane", "jane@", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range tt.ok {
				assert.NoError(t, tt.check(v, "f"), v)
			}
			for _, v := range tt.bad {
				assert.ErrorIs(t, tt.check(v, "f"), sdkerr.ErrValidation, v)
			}
		})
	}
}

func TestURL(t *testing.T) {
	assert.NoError(t, validation.URL("https://shop.example.com/done?id=1", 2048, "redirect_url"))
	assert.Error(t, validation.URL("not a url", 2048, "redirect_url"))

	long := "https://example.com/" + strings.Repeat("a", 2048)
	err := validation.URL(long, 2048, "redirect_url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not exceed 2048")
}

func TestEnumerations(t *testing.T) {
	assert.NoError(t, validation.OneOf("Registered", validation.DeliveryMethods, "delivery_method"))
	assert.Error(t, validation.OneOf("registered", validation.DeliveryMethods, "delivery_method"))
	assert.Error(t, validation.OneOf("", validation.DeliveryMethods, "delivery_method"))
	err := validation.OneOf("Express", validation.DeliveryMethods, "delivery_method")
	assert.Equal(t, "Invalid value 'Express' for field 'delivery_method'. Allowed values: Standard, Registered", err.Error())

	assert.NoError(t, validation.OneOfFold("CSV", validation.ExportFormats, "format"))
	assert.Error(t, validation.OneOfFold("pdf", validation.ExportFormats, "format"))

	assert.NoError(t, validation.OneOfInt(2, []int{1, 2}, "currency"))
	assert.Equal(t, "Invalid value '3' for field 'currency'. Allowed values: 1, 2",
		validation.OneOfInt(3, []int{1, 2}, "currency").Error())

	assert.NoError(t, validation.CurrencyCode("usd", "from"))
	assert.Equal(t, "Invalid currency code: XYZ", validation.CurrencyCode("XYZ", "from").Error())
	assert.NoError(t, validation.CurrencyID(16, "currency"))
	assert.Error(t, validation.CurrencyID(0, "currency"))
}

func TestAmounts(t *testing.T) {
	min := validation.MinTransferAmount
	assert.NoError(t, validation.MinAmount(0.01, min, "amount"))
	assert.Error(t, validation.MinAmount(0.009, min, "amount"))

	lo, hi := decimal.NewFromInt(1), decimal.NewFromInt(5000)
	assert.NoError(t, validation.AmountRange(1, lo, hi, "amount"))
	assert.NoError(t, validation.AmountRange(5000, lo, hi, "amount"))
	err := validation.AmountRange(5000.01, lo, hi, "amount")
	require.Error(t, err)
	assert.Equal(t, "The amount field must be between 1 and 5000. Got: 5000.01", err.Error())

	max := decimal.NewFromInt(10_000_000)
	assert.NoError(t, validation.PositiveAmount(10_000_000, max, "amount"))
	assert.Error(t, validation.PositiveAmount(0, max, "amount"))
	assert.Error(t, validation.PositiveAmount(10_000_000.01, max, "amount"))

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.ErrorIs(t, validation.Finite(v, "amount"), sdkerr.ErrValidation)
		assert.ErrorIs(t, validation.MinAmount(v, min, "amount"), sdkerr.ErrValidation)
		assert.ErrorIs(t, validation.AmountRange(v, lo, hi, "amount"), sdkerr.ErrValidation)
		assert.ErrorIs(t, validation.PositiveAmount(v, max, "amount"), sdkerr.ErrValidation)
	}

	assert.NoError(t, validation.IntWithin(100, 1, 100, "per_page"))
	assert.Equal(t, "Invalid value '101' for field 'per_page'. Allowed values: 1-100",
		validation.IntWithin(101, 1, 100, "per_page").Error())
}

func TestDates(t *testing.T) {
	assert.NoError(t, validation.Date("2024-02-29", "date_from"))
	assert.Error(t, validation.Date("2023-02-29", "date_from"))
	assert.Error(t, validation.Date("2024-2-9", "date_from"))
	assert.Error(t, validation.Date("29/02/2024", "date_from"))
	assert.Error(t, validation.Date("2024-02-29T00:00:00Z", "date_from"))
	assert.Error(t, validation.Date("", "date_from"))

	assert.NoError(t, validation.DateRange("2024-01-01", "2024-12-31", 365))
	assert.NoError(t, validation.DateRange("2023-01-01", "2024-01-01", 365))
	assert.Error(t, validation.DateRange("2023-01-01", "2024-01-02", 365))
	assert.Error(t, validation.DateRange("2024-02-02", "2024-02-01", 365))
	assert.NoError(t, validation.DateRange("2020-01-01", "2024-01-01", 0))
}

func TestDateOfBirth(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, validation.DateOfBirth("2007-06-15", "date_of_birth", now))
	assert.NoError(t, validation.DateOfBirth("1980-01-01", "date_of_birth", now))

	err := validation.DateOfBirth("2007-06-16", "date_of_birth", now)
	require.Error(t, err)
	assert.Equal(t, "age", fieldOf(t, err))

	err = validation.DateOfBirth("2026-01-01", "date_of_birth", now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Date cannot be in the future")

	assert.Error(t, validation.DateOfBirth("15-06-1990", "date_of_birth", now))
}

func TestAddress(t *testing.T) {
	addr := map[string]any{
		"street":      "221B Baker Street",
		"city":        "London",
		"state":       "Greater London",
		"postal_code": "NW1 6XE",
		"country":     "GB",
	}
	assert.NoError(t, validation.Address(addr, "address"))

	addr["city"] = "L0nd0n"
	assert.Equal(t, "address.city", fieldOf(t, validation.Address(addr, "address")))

	delete(addr, "country")
	assert.Equal(t, "address.country", fieldOf(t, validation.Address(addr, "address")))
}
