package model_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/sdkerr"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func clock() model.Option {
	return model.WithClock(func() time.Time { return fixedNow })
}

func validationErr(t *testing.T, err error) *sdkerr.ValidationError {
	t.Helper()
	var verr *sdkerr.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr
}

func TestAuthLogin(t *testing.T) {
	dto, err := model.FromMap[model.AuthLogin](map[string]any{"username": "ab", "password": "123456"})
	require.Error(t, err)
	assert.Nil(t, dto)
	assert.Equal(t, "username", validationErr(t, err).Field())

	dto, err = model.FromMap[model.AuthLogin](map[string]any{"username": "abc", "password": "123456"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"username": "abc", "password": "123456"}, model.ToMap(dto, false))
	assert.NotContains(t, dto.String(), "123456")

	_, err = model.FromMap[model.AuthLogin](map[string]any{"username": "abc", "password": "12345"})
	assert.Equal(t, "password", validationErr(t, err).Field())

	_, err = model.FromMap[model.AuthLogin](map[string]any{"extra": 1})
	assert.Equal(t, []string{"username", "password"}, validationErr(t, err).Fields)
}

func validCard() map[string]any {
	return map[string]any{
		"user_number":           "U123456",
		"account_number":        "ACC-0001",
		"amount":                250.0,
		"currency":              1,
		"shipping_address":      "221B Baker Street",
		"shipping_city":         "London",
		"shipping_state":        "Greater London",
		"shipping_country_code": "GB",
		"shipping_post_code":    "NW1 6XE",
		"delivery_method":       "Standard",
	}
}

func TestCreateCardRoundTrip(t *testing.T) {
	in := validCard()
	dto, err := model.FromMap[model.CreateCard](in)
	require.NoError(t, err)
	assert.Equal(t, in, model.ToMap(dto, false))

	withNulls := model.ToMap(dto, true)
	assert.Contains(t, withNulls, "product_type")
	assert.Nil(t, withNulls["product_type"])
	assert.Equal(t, model.FieldNames(dto)[0], "user_number")
}

func TestToMapReturnsDeclaredTypes(t *testing.T) {
	in := validCard()
	in["amount"] = 100
	in["currency"] = "1"
	dto, err := model.FromMap[model.CreateCard](in)
	require.NoError(t, err)

	out := model.ToMap(dto, false)
	assert.Equal(t, float64(100), out["amount"])
	assert.Equal(t, 1, out["currency"])
	assert.NotEqual(t, in, out)
}

func TestCreateCardBounds(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		field string
	}{
		{"amount below range", "amount", 0.99, "amount"},
		{"amount above range", "amount", 5000.01, "amount"},
		{"gbp card", "currency", 3, "currency"},
		{"unknown delivery", "delivery_method", "Express", "delivery_method"},
		{"lowercase country", "shipping_country_code", "gb", "shipping_country_code"},
		{"symbols in user number", "user_number", "U-1", "user_number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCard()
			in[tt.key] = tt.value
			dto, err := model.FromMap[model.CreateCard](in)
			assert.Nil(t, dto)
			assert.Equal(t, tt.field, validationErr(t, err).Field())
		})
	}

	for _, amount := range []float64{1, 5000} {
		in := validCard()
		in["amount"] = amount
		_, err := model.FromMap[model.CreateCard](in)
		assert.NoError(t, err, amount)
	}
}

func TestWeaklyTypedInput(t *testing.T) {
	in := validCard()
	in["currency"] = "2"
	in["amount"] = "100"
	dto, err := model.FromMap[model.CreateCard](in)
	require.NoError(t, err)
	assert.Equal(t, 2, *dto.Currency)
	assert.Equal(t, 100.0, *dto.Amount)

	_, err = model.FromMap[model.ListUsers](map[string]any{"per_page": "many"})
	verr := validationErr(t, err)
	assert.Equal(t, []string{"per_page"}, verr.Fields)
	assert.Contains(t, verr.Message, "Invalid field types")
}

func TestGetRate(t *testing.T) {
	_, err := model.FromMap[model.GetRate](map[string]any{"from": "usd", "to": "USD", "amount": 10.0})
	verr := validationErr(t, err)
	assert.Equal(t, "currency_pair", verr.Field())
	assert.Contains(t, verr.Error(), "Source and target currencies must be different")

	_, err = model.FromMap[model.GetRate](map[string]any{"from": "USD", "to": "XYZ", "amount": 10.0})
	assert.Equal(t, "Invalid currency code: XYZ", err.Error())

	_, err = model.FromMap[model.GetRate](map[string]any{"from": "USD", "to": "EUR", "amount": 0.0})
	assert.Equal(t, "amount", validationErr(t, err).Field())

	_, err = model.FromMap[model.GetRate](map[string]any{"from": "USD", "to": "EUR", "amount": 10_000_000.0})
	assert.NoError(t, err)

	_, err = model.FromMap[model.GetRate](map[string]any{"from": "USD", "to": "EUR", "amount": 1.0, "precision": 9})
	assert.Equal(t, "precision", validationErr(t, err).Field())
}

func TestHistoricalRate(t *testing.T) {
	base := func(date string) map[string]any {
		return map[string]any{"from": "EUR", "to": "GBP", "date": date}
	}
	_, err := model.FromMap[model.HistoricalRate](base("2025-01-10"), clock())
	assert.NoError(t, err)

	_, err = model.FromMap[model.HistoricalRate](base("2025-06-16"), clock())
	assert.Contains(t, err.Error(), "Date cannot be in the future")

	_, err = model.FromMap[model.HistoricalRate](base("2024-06-01"), clock())
	assert.Contains(t, err.Error(), "Date cannot be more than 1 year ago")

	_, err = model.FromMap[model.HistoricalRate](base("10/01/2025"), clock())
	assert.Equal(t, "date", validationErr(t, err).Field())
}

func TestHistoricalRateUsesCallerCalendarDay(t *testing.T) {
	base := func(date string) map[string]any {
		return map[string]any{"from": "EUR", "to": "GBP", "date": date}
	}
	// 2025-06-14 20:00 UTC
	earlyMorning := time.Date(2025, 6, 15, 1, 0, 0, 0, time.FixedZone("UTC+5", 5*60*60))
	at := model.WithClock(func() time.Time { return earlyMorning })

	_, err := model.FromMap[model.HistoricalRate](base("2025-06-15"), at)
	assert.NoError(t, err)

	_, err = model.FromMap[model.HistoricalRate](base("2025-06-16"), at)
	assert.Contains(t, err.Error(), "Date cannot be in the future")

	_, err = model.FromMap[model.HistoricalRate](base("2024-06-15"), at)
	assert.NoError(t, err)
}

func TestNonFiniteAmounts(t *testing.T) {
	swift := func(amount any) map[string]any {
		return map[string]any{
			"account_number":           "1234567890",
			"amount":                   amount,
			"recipient_account_number": "987654321",
			"recipient_bank_code":      "DEUTDEFF",
		}
	}
	card := func(amount any) map[string]any {
		in := validCard()
		in["amount"] = amount
		return in
	}
	rate := func(amount any) map[string]any {
		return map[string]any{"from": "USD", "to": "EUR", "amount": amount}
	}

	tests := []struct {
		name  string
		parse func() error
		field string
	}{
		{"rate from string NaN", func() error { _, err := model.FromMap[model.GetRate](rate("NaN")); return err }, "amount"},
		{"rate from string Inf", func() error { _, err := model.FromMap[model.GetRate](rate("Inf")); return err }, "amount"},
		{"card infinity", func() error { _, err := model.FromMap[model.CreateCard](card(math.Inf(1))); return err }, "amount"},
		{"card NaN", func() error { _, err := model.FromMap[model.CreateCard](card(math.NaN())); return err }, "amount"},
		{"swift NaN", func() error { _, err := model.FromMap[model.CreateSwiftTransaction](swift(math.NaN())); return err }, "amount"},
		{"swift negative infinity", func() error { _, err := model.FromMap[model.CreateSwiftTransaction](swift(math.Inf(-1))); return err }, "amount"},
		{"search max NaN", func() error {
			_, err := model.FromMap[model.SearchTransactions](map[string]any{"min_amount": 1, "max_amount": math.NaN()})
			return err
		}, "max_amount"},
		{"search min infinity", func() error {
			_, err := model.FromMap[model.SearchTransactions](map[string]any{"min_amount": math.Inf(1)})
			return err
		}, "min_amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { err = tt.parse() })
			assert.Equal(t, tt.field, validationErr(t, err).Field())
		})
	}
}

func TestExportDataRange(t *testing.T) {
	_, err := model.FromMap[model.ExportData](map[string]any{"date_from": "2024-01-01", "date_to": "2024-12-31"})
	assert.NoError(t, err)

	_, err = model.FromMap[model.ExportData](map[string]any{"date_from": "2023-01-01", "date_to": "2024-01-02"})
	verr := validationErr(t, err)
	assert.Equal(t, "date_range", verr.Field())
	assert.Contains(t, verr.Error(), "Date range cannot exceed 365 days")

	_, err = model.FromMap[model.ExportData](map[string]any{"date_from": "2024-03-02", "date_to": "2024-03-01"})
	assert.Contains(t, err.Error(), "date_from must be before date_to")

	_, err = model.FromMap[model.ExportData](map[string]any{"format": "XLSX", "limit": 100000, "compressed": true})
	assert.NoError(t, err)

	_, err = model.FromMap[model.ExportData](map[string]any{"limit": 0})
	assert.Equal(t, "limit", validationErr(t, err).Field())

	_, err = model.FromMap[model.ExportData](map[string]any{"notify_email": "ops"})
	assert.Equal(t, "notify_email", validationErr(t, err).Field())
}

func TestExportColumns(t *testing.T) {
	assert.Len(t, model.ExportUsers.Columns(), 15)
	assert.NoError(t, model.ExportCards.CheckColumns([]string{"card_id", "last_four"}))
	assert.Error(t, model.ExportCards.CheckColumns([]string{"iban"}))
}

func personal() map[string]any {
	return map[string]any{
		"first_name":        "Jane",
		"last_name":         "O'Neil",
		"email":             "jane@example.com",
		"password":          "s3cret-pass",
		"call_number":       "+447911123456",
		"date_of_birth":     "1990-04-01",
		"citizenship":       "GB",
		"address":           "1 High Street",
		"city":              "London",
		"state_or_province": "London",
		"post_code":         "E1 6AN",
		"country":           "GB",
		"currencies":        []any{13},
		"selected_service":  []any{"card", "crypto"},
		"terms_accepted":    true,
	}
}

func TestRegisterPersonalUser(t *testing.T) {
	dto, err := model.FromMap[model.RegisterPersonalUser](personal(), clock())
	require.NoError(t, err)
	out := model.ToMap(dto, false)
	assert.Equal(t, []any{13}, out["currencies"])
	assert.Equal(t, []string{"card", "crypto"}, out["selected_service"])

	in := personal()
	in["terms_accepted"] = false
	_, err = model.FromMap[model.RegisterPersonalUser](in, clock())
	assert.Equal(t, "terms_accepted", validationErr(t, err).Field())

	in = personal()
	in["date_of_birth"] = "2010-01-01"
	_, err = model.FromMap[model.RegisterPersonalUser](in, clock())
	assert.Equal(t, "age", validationErr(t, err).Field())

	in = personal()
	in["currencies"] = []any{13, 99}
	_, err = model.FromMap[model.RegisterPersonalUser](in, clock())
	assert.Equal(t, "currencies", validationErr(t, err).Field())

	in = personal()
	in["selected_service"] = []any{"loans"}
	_, err = model.FromMap[model.RegisterPersonalUser](in, clock())
	assert.Equal(t, "selected_service", validationErr(t, err).Field())

	in = personal()
	delete(in, "email")
	in["currencies"] = []any{}
	_, err = model.FromMap[model.RegisterPersonalUser](in, clock())
	assert.Equal(t, []string{"email", "currencies"}, validationErr(t, err).Fields)
}

func TestRegisterBusinessUserRequired(t *testing.T) {
	_, err := model.FromMap[model.RegisterBusinessUser](map[string]any{"email": "ceo@acme.io"}, clock())
	verr := validationErr(t, err)
	assert.Len(t, verr.Fields, 27)
	assert.NotContains(t, verr.Fields, "email")
}

func TestCardTransactionsYear(t *testing.T) {
	in := map[string]any{"remote_id": "R1", "userNumber": "U1", "san": "S1", "year": 2026, "month": 12}
	_, err := model.FromMap[model.CardTransactions](in, clock())
	assert.NoError(t, err)

	in["year"] = 2027
	_, err = model.FromMap[model.CardTransactions](in, clock())
	assert.Equal(t, "The year field must not exceed 2026. Got: 2027", err.Error())

	in["year"] = 2019
	_, err = model.FromMap[model.CardTransactions](in, clock())
	assert.Equal(t, "year", validationErr(t, err).Field())

	in["year"] = 2024
	in["month"] = 13
	_, err = model.FromMap[model.CardTransactions](in, clock())
	assert.Equal(t, "month", validationErr(t, err).Field())
}

func TestTransfers(t *testing.T) {
	sepa := map[string]any{
		"account_number": "1234567890",
		"amount":         10.5,
		"recipient_iban": "DE89 3704 0044 0532 0130 00",
		"recipient_name": "Max Mustermann",
		"currency":       "EUR",
	}
	_, err := model.FromMap[model.CreateSepaTransaction](sepa)
	require.NoError(t, err)

	sepa["recipient_iban"] = "DE89370400440532013001"
	_, err = model.FromMap[model.CreateSepaTransaction](sepa)
	assert.Equal(t, "recipient_iban", validationErr(t, err).Field())

	bacs := map[string]any{
		"account_number":           "1234567890",
		"amount":                   0.01,
		"recipient_account_number": "31926819",
		"recipient_sort_code":      "60-16-13",
	}
	_, err = model.FromMap[model.CreateBacsTransaction](bacs)
	require.NoError(t, err)

	bacs["amount"] = 0.001
	_, err = model.FromMap[model.CreateBacsTransaction](bacs)
	assert.Equal(t, "amount", validationErr(t, err).Field())

	swift := map[string]any{
		"account_number":           "123",
		"amount":                   100.0,
		"recipient_account_number": "987654321",
		"recipient_bank_code":      "DEUTDEFF",
	}
	_, err = model.FromMap[model.CreateSwiftTransaction](swift)
	assert.Equal(t, "account_number", validationErr(t, err).Field())

	ach := map[string]any{
		"account_number":           "1234567890",
		"amount":                   100.0,
		"recipient_account_number": "987654321",
		"recipient_routing_number": "02100002",
	}
	_, err = model.FromMap[model.CreateAchTransaction](ach)
	assert.Equal(t, "recipient_routing_number", validationErr(t, err).Field())
}

func TestListAndSearchPaging(t *testing.T) {
	_, err := model.FromMap[model.ListTransactions](map[string]any{"per_page": 500})
	assert.NoError(t, err)

	_, err = model.FromMap[model.SearchTransactions](map[string]any{"per_page": 500})
	assert.Equal(t, "Invalid value '500' for field 'per_page'. Allowed values: 1-100", err.Error())

	_, err = model.FromMap[model.SearchTransactions](map[string]any{"min_amount": 10, "max_amount": 5})
	assert.Equal(t, "amount_range", validationErr(t, err).Field())

	_, err = model.FromMap[model.SearchCryptoTransactions](map[string]any{"cryptocurrency": "DOGE"})
	assert.Equal(t, "cryptocurrency", validationErr(t, err).Field())

	_, err = model.FromMap[model.ListUsers](map[string]any{"country": "GBR"})
	assert.Equal(t, "country", validationErr(t, err).Field())

	_, err = model.FromMap[model.SearchAccounts](map[string]any{"sort_by": "balance", "sort_order": "up"})
	assert.Equal(t, "sort_order", validationErr(t, err).Field())

	_, err = model.FromMap[model.ListCards](map[string]any{"visibility": "ALL", "type": "virtual"})
	assert.NoError(t, err)
}

func TestCurrencyUnion(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		valid bool
		id    int
	}{
		{"id", 2, true, 2},
		{"numeric string", "13", true, 13},
		{"code", "gbp", true, 3},
		{"json float", 16.0, true, 16},
		{"fraction", 1.5, false, 0},
		{"unknown id", 42, false, 42},
		{"unknown code", "XYZ", false, 0},
		{"bool", true, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := model.ParseCurrency(tt.in)
			err := c.Validate("currency")
			if tt.valid {
				assert.NoError(t, err)
				id, ok := c.ID()
				assert.True(t, ok)
				assert.Equal(t, tt.id, id)
			} else {
				assert.ErrorIs(t, err, sdkerr.ErrValidation)
			}
		})
	}

	many := model.ParseCurrency([]any{1, "EUR"})
	assert.True(t, many.IsMany())
	assert.NoError(t, many.Validate("currencies"))
	assert.Error(t, model.ParseCurrency([]any{1, []any{2}}).Validate("currencies"))

	b, err := many.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[1, "EUR"]`, string(b))
}

func TestCreateAccount(t *testing.T) {
	dto, err := model.FromMap[model.CreateAccount](map[string]any{"user_number": "U123456", "currency": "USD"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"user_number": "U123456", "currency": "USD"}, model.ToMap(dto, false))

	_, err = model.FromMap[model.CreateAccount](map[string]any{"user_number": "U1", "currency": 1})
	assert.Equal(t, "user_number", validationErr(t, err).Field())

	_, err = model.FromMap[model.TotalBalance](map[string]any{"currency": 17})
	assert.Equal(t, "currency", validationErr(t, err).Field())
}

func TestCreatePaymentLink(t *testing.T) {
	in := map[string]any{
		"email":         "buyer@example.com",
		"order_id":      "ORD-1",
		"fiat_amount":   25.0,
		"fiat_currency": "EUR",
		"redirect_url":  "https://shop.example.com/thanks",
	}
	_, err := model.FromMap[model.CreatePaymentLink](in)
	require.NoError(t, err)

	in["fiat_currency"] = "JPY"
	_, err = model.FromMap[model.CreatePaymentLink](in)
	assert.Equal(t, "fiat_currency", validationErr(t, err).Field())

	in["fiat_currency"] = "EUR"
	in["fiat_amount"] = 0.5
	_, err = model.FromMap[model.CreatePaymentLink](in)
	assert.Equal(t, "fiat_amount", validationErr(t, err).Field())

	for _, v := range []any{math.NaN(), "NaN", math.Inf(1)} {
		in["fiat_amount"] = v
		_, err = model.FromMap[model.CreatePaymentLink](in)
		assert.Equal(t, "fiat_amount", validationErr(t, err).Field(), v)
	}

	in["fiat_amount"] = 1
	_, err = model.FromMap[model.CreatePaymentLink](in)
	assert.NoError(t, err)
}

func TestEnvelope(t *testing.T) {
	env := model.Envelope{
		"status": "success",
		"data":   map[string]any{"token": "abc", "expires_at": "2025-06-15T13:00:00Z"},
		"meta": map[string]any{"pagination": map[string]any{
			"current_page": 1, "per_page": 25, "total": 60, "last_page": 3,
		}},
	}
	assert.True(t, env.IsSuccess())

	var login model.LoginResponse
	require.NoError(t, env.Decode(&login))
	assert.Equal(t, "abc", login.Token)

	p := env.Pagination()
	require.NotNil(t, p)
	assert.Equal(t, 60, p.Total)
	assert.True(t, p.HasMore())

	bare := model.Envelope{"rate": 1.1}
	assert.Equal(t, map[string]any{"rate": 1.1}, bare.Data())
	assert.Nil(t, bare.Pagination())
	assert.False(t, bare.IsSuccess())
}
