package enum

import "strings"

// Currency is the platform's internal currency id.
type Currency int

const (
	USD Currency = iota + 1
	EUR
	GBP
	CHF
	RUB
	TRY
	AED
	CNH
	AUD
	CZK
	PLN
	CAD
	USDT
	HKD
	SGD
	JPY
)

var currencyCodes = map[Currency]string{
	USD:  "USD",
	EUR:  "EUR",
	GBP:  "GBP",
	CHF:  "CHF",
	RUB:  "RUB",
	TRY:  "TRY",
	AED:  "AED",
	CNH:  "CNH",
	AUD:  "AUD",
	CZK:  "CZK",
	PLN:  "PLN",
	CAD:  "CAD",
	USDT: "USDT",
	HKD:  "HKD",
	SGD:  "SGD",
	JPY:  "JPY",
}

// ISO 4217 numeric codes. USDT has none; the platform uses 841.
var isoCodes = map[Currency]string{
	USD:  "840",
	EUR:  "978",
	GBP:  "826",
	CHF:  "756",
	RUB:  "643",
	TRY:  "949",
	AED:  "784",
	CNH:  "156",
	AUD:  "036",
	CZK:  "203",
	PLN:  "985",
	CAD:  "124",
	USDT: "841",
	HKD:  "344",
	SGD:  "702",
	JPY:  "392",
}

var currencyByCode = func() map[string]Currency {
	m := make(map[string]Currency, len(currencyCodes))
	for id, code := range currencyCodes {
		m[code] = id
	}
	return m
}()

// Card accounts may only be opened in these currencies.
var CardCurrencies = []Currency{USD, EUR}

func (c Currency) Code() string {
	return currencyCodes[c]
}

func (c Currency) ISOCode() string {
	return isoCodes[c]
}

func (c Currency) IsValid() bool {
	_, ok := currencyCodes[c]
	return ok
}

func (c Currency) String() string {
	if code, ok := currencyCodes[c]; ok {
		return code
	}
	return "Currency(" + itoa(int(c)) + ")"
}

// CurrencyByCode looks up a currency by its alphabetic code, ignoring case.
func CurrencyByCode(code string) (Currency, bool) {
	c, ok := currencyByCode[strings.ToUpper(code)]
	return c, ok
}

func IsSupportedCurrency(code string) bool {
	_, ok := CurrencyByCode(code)
	return ok
}

// CurrencyCodes returns every supported code ordered by id.
func CurrencyCodes() []string {
	codes := make([]string, 0, len(currencyCodes))
	for c := USD; c <= JPY; c++ {
		codes = append(codes, currencyCodes[c])
	}
	return codes
}
