package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/suar-net/iberbanco-go/internal/enum"
	"github.com/suar-net/iberbanco-go/internal/validation"
)

var (
	CardVisibilities = []string{"active", "inactive", "all"}
	CardTypes        = []string{"virtual", "physical"}

	minCardAmount = decimal.NewFromInt(1)
	maxCardAmount = decimal.NewFromInt(5000)
)

// firstCardYear is the earliest statement year the card processor keeps.
const firstCardYear = 2020

// ListCards filters the card listing. per_page is clamped by the service.
type ListCards struct {
	PerPage    *int    `mapstructure:"per_page"`
	Page       *int    `mapstructure:"page"`
	Visibility *string `mapstructure:"visibility"`
	Status     *string `mapstructure:"status"`
	Type       *string `mapstructure:"type"`
	UserNumber *string `mapstructure:"user_number"`
	Currency   *int    `mapstructure:"currency"`
	DateFrom   *string `mapstructure:"date_from"`
	DateTo     *string `mapstructure:"date_to"`
}

func (d *ListCards) RequiredFields() []string { return nil }

func (d *ListCards) fields() []field {
	return []field{
		opt("per_page", d.PerPage),
		opt("page", d.Page),
		opt("visibility", d.Visibility),
		opt("status", d.Status),
		opt("type", d.Type),
		opt("user_number", d.UserNumber),
		opt("currency", d.Currency),
		opt("date_from", d.DateFrom),
		opt("date_to", d.DateTo),
	}
}

func (d *ListCards) Validate(time.Time) error {
	if err := checkPage(d.Page); err != nil {
		return err
	}
	if has(d.Visibility) {
		if err := validation.OneOfFold(*d.Visibility, CardVisibilities, "visibility"); err != nil {
			return err
		}
	}
	if has(d.Type) {
		if err := validation.OneOfFold(*d.Type, CardTypes, "type"); err != nil {
			return err
		}
	}
	if d.Currency != nil {
		if err := validation.CurrencyID(*d.Currency, "currency"); err != nil {
			return err
		}
	}
	return checkDates(d.DateFrom, d.DateTo, 0)
}

// CreateCard issues a card funded from account_number and shipped to the
// given address. Only USD and EUR cards are issued.
type CreateCard struct {
	UserNumber          *string  `mapstructure:"user_number"`
	AccountNumber       *string  `mapstructure:"account_number"`
	Amount              *float64 `mapstructure:"amount"`
	Currency            *int     `mapstructure:"currency"`
	ShippingAddress     *string  `mapstructure:"shipping_address"`
	ShippingCity        *string  `mapstructure:"shipping_city"`
	ShippingState       *string  `mapstructure:"shipping_state"`
	ShippingCountryCode *string  `mapstructure:"shipping_country_code"`
	ShippingPostCode    *string  `mapstructure:"shipping_post_code"`
	DeliveryMethod      *string  `mapstructure:"delivery_method"`
	ProductType         *string  `mapstructure:"product_type"`
}

func (d *CreateCard) RequiredFields() []string {
	return []string{
		"user_number", "account_number", "amount", "currency",
		"shipping_address", "shipping_city", "shipping_state",
		"shipping_country_code", "shipping_post_code", "delivery_method",
	}
}

func (d *CreateCard) fields() []field {
	return []field{
		opt("user_number", d.UserNumber),
		opt("account_number", d.AccountNumber),
		opt("amount", d.Amount),
		opt("currency", d.Currency),
		opt("shipping_address", d.ShippingAddress),
		opt("shipping_city", d.ShippingCity),
		opt("shipping_state", d.ShippingState),
		opt("shipping_country_code", d.ShippingCountryCode),
		opt("shipping_post_code", d.ShippingPostCode),
		opt("delivery_method", d.DeliveryMethod),
		opt("product_type", d.ProductType),
	}
}

func (d *CreateCard) Validate(time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	cardCurrencies := make([]int, 0, len(enum.CardCurrencies))
	for _, c := range enum.CardCurrencies {
		cardCurrencies = append(cardCurrencies, int(c))
	}
	return validation.First(
		validation.Length(*d.UserNumber, 1, 60, "user_number"),
		validation.Alphanumeric(*d.UserNumber, "user_number"),
		validation.Length(*d.AccountNumber, 1, 255, "account_number"),
		validation.AmountRange(*d.Amount, minCardAmount, maxCardAmount, "amount"),
		validation.OneOfInt(*d.Currency, cardCurrencies, "currency"),
		validation.Length(*d.ShippingAddress, 1, 255, "shipping_address"),
		validation.Length(*d.ShippingCity, 1, 100, "shipping_city"),
		validation.Length(*d.ShippingState, 1, 100, "shipping_state"),
		validation.CountryCode(*d.ShippingCountryCode, "shipping_country_code"),
		validation.Length(*d.ShippingPostCode, 1, 20, "shipping_post_code"),
		validation.OneOf(*d.DeliveryMethod, validation.DeliveryMethods, "delivery_method"),
	)
}

type RequestPhysicalCard struct {
	RemoteID *string `mapstructure:"remote_id"`
}

func (d *RequestPhysicalCard) RequiredFields() []string { return []string{"remote_id"} }

func (d *RequestPhysicalCard) fields() []field {
	return []field{opt("remote_id", d.RemoteID)}
}

func (d *RequestPhysicalCard) Validate(time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	return validation.MaxLength(*d.RemoteID, 50, "remote_id")
}

// CardTransactions requests one month of a card statement. The userNumber
// key is camel case on the wire.
type CardTransactions struct {
	RemoteID   *string `mapstructure:"remote_id"`
	UserNumber *string `mapstructure:"userNumber"`
	SAN        *string `mapstructure:"san"`
	Year       *int    `mapstructure:"year"`
	Month      *int    `mapstructure:"month"`
}

func (d *CardTransactions) RequiredFields() []string {
	return []string{"remote_id", "userNumber", "san", "year", "month"}
}

func (d *CardTransactions) fields() []field {
	return []field{
		opt("remote_id", d.RemoteID),
		opt("userNumber", d.UserNumber),
		opt("san", d.SAN),
		opt("year", d.Year),
		opt("month", d.Month),
	}
}

func (d *CardTransactions) Validate(now time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	return validation.First(
		validation.MaxLength(*d.RemoteID, 50, "remote_id"),
		validation.MaxLength(*d.UserNumber, 50, "userNumber"),
		validation.MaxLength(*d.SAN, 50, "san"),
		validation.MinInt(*d.Year, firstCardYear, "year"),
		validation.MaxInt(*d.Year, now.Year()+1, "year"),
		validation.MinInt(*d.Month, 1, "month"),
		validation.MaxInt(*d.Month, 12, "month"),
	)
}
