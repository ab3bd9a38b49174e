package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/suar-net/iberbanco-go/internal/validation"
)

var minFiatAmount = decimal.NewFromInt(1)

var Cryptocurrencies = []string{"BTC", "ETH", "USDT", "USDC", "LTC", "BCH", "ADA", "DOT", "LINK", "XRP"}

type ListCryptoTransactions struct {
	PerPage         *int     `mapstructure:"per_page"`
	Page            *int     `mapstructure:"page"`
	Status          *string  `mapstructure:"status"`
	Type            *string  `mapstructure:"type"`
	Cryptocurrency  *string  `mapstructure:"cryptocurrency"`
	DateFrom        *string  `mapstructure:"date_from"`
	DateTo          *string  `mapstructure:"date_to"`
	MinAmount       *float64 `mapstructure:"min_amount"`
	MaxAmount       *float64 `mapstructure:"max_amount"`
	Reference       *string  `mapstructure:"reference"`
	TransactionHash *string  `mapstructure:"transaction_hash"`
}

func (d *ListCryptoTransactions) RequiredFields() []string { return nil }

func (d *ListCryptoTransactions) fields() []field {
	return []field{
		opt("per_page", d.PerPage),
		opt("page", d.Page),
		opt("status", d.Status),
		opt("type", d.Type),
		opt("cryptocurrency", d.Cryptocurrency),
		opt("date_from", d.DateFrom),
		opt("date_to", d.DateTo),
		opt("min_amount", d.MinAmount),
		opt("max_amount", d.MaxAmount),
		opt("reference", d.Reference),
		opt("transaction_hash", d.TransactionHash),
	}
}

func (d *ListCryptoTransactions) Validate(time.Time) error {
	if err := checkPage(d.Page); err != nil {
		return err
	}
	return d.validateFilters()
}

func (d *ListCryptoTransactions) validateFilters() error {
	if has(d.Cryptocurrency) {
		if err := validation.OneOfFold(*d.Cryptocurrency, Cryptocurrencies, "cryptocurrency"); err != nil {
			return err
		}
	}
	if err := checkDates(d.DateFrom, d.DateTo, 0); err != nil {
		return err
	}
	return checkBounds(d.MinAmount, d.MaxAmount, "min_amount", "max_amount", "amount_range")
}

type SearchCryptoTransactions struct {
	ListCryptoTransactions `mapstructure:",squash"`
}

func (d *SearchCryptoTransactions) Validate(time.Time) error {
	if err := checkPaging(d.PerPage, d.Page); err != nil {
		return err
	}
	return d.validateFilters()
}

// CreatePaymentLink asks the crypto processor for a hosted checkout priced
// in fiat.
type CreatePaymentLink struct {
	Email        *string  `mapstructure:"email"`
	OrderID      *string  `mapstructure:"order_id"`
	FiatAmount   *float64 `mapstructure:"fiat_amount"`
	FiatCurrency *string  `mapstructure:"fiat_currency"`
	RedirectURL  *string  `mapstructure:"redirect_url"`
}

func (d *CreatePaymentLink) RequiredFields() []string {
	return []string{"email", "order_id", "fiat_amount", "fiat_currency"}
}

func (d *CreatePaymentLink) fields() []field {
	return []field{
		opt("email", d.Email),
		opt("order_id", d.OrderID),
		opt("fiat_amount", d.FiatAmount),
		opt("fiat_currency", d.FiatCurrency),
		opt("redirect_url", d.RedirectURL),
	}
}

func (d *CreatePaymentLink) Validate(time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	if err := validation.First(
		validation.Email(*d.Email, "email"),
		validation.Length(*d.OrderID, 1, 255, "order_id"),
	); err != nil {
		return err
	}
	if err := validation.MinAmount(*d.FiatAmount, minFiatAmount, "fiat_amount"); err != nil {
		return err
	}
	if err := validation.OneOf(*d.FiatCurrency, validation.CryptoPaymentCurrencies, "fiat_currency"); err != nil {
		return err
	}
	if has(d.RedirectURL) {
		return validation.URL(*d.RedirectURL, 2048, "redirect_url")
	}
	return nil
}
