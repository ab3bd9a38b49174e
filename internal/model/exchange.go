package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/suar-net/iberbanco-go/internal/sdkerr"
	"github.com/suar-net/iberbanco-go/internal/validation"
)

var maxExchangeAmount = decimal.NewFromInt(10_000_000)

type GetRate struct {
	From      *string  `mapstructure:"from"`
	To        *string  `mapstructure:"to"`
	Amount    *float64 `mapstructure:"amount"`
	Precision *int     `mapstructure:"precision"`
}

func (d *GetRate) RequiredFields() []string { return []string{"from", "to", "amount"} }

func (d *GetRate) fields() []field {
	return []field{
		opt("from", d.From),
		opt("to", d.To),
		opt("amount", d.Amount),
		opt("precision", d.Precision),
	}
}

func (d *GetRate) Validate(time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	if err := checkPair(*d.From, *d.To); err != nil {
		return err
	}
	if err := validation.PositiveAmount(*d.Amount, maxExchangeAmount, "amount"); err != nil {
		return err
	}
	return checkPrecision(d.Precision)
}

// HistoricalRate asks for the rate on a past date within the last year.
type HistoricalRate struct {
	From      *string  `mapstructure:"from"`
	To        *string  `mapstructure:"to"`
	Date      *string  `mapstructure:"date"`
	Amount    *float64 `mapstructure:"amount"`
	Precision *int     `mapstructure:"precision"`
}

func (d *HistoricalRate) RequiredFields() []string { return []string{"from", "to", "date"} }

func (d *HistoricalRate) fields() []field {
	return []field{
		opt("from", d.From),
		opt("to", d.To),
		opt("date", d.Date),
		opt("amount", d.Amount),
		opt("precision", d.Precision),
	}
}

func (d *HistoricalRate) Validate(now time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	if err := checkPair(*d.From, *d.To); err != nil {
		return err
	}
	date, ok := validation.ParseDate(*d.Date)
	if !ok {
		return sdkerr.InvalidFormat("date", "Y-m-d")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.After(today) {
		return sdkerr.InvalidValue("date", *d.Date, "Date cannot be in the future")
	}
	if date.Before(today.AddDate(-1, 0, 0)) {
		return sdkerr.InvalidValue("date", *d.Date, "Date cannot be more than 1 year ago")
	}
	if d.Amount != nil {
		if err := validation.PositiveAmount(*d.Amount, maxExchangeAmount, "amount"); err != nil {
			return err
		}
	}
	return checkPrecision(d.Precision)
}

func checkPair(from, to string) error {
	if err := validation.First(
		validation.CurrencyCode(from, "from"),
		validation.CurrencyCode(to, "to"),
	); err != nil {
		return err
	}
	if strings.EqualFold(from, to) {
		return sdkerr.InvalidValue("currency_pair", from+"-"+to, "Source and target currencies must be different")
	}
	return nil
}

func checkPrecision(p *int) error {
	if p == nil {
		return nil
	}
	return validation.IntWithin(*p, 2, 8, "precision")
}
