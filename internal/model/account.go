package model

import (
	"time"

	"github.com/suar-net/iberbanco-go/internal/validation"
)

var accountSortFields = []string{
	"id", "account_special_number", "currency", "status", "balance", "created_at", "updated_at",
}

type CreateAccount struct {
	UserNumber *string   `mapstructure:"user_number"`
	Currency   *Currency `mapstructure:"currency"`
	Reference  *string   `mapstructure:"reference"`
}

func (d *CreateAccount) RequiredFields() []string {
	return []string{"user_number", "currency"}
}

func (d *CreateAccount) fields() []field {
	return []field{
		opt("user_number", d.UserNumber),
		currency("currency", d.Currency),
		opt("reference", d.Reference),
	}
}

func (d *CreateAccount) Validate(time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	if err := validation.MinLength(*d.UserNumber, 6, "user_number"); err != nil {
		return err
	}
	if err := d.Currency.Validate("currency"); err != nil {
		return err
	}
	if has(d.Reference) {
		return validation.MaxLength(*d.Reference, 255, "reference")
	}
	return nil
}

// ListAccounts is the query accepted by the account listing. per_page is
// clamped by the service rather than rejected.
type ListAccounts struct {
	PerPage    *int     `mapstructure:"per_page"`
	Page       *int     `mapstructure:"page"`
	Currency   *int     `mapstructure:"currency"`
	Status     *int     `mapstructure:"status"`
	UserNumber *string  `mapstructure:"user_number"`
	DateFrom   *string  `mapstructure:"date_from"`
	DateTo     *string  `mapstructure:"date_to"`
	MinBalance *float64 `mapstructure:"min_balance"`
	MaxBalance *float64 `mapstructure:"max_balance"`
}

func (d *ListAccounts) RequiredFields() []string { return nil }

func (d *ListAccounts) fields() []field {
	return []field{
		opt("per_page", d.PerPage),
		opt("page", d.Page),
		opt("currency", d.Currency),
		opt("status", d.Status),
		opt("user_number", d.UserNumber),
		opt("date_from", d.DateFrom),
		opt("date_to", d.DateTo),
		opt("min_balance", d.MinBalance),
		opt("max_balance", d.MaxBalance),
	}
}

func (d *ListAccounts) Validate(time.Time) error {
	if err := checkPage(d.Page); err != nil {
		return err
	}
	if d.Currency != nil {
		if err := validation.CurrencyID(*d.Currency, "currency"); err != nil {
			return err
		}
	}
	if err := checkDates(d.DateFrom, d.DateTo, 0); err != nil {
		return err
	}
	return checkBounds(d.MinBalance, d.MaxBalance, "min_balance", "max_balance", "balance_range")
}

type SearchAccounts struct {
	UserNumber    *string  `mapstructure:"user_number"`
	Currency      *int     `mapstructure:"currency"`
	Status        *int     `mapstructure:"status"`
	AccountNumber *string  `mapstructure:"account_number"`
	DateFrom      *string  `mapstructure:"date_from"`
	DateTo        *string  `mapstructure:"date_to"`
	MinBalance    *float64 `mapstructure:"min_balance"`
	MaxBalance    *float64 `mapstructure:"max_balance"`
	SortBy        *string  `mapstructure:"sort_by"`
	SortOrder     *string  `mapstructure:"sort_order"`
	PerPage       *int     `mapstructure:"per_page"`
	Page          *int     `mapstructure:"page"`
}

func (d *SearchAccounts) RequiredFields() []string { return nil }

func (d *SearchAccounts) fields() []field {
	return []field{
		opt("user_number", d.UserNumber),
		opt("currency", d.Currency),
		opt("status", d.Status),
		opt("account_number", d.AccountNumber),
		opt("date_from", d.DateFrom),
		opt("date_to", d.DateTo),
		opt("min_balance", d.MinBalance),
		opt("max_balance", d.MaxBalance),
		opt("sort_by", d.SortBy),
		opt("sort_order", d.SortOrder),
		opt("per_page", d.PerPage),
		opt("page", d.Page),
	}
}

func (d *SearchAccounts) Validate(time.Time) error {
	if has(d.UserNumber) {
		if err := validation.MaxLength(*d.UserNumber, 255, "user_number"); err != nil {
			return err
		}
	}
	if has(d.AccountNumber) {
		if err := validation.MaxLength(*d.AccountNumber, 255, "account_number"); err != nil {
			return err
		}
	}
	if err := checkDates(d.DateFrom, d.DateTo, 0); err != nil {
		return err
	}
	if err := checkBounds(d.MinBalance, d.MaxBalance, "min_balance", "max_balance", "balance_range"); err != nil {
		return err
	}
	if has(d.SortBy) {
		if err := validation.OneOf(*d.SortBy, accountSortFields, "sort_by"); err != nil {
			return err
		}
	}
	if has(d.SortOrder) {
		if err := validation.OneOf(*d.SortOrder, validation.SortOrders, "sort_order"); err != nil {
			return err
		}
	}
	return checkPaging(d.PerPage, d.Page)
}

type TotalBalance struct {
	Currency *Currency `mapstructure:"currency"`
}

func (d *TotalBalance) RequiredFields() []string { return []string{"currency"} }

func (d *TotalBalance) fields() []field {
	return []field{currency("currency", d.Currency)}
}

func (d *TotalBalance) Validate(time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	return d.Currency.Validate("currency")
}
