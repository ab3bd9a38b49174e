package model

import (
	"time"

	"github.com/suar-net/iberbanco-go/internal/validation"
)

var transactionDirections = []string{"IN", "OUT"}

// ListTransactions filters the transaction listing. The same fields are
// accepted by the search endpoint, which additionally rejects an out of
// range per_page instead of clamping it.
type ListTransactions struct {
	PerPage       *int     `mapstructure:"per_page"`
	Page          *int     `mapstructure:"page"`
	Status        *string  `mapstructure:"status"`
	Type          *string  `mapstructure:"type"`
	AccountNumber *string  `mapstructure:"account_number"`
	DateFrom      *string  `mapstructure:"date_from"`
	DateTo        *string  `mapstructure:"date_to"`
	MinAmount     *float64 `mapstructure:"min_amount"`
	MaxAmount     *float64 `mapstructure:"max_amount"`
	Direction     *string  `mapstructure:"direction"`
	Reference     *string  `mapstructure:"reference"`
	Recipient     *string  `mapstructure:"recipient"`
}

func (d *ListTransactions) RequiredFields() []string { return nil }

func (d *ListTransactions) fields() []field {
	return []field{
		opt("per_page", d.PerPage),
		opt("page", d.Page),
		opt("status", d.Status),
		opt("type", d.Type),
		opt("account_number", d.AccountNumber),
		opt("date_from", d.DateFrom),
		opt("date_to", d.DateTo),
		opt("min_amount", d.MinAmount),
		opt("max_amount", d.MaxAmount),
		opt("direction", d.Direction),
		opt("reference", d.Reference),
		opt("recipient", d.Recipient),
	}
}

func (d *ListTransactions) Validate(time.Time) error {
	if err := checkPage(d.Page); err != nil {
		return err
	}
	return d.validateFilters()
}

func (d *ListTransactions) validateFilters() error {
	if err := checkDates(d.DateFrom, d.DateTo, 0); err != nil {
		return err
	}
	if err := checkBounds(d.MinAmount, d.MaxAmount, "min_amount", "max_amount", "amount_range"); err != nil {
		return err
	}
	if has(d.Direction) {
		return validation.OneOfFold(*d.Direction, transactionDirections, "direction")
	}
	return nil
}

type SearchTransactions struct {
	ListTransactions `mapstructure:",squash"`
}

func (d *SearchTransactions) Validate(time.Time) error {
	if err := checkPaging(d.PerPage, d.Page); err != nil {
		return err
	}
	return d.validateFilters()
}

// transfer holds the fields common to every outgoing bank transfer.
type transfer struct {
	AccountNumber *string   `mapstructure:"account_number"`
	Amount        *float64  `mapstructure:"amount"`
	Reference     *string   `mapstructure:"reference"`
	Description   *string   `mapstructure:"description"`
	Currency      *Currency `mapstructure:"currency"`
}

func (t *transfer) checkAmount() error {
	if t.Amount == nil {
		return nil
	}
	return validation.MinAmount(*t.Amount, validation.MinTransferAmount, "amount")
}

func (t *transfer) checkAccount() error {
	if has(t.AccountNumber) {
		return validation.Length(*t.AccountNumber, 10, 255, "account_number")
	}
	return nil
}

func (t *transfer) checkCurrency() error {
	if t.Currency == nil {
		return nil
	}
	return t.Currency.Validate("currency")
}

func checkRecipientAccount(p *string) error {
	if has(p) {
		return validation.Length(*p, 5, 255, "recipient_account_number")
	}
	return nil
}

type CreateSwiftTransaction struct {
	transfer               `mapstructure:",squash"`
	RecipientAccountNumber *string `mapstructure:"recipient_account_number"`
	RecipientBankCode      *string `mapstructure:"recipient_bank_code"`
	RecipientName          *string `mapstructure:"recipient_name"`
	RecipientAddress       *string `mapstructure:"recipient_address"`
}

func (d *CreateSwiftTransaction) RequiredFields() []string {
	return []string{"account_number", "amount", "recipient_account_number", "recipient_bank_code"}
}

func (d *CreateSwiftTransaction) fields() []field {
	return []field{
		opt("account_number", d.AccountNumber),
		opt("amount", d.Amount),
		opt("recipient_account_number", d.RecipientAccountNumber),
		opt("recipient_bank_code", d.RecipientBankCode),
		opt("recipient_name", d.RecipientName),
		opt("recipient_address", d.RecipientAddress),
		opt("reference", d.Reference),
		opt("description", d.Description),
		currency("currency", d.Currency),
	}
}

func (d *CreateSwiftTransaction) Validate(time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	return validation.First(
		d.checkAmount(),
		validation.SwiftCode(*d.RecipientBankCode, "recipient_bank_code"),
		d.checkAccount(),
		checkRecipientAccount(d.RecipientAccountNumber),
		d.checkCurrency(),
	)
}

type CreateSepaTransaction struct {
	transfer      `mapstructure:",squash"`
	RecipientIBAN *string `mapstructure:"recipient_iban"`
	RecipientName *string `mapstructure:"recipient_name"`
}

func (d *CreateSepaTransaction) RequiredFields() []string {
	return []string{"account_number", "amount", "recipient_iban", "recipient_name"}
}

func (d *CreateSepaTransaction) fields() []field {
	return []field{
		opt("account_number", d.AccountNumber),
		opt("amount", d.Amount),
		opt("recipient_iban", d.RecipientIBAN),
		opt("recipient_name", d.RecipientName),
		opt("reference", d.Reference),
		opt("description", d.Description),
		currency("currency", d.Currency),
	}
}

func (d *CreateSepaTransaction) Validate(time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	return validation.First(
		d.checkAmount(),
		validation.IBAN(*d.RecipientIBAN, "recipient_iban"),
		d.checkAccount(),
		validation.Length(*d.RecipientName, 2, 255, "recipient_name"),
		d.checkCurrency(),
	)
}

type CreateAchTransaction struct {
	transfer               `mapstructure:",squash"`
	RecipientAccountNumber *string `mapstructure:"recipient_account_number"`
	RecipientRoutingNumber *string `mapstructure:"recipient_routing_number"`
	RecipientName          *string `mapstructure:"recipient_name"`
}

func (d *CreateAchTransaction) RequiredFields() []string {
	return []string{"account_number", "amount", "recipient_account_number", "recipient_routing_number"}
}

func (d *CreateAchTransaction) fields() []field {
	return []field{
		opt("account_number", d.AccountNumber),
		opt("amount", d.Amount),
		opt("recipient_account_number", d.RecipientAccountNumber),
		opt("recipient_routing_number", d.RecipientRoutingNumber),
		opt("recipient_name", d.RecipientName),
		opt("reference", d.Reference),
		opt("description", d.Description),
		currency("currency", d.Currency),
	}
}

func (d *CreateAchTransaction) Validate(time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	return validation.First(
		d.checkAmount(),
		validation.RoutingNumber(*d.RecipientRoutingNumber, "recipient_routing_number"),
		d.checkAccount(),
		checkRecipientAccount(d.RecipientAccountNumber),
		d.checkCurrency(),
	)
}

// CreateBacsTransaction is a UK domestic transfer addressed by sort code.
type CreateBacsTransaction struct {
	transfer               `mapstructure:",squash"`
	RecipientAccountNumber *string `mapstructure:"recipient_account_number"`
	RecipientSortCode      *string `mapstructure:"recipient_sort_code"`
	RecipientName          *string `mapstructure:"recipient_name"`
}

func (d *CreateBacsTransaction) RequiredFields() []string {
	return []string{"account_number", "amount", "recipient_account_number", "recipient_sort_code"}
}

func (d *CreateBacsTransaction) fields() []field {
	return []field{
		opt("account_number", d.AccountNumber),
		opt("amount", d.Amount),
		opt("recipient_account_number", d.RecipientAccountNumber),
		opt("recipient_sort_code", d.RecipientSortCode),
		opt("recipient_name", d.RecipientName),
		opt("reference", d.Reference),
		opt("description", d.Description),
		currency("currency", d.Currency),
	}
}

func (d *CreateBacsTransaction) Validate(time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	return validation.First(
		d.checkAmount(),
		validation.SortCode(*d.RecipientSortCode, "recipient_sort_code"),
		d.checkAccount(),
		checkRecipientAccount(d.RecipientAccountNumber),
		d.checkCurrency(),
	)
}
