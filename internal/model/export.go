package model

import (
	"time"

	"github.com/suar-net/iberbanco-go/internal/validation"
)

// MaxExportDays bounds the date window of a single export job.
const MaxExportDays = 365

// ExportResource names a dataset that can be exported.
type ExportResource string

const (
	ExportUsers        ExportResource = "users"
	ExportAccounts     ExportResource = "accounts"
	ExportTransactions ExportResource = "transactions"
	ExportCards        ExportResource = "cards"
)

var exportColumns = map[ExportResource][]string{
	ExportUsers: {
		"user_number", "email", "first_name", "last_name",
		"date_of_birth", "country", "citizenship", "address",
		"city", "post_code", "call_number", "status",
		"type", "created_at", "updated_at",
	},
	ExportAccounts: {
		"account_number", "user_number", "currency", "balance",
		"status", "iban", "bic", "account_name",
		"created_at", "updated_at",
	},
	ExportTransactions: {
		"transaction_number", "account_number", "amount", "currency",
		"type", "status", "direction", "reference", "description",
		"recipient_name", "recipient_account", "created_at", "completed_at",
	},
	ExportCards: {
		"card_id", "user_number", "account_number", "card_type",
		"status", "currency", "daily_limit", "monthly_limit",
		"last_four", "expiry_date", "created_at", "updated_at",
	},
}

// Columns lists the columns the platform can export for r.
func (r ExportResource) Columns() []string {
	return append([]string(nil), exportColumns[r]...)
}

// CheckColumns rejects any requested column the resource does not have.
func (r ExportResource) CheckColumns(columns []string) error {
	known := exportColumns[r]
	for _, c := range columns {
		if err := validation.OneOf(c, known, "columns"); err != nil {
			return err
		}
	}
	return nil
}

// ExportData starts an asynchronous export job. Every field is optional.
type ExportData struct {
	Format      *string  `mapstructure:"format"`
	DateFrom    *string  `mapstructure:"date_from"`
	DateTo      *string  `mapstructure:"date_to"`
	Limit       *int     `mapstructure:"limit"`
	Columns     []string `mapstructure:"columns"`
	NotifyEmail *string  `mapstructure:"notify_email"`
	Compressed  *bool    `mapstructure:"compressed"`
}

func (d *ExportData) RequiredFields() []string { return nil }

func (d *ExportData) fields() []field {
	return []field{
		opt("format", d.Format),
		opt("date_from", d.DateFrom),
		opt("date_to", d.DateTo),
		opt("limit", d.Limit),
		list("columns", d.Columns),
		opt("notify_email", d.NotifyEmail),
		opt("compressed", d.Compressed),
	}
}

func (d *ExportData) Validate(time.Time) error {
	if has(d.Format) {
		if err := validation.OneOfFold(*d.Format, validation.ExportFormats, "format"); err != nil {
			return err
		}
	}
	if d.Limit != nil {
		if err := validation.IntWithin(*d.Limit, 1, 100_000, "limit"); err != nil {
			return err
		}
	}
	if has(d.NotifyEmail) {
		if err := validation.Email(*d.NotifyEmail, "notify_email"); err != nil {
			return err
		}
	}
	return checkDates(d.DateFrom, d.DateTo, MaxExportDays)
}
