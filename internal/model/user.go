package model

import (
	"time"

	"github.com/suar-net/iberbanco-go/internal/sdkerr"
	"github.com/suar-net/iberbanco-go/internal/validation"
)

type ListUsers struct {
	PerPage   *int    `mapstructure:"per_page"`
	Page      *int    `mapstructure:"page"`
	Country   *string `mapstructure:"country"`
	Status    *string `mapstructure:"status"`
	Email     *string `mapstructure:"email"`
	Type      *int    `mapstructure:"type"`
	DateFrom  *string `mapstructure:"date_from"`
	DateTo    *string `mapstructure:"date_to"`
	FirstName *string `mapstructure:"first_name"`
	LastName  *string `mapstructure:"last_name"`
}

func (d *ListUsers) RequiredFields() []string { return nil }

func (d *ListUsers) fields() []field {
	return []field{
		opt("per_page", d.PerPage),
		opt("page", d.Page),
		opt("country", d.Country),
		opt("status", d.Status),
		opt("email", d.Email),
		opt("type", d.Type),
		opt("date_from", d.DateFrom),
		opt("date_to", d.DateTo),
		opt("first_name", d.FirstName),
		opt("last_name", d.LastName),
	}
}

func (d *ListUsers) Validate(time.Time) error {
	if err := checkPaging(d.PerPage, d.Page); err != nil {
		return err
	}
	if has(d.Country) && len(*d.Country) != 2 {
		return sdkerr.InvalidFormat("country", "ISO 3166-1 alpha-2 (2 letters)")
	}
	if d.Type != nil {
		if err := validation.OneOfInt(*d.Type, []int{1, 2}, "type"); err != nil {
			return err
		}
	}
	return checkDates(d.DateFrom, d.DateTo, 0)
}

// RegisterPersonalUser covers the fields needed to open card and crypto
// services for an individual.
type RegisterPersonalUser struct {
	FirstName              *string   `mapstructure:"first_name"`
	LastName               *string   `mapstructure:"last_name"`
	Email                  *string   `mapstructure:"email"`
	Password               *string   `mapstructure:"password"`
	CallNumber             *string   `mapstructure:"call_number"`
	DateOfBirth            *string   `mapstructure:"date_of_birth"`
	Citizenship            *string   `mapstructure:"citizenship"`
	Address                *string   `mapstructure:"address"`
	City                   *string   `mapstructure:"city"`
	StateOrProvince        *string   `mapstructure:"state_or_province"`
	PostCode               *string   `mapstructure:"post_code"`
	Country                *string   `mapstructure:"country"`
	Currencies             *Currency `mapstructure:"currencies"`
	SelectedService        []string  `mapstructure:"selected_service"`
	SourcesOfWealth        []string  `mapstructure:"sources_of_wealth"`
	IsPEP                  *bool     `mapstructure:"is_pep"`
	TermsAccepted          *bool     `mapstructure:"terms_accepted"`
	IdentityDocumentType   *string   `mapstructure:"identity_document_type"`
	IdentityDocumentNumber *string   `mapstructure:"identity_document_number"`
}

func (d *RegisterPersonalUser) RequiredFields() []string {
	return []string{
		"first_name", "last_name", "email", "password", "call_number",
		"date_of_birth", "citizenship", "address", "city", "state_or_province",
		"post_code", "country", "currencies", "selected_service", "terms_accepted",
	}
}

func (d *RegisterPersonalUser) fields() []field {
	return []field{
		opt("first_name", d.FirstName),
		opt("last_name", d.LastName),
		opt("email", d.Email),
		opt("password", d.Password),
		opt("call_number", d.CallNumber),
		opt("date_of_birth", d.DateOfBirth),
		opt("citizenship", d.Citizenship),
		opt("address", d.Address),
		opt("city", d.City),
		opt("state_or_province", d.StateOrProvince),
		opt("post_code", d.PostCode),
		opt("country", d.Country),
		currency("currencies", d.Currencies),
		list("selected_service", d.SelectedService),
		list("sources_of_wealth", d.SourcesOfWealth),
		opt("is_pep", d.IsPEP),
		opt("terms_accepted", d.TermsAccepted),
		opt("identity_document_type", d.IdentityDocumentType),
		opt("identity_document_number", d.IdentityDocumentNumber),
	}
}

func (d *RegisterPersonalUser) Validate(now time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	if err := validation.First(
		validation.Length(*d.FirstName, 2, 50, "first_name"),
		validation.NameFormat(*d.FirstName, "first_name"),
		validation.Length(*d.LastName, 2, 50, "last_name"),
		validation.NameFormat(*d.LastName, "last_name"),
		validation.Email(*d.Email, "email"),
		validation.Length(*d.Email, 1, 255, "email"),
		validation.Phone(*d.CallNumber, "call_number"),
		validation.DateOfBirth(*d.DateOfBirth, "date_of_birth", now),
		validation.Length(*d.Citizenship, 2, 2, "citizenship"),
		validation.CountryCode(*d.Country, "country"),
		d.Currencies.Validate("currencies"),
		checkServices(d.SelectedService),
	); err != nil {
		return err
	}
	if has(d.IdentityDocumentType) {
		if err := validation.OneOf(*d.IdentityDocumentType, validation.IdentityDocumentTypes, "identity_document_type"); err != nil {
			return err
		}
	}
	if has(d.IdentityDocumentNumber) {
		if err := validation.IdentityDocumentNumber(*d.IdentityDocumentNumber, "identity_document_number"); err != nil {
			return err
		}
	}
	if !*d.TermsAccepted {
		return sdkerr.Required("terms_accepted")
	}
	return nil
}

func checkServices(services []string) error {
	for _, s := range services {
		if err := validation.OneOf(s, validation.SelectedServices, "selected_service"); err != nil {
			return err
		}
	}
	return nil
}

// RegisterBusinessUser carries the company profile and its authorized person.
type RegisterBusinessUser struct {
	Email                              *string   `mapstructure:"email"`
	Password                           *string   `mapstructure:"password"`
	FirstName                          *string   `mapstructure:"first_name"`
	LastName                           *string   `mapstructure:"last_name"`
	Salutation                         *string   `mapstructure:"salutation"`
	CallNumber                         *string   `mapstructure:"call_number"`
	DateOfBirth                        *string   `mapstructure:"date_of_birth"`
	Address                            *string   `mapstructure:"address"`
	City                               *string   `mapstructure:"city"`
	Country                            *string   `mapstructure:"country"`
	StateOrProvince                    *string   `mapstructure:"state_or_province"`
	Fax                                *string   `mapstructure:"fax"`
	Type                               *int      `mapstructure:"type"`
	PostCode                           *string   `mapstructure:"post_code"`
	IdentityCardType                   *int      `mapstructure:"identity_card_type"`
	IdentityCardID                     *string   `mapstructure:"identity_card_id"`
	TaxNumber                          *string   `mapstructure:"tax_number"`
	Citizenship                        *string   `mapstructure:"citizenship"`
	Currencies                         *Currency `mapstructure:"currencies"`
	SourcesOfWealth                    []string  `mapstructure:"sources_of_wealth"`
	IsOtherSourcesOfWealth             *bool     `mapstructure:"is_other_sources_of_wealth"`
	CompanyName                        *string   `mapstructure:"company_name"`
	CompanyType                        *int      `mapstructure:"company_type"`
	RegistrationDate                   *string   `mapstructure:"registration_date"`
	RegistrationNumber                 *string   `mapstructure:"registration_number"`
	NatureOfBusiness                   *int      `mapstructure:"nature_of_business"`
	FinancialRegulator                 *string   `mapstructure:"financial_regulator"`
	RegulatoryLicenseNumber            *string   `mapstructure:"regulatory_license_number"`
	Website                            *string   `mapstructure:"website"`
	MarketingStrategy                  *string   `mapstructure:"marketing_strategy"`
	IndustryID                         *string   `mapstructure:"industry_id"`
	AuthorizedPersonCountryOfResidence *string   `mapstructure:"authorized_person_country_of_residence"`
	AuthorizedPersonCity               *string   `mapstructure:"authorized_person_city"`
	AuthorizedPersonAddress            *string   `mapstructure:"authorized_person_address"`
	AuthorizedPersonPostalCode         *string   `mapstructure:"authorized_person_postal_code"`
	SelectedService                    []string  `mapstructure:"selected_service"`
}

func (d *RegisterBusinessUser) RequiredFields() []string {
	return []string{
		"email", "password", "first_name", "last_name", "call_number",
		"date_of_birth", "address", "city", "country", "post_code",
		"identity_card_type", "identity_card_id", "tax_number", "citizenship",
		"currencies", "sources_of_wealth", "company_name", "company_type",
		"registration_date", "registration_number", "nature_of_business",
		"financial_regulator", "regulatory_license_number", "industry_id",
		"authorized_person_country_of_residence", "authorized_person_city",
		"authorized_person_address", "authorized_person_postal_code",
	}
}

func (d *RegisterBusinessUser) fields() []field {
	return []field{
		opt("email", d.Email),
		opt("password", d.Password),
		opt("first_name", d.FirstName),
		opt("last_name", d.LastName),
		opt("salutation", d.Salutation),
		opt("call_number", d.CallNumber),
		opt("date_of_birth", d.DateOfBirth),
		opt("address", d.Address),
		opt("city", d.City),
		opt("country", d.Country),
		opt("state_or_province", d.StateOrProvince),
		opt("fax", d.Fax),
		opt("type", d.Type),
		opt("post_code", d.PostCode),
		opt("identity_card_type", d.IdentityCardType),
		opt("identity_card_id", d.IdentityCardID),
		opt("tax_number", d.TaxNumber),
		opt("citizenship", d.Citizenship),
		currency("currencies", d.Currencies),
		list("sources_of_wealth", d.SourcesOfWealth),
		opt("is_other_sources_of_wealth", d.IsOtherSourcesOfWealth),
		opt("company_name", d.CompanyName),
		opt("company_type", d.CompanyType),
		opt("registration_date", d.RegistrationDate),
		opt("registration_number", d.RegistrationNumber),
		opt("nature_of_business", d.NatureOfBusiness),
		opt("financial_regulator", d.FinancialRegulator),
		opt("regulatory_license_number", d.RegulatoryLicenseNumber),
		opt("website", d.Website),
		opt("marketing_strategy", d.MarketingStrategy),
		opt("industry_id", d.IndustryID),
		opt("authorized_person_country_of_residence", d.AuthorizedPersonCountryOfResidence),
		opt("authorized_person_city", d.AuthorizedPersonCity),
		opt("authorized_person_address", d.AuthorizedPersonAddress),
		opt("authorized_person_postal_code", d.AuthorizedPersonPostalCode),
		list("selected_service", d.SelectedService),
	}
}

func (d *RegisterBusinessUser) Validate(now time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	if err := validation.First(
		validation.Length(*d.FirstName, 2, 60, "first_name"),
		validation.NameFormat(*d.FirstName, "first_name"),
		validation.Length(*d.LastName, 2, 60, "last_name"),
		validation.NameFormat(*d.LastName, "last_name"),
		validation.Email(*d.Email, "email"),
		validation.Length(*d.Email, 1, 60, "email"),
		validation.Phone(*d.CallNumber, "call_number"),
		validation.DateOfBirth(*d.DateOfBirth, "date_of_birth", now),
		validation.Length(*d.Address, 1, 255, "address"),
		validation.Length(*d.City, 1, 60, "city"),
		validation.Length(*d.PostCode, 1, 60, "post_code"),
		validation.Length(*d.CompanyName, 2, 90, "company_name"),
		validation.Date(*d.RegistrationDate, "registration_date"),
		validation.Length(*d.RegistrationNumber, 1, 50, "registration_number"),
		validation.Length(*d.IdentityCardID, 1, 255, "identity_card_id"),
		validation.Length(*d.TaxNumber, 1, 255, "tax_number"),
		d.Currencies.Validate("currencies"),
	); err != nil {
		return err
	}
	if has(d.Website) {
		if err := validation.URL(*d.Website, 2048, "website"); err != nil {
			return err
		}
	}
	return checkServices(d.SelectedService)
}
