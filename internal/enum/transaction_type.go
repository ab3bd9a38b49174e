package enum

type TransactionType int

const (
	TransactionIntra        TransactionType = 1
	TransactionSwift        TransactionType = 2
	TransactionExchange     TransactionType = 3
	TransactionACH          TransactionType = 4
	TransactionEFT          TransactionType = 5
	TransactionSEPA         TransactionType = 6
	TransactionBACS         TransactionType = 7
	TransactionDomesticWire TransactionType = 8
	TransactionAZA          TransactionType = 9
	TransactionCard         TransactionType = 10
	TransactionCrypto       TransactionType = 11
	TransactionInterac      TransactionType = 12
	TransactionBillPayment  TransactionType = 13
)

var transactionTypeNames = map[TransactionType]string{
	TransactionIntra:        "Intra Transaction",
	TransactionSwift:        "International Transaction(SWIFT)",
	TransactionExchange:     "Exchange Transaction",
	TransactionACH:          "ACH Transaction",
	TransactionEFT:          "EFT Transaction",
	TransactionSEPA:         "Europe Transaction (SEPA)",
	TransactionBACS:         "BACS Transaction",
	TransactionDomesticWire: "Domestic Wire Transaction",
	TransactionAZA:          "International Transaction (Pan Africa)",
	TransactionCard:         "Card Transaction",
	TransactionCrypto:       "Crypto Transaction",
	TransactionInterac:      "INTERAC Transaction",
	TransactionBillPayment:  "Bill Payment Transaction",
}

func (t TransactionType) Name() string  { return transactionTypeNames[t] }
func (t TransactionType) IsValid() bool { _, ok := transactionTypeNames[t]; return ok }

// RequiresInternationalFields reports whether the transfer needs recipient
// bank and address details.
func (t TransactionType) RequiresInternationalFields() bool {
	return t == TransactionSwift || t == TransactionAZA
}

func (t TransactionType) IsCrypto() bool { return t == TransactionCrypto }
func (t TransactionType) IsCard() bool   { return t == TransactionCard }

func TransactionTypeByName(name string) (TransactionType, bool) {
	return lookup(transactionTypeNames, name)
}

// Rail is the path segment used to create a transfer.
type Rail string

const (
	RailSwift Rail = "swift"
	RailSEPA  Rail = "sepa"
	RailACH   Rail = "ach"
	RailBACS  Rail = "bacs"
)

func (r Rail) IsValid() bool {
	switch r {
	case RailSwift, RailSEPA, RailACH, RailBACS:
		return true
	}
	return false
}

func Rails() []string {
	return []string{string(RailSwift), string(RailSEPA), string(RailACH), string(RailBACS)}
}
