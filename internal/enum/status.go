package enum

import "strconv"

type AccountStatus int

const (
	AccountRequested AccountStatus = 1
	AccountActive    AccountStatus = 2
	AccountInactive  AccountStatus = 3
)

var accountStatusNames = map[AccountStatus]string{
	AccountRequested: "Requested",
	AccountActive:    "Active",
	AccountInactive:  "Inactive",
}

func (s AccountStatus) Name() string  { return accountStatusNames[s] }
func (s AccountStatus) IsValid() bool { _, ok := accountStatusNames[s]; return ok }

func AccountStatusByName(name string) (AccountStatus, bool) {
	return lookup(accountStatusNames, name)
}

type CardStatus int

const (
	CardNew       CardStatus = -1
	CardIssued    CardStatus = 0
	CardActivated CardStatus = 1
	CardHold      CardStatus = 2
	CardSuspend   CardStatus = 3
	CardNormal    CardStatus = 4
	CardInactive  CardStatus = 5
	CardLost      CardStatus = 6
	CardStolen    CardStatus = 7
	CardExpired   CardStatus = 8
	CardDenied    CardStatus = 9
)

var cardStatusNames = map[CardStatus]string{
	CardNew:       "New",
	CardIssued:    "Issued",
	CardActivated: "Activated",
	CardHold:      "Hold",
	CardSuspend:   "Suspend",
	CardNormal:    "Normal",
	CardInactive:  "Inactive",
	CardLost:      "Lost",
	CardStolen:    "Stolen",
	CardExpired:   "Expired",
	CardDenied:    "Denied",
}

func (s CardStatus) Name() string  { return cardStatusNames[s] }
func (s CardStatus) IsValid() bool { _, ok := cardStatusNames[s]; return ok }

// IsActive reports whether the card can be used for payments.
func (s CardStatus) IsActive() bool {
	return s == CardActivated || s == CardNormal
}

func (s CardStatus) IsBlocked() bool {
	switch s {
	case CardHold, CardSuspend, CardLost, CardStolen, CardExpired, CardDenied:
		return true
	}
	return false
}

func CardStatusByName(name string) (CardStatus, bool) {
	return lookup(cardStatusNames, name)
}

type ClientType int

const (
	ClientPersonal ClientType = 1
	ClientBusiness ClientType = 2
)

var clientTypeNames = map[ClientType]string{
	ClientPersonal: "personal",
	ClientBusiness: "business",
}

func (t ClientType) Name() string  { return clientTypeNames[t] }
func (t ClientType) IsValid() bool { _, ok := clientTypeNames[t]; return ok }

func ClientTypeByName(name string) (ClientType, bool) {
	return lookup(clientTypeNames, name)
}

type TransactionStatus int

const (
	TransactionNew       TransactionStatus = 1
	TransactionApproved  TransactionStatus = 2
	TransactionDenied    TransactionStatus = 3
	TransactionProcess   TransactionStatus = 4
	TransactionCanceling TransactionStatus = 5
	TransactionCanceled  TransactionStatus = 6
	TransactionRefunded  TransactionStatus = 7
	TransactionError     TransactionStatus = 8
)

var transactionStatusNames = map[TransactionStatus]string{
	TransactionNew:       "New",
	TransactionApproved:  "Approved",
	TransactionDenied:    "Denied",
	TransactionProcess:   "Processing",
	TransactionCanceling: "Canceling",
	TransactionCanceled:  "Canceled",
	TransactionRefunded:  "Refunded",
	TransactionError:     "Error",
}

func (s TransactionStatus) Name() string  { return transactionStatusNames[s] }
func (s TransactionStatus) IsValid() bool { _, ok := transactionStatusNames[s]; return ok }

func (s TransactionStatus) IsPending() bool {
	return s == TransactionNew || s == TransactionProcess
}

// IsFinal reports whether no further state change is expected.
// Canceling is neither pending nor final.
func (s TransactionStatus) IsFinal() bool {
	switch s {
	case TransactionApproved, TransactionDenied, TransactionCanceled, TransactionRefunded, TransactionError:
		return true
	}
	return false
}

func TransactionStatusByName(name string) (TransactionStatus, bool) {
	return lookup(transactionStatusNames, name)
}

func lookup[K comparable](names map[K]string, name string) (K, bool) {
	for k, v := range names {
		if v == name {
			return k, true
		}
	}
	var zero K
	return zero, false
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
