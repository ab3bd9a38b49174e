package handler

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errInvalidCredentials = errors.New("invalid credentials")

// Bank is the in-memory state behind the mock server: known agents, their
// open sessions and a fixed rate sheet.
type Bank struct {
	mu       sync.RWMutex
	agents   map[string]string
	sessions map[string]string
	balances map[string]decimal.Decimal
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

type BankOption func(*Bank)

func WithBankClock(now func() time.Time) BankOption {
	return func(b *Bank) { b.now = now }
}

// WithSessionTTL sets how long an issued session token stays valid.
func WithSessionTTL(ttl time.Duration) BankOption {
	return func(b *Bank) { b.ttl = ttl }
}

func NewBank(opts ...BankOption) *Bank {
	b := &Bank{
		agents:   make(map[string]string),
		sessions: make(map[string]string),
		balances: map[string]decimal.Decimal{
			"USD": decimal.RequireFromString("125000.50"),
			"EUR": decimal.RequireFromString("48200.00"),
			"GBP": decimal.RequireFromString("9100.75"),
		},
		secret: []byte(uuid.NewString()),
		ttl:    time.Hour,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddAgent registers credentials accepted by the login endpoint.
func (b *Bank) AddAgent(username, password string) {
	b.mu.Lock()
	b.agents[username] = password
	b.mu.Unlock()
}

// Login checks credentials and opens a session. The token is a signed JWT
// whose exp claim matches the returned expiry.
func (b *Bank) Login(username, password string) (string, time.Time, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	want, ok := b.agents[username]
	if !ok || want != password {
		return "", time.Time{}, errInvalidCredentials
	}

	now := b.now()
	expires := now.Add(b.ttl).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
		Issuer:    "iberbanco-mock",
	}).SignedString(b.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	b.sessions[token] = username
	return token, expires, nil
}

// Session resolves a token to its agent. Expired or unknown tokens fail.
func (b *Bank) Session(token string) (string, bool) {
	b.mu.RLock()
	username, ok := b.sessions[token]
	b.mu.RUnlock()
	if !ok {
		return "", false
	}

	_, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return b.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(b.now))
	if err != nil {
		return "", false
	}
	return username, true
}

func (b *Bank) Now() time.Time {
	return b.now()
}

// Balance is the total held in currency, zero when none.
func (b *Bank) Balance(currency string) decimal.Decimal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.balances[currency]
}

// usdRates prices one US dollar in each supported currency.
var usdRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"EUR": decimal.RequireFromString("0.92"),
	"GBP": decimal.RequireFromString("0.79"),
	"CHF": decimal.RequireFromString("0.88"),
	"TRY": decimal.RequireFromString("32.50"),
	"AED": decimal.RequireFromString("3.6725"),
	"CNH": decimal.RequireFromString("7.25"),
	"AUD": decimal.RequireFromString("1.51"),
	"CZK": decimal.RequireFromString("23.10"),
	"PLN": decimal.RequireFromString("3.98"),
	"CAD": decimal.RequireFromString("1.37"),
	"HKD": decimal.RequireFromString("7.81"),
	"SGD": decimal.RequireFromString("1.35"),
	"JPY": decimal.RequireFromString("157.20"),
}

// Rate is the cross rate from -> to rounded to precision places.
func Rate(from, to string, precision int32) (decimal.Decimal, bool) {
	f, ok := usdRates[from]
	if !ok {
		return decimal.Zero, false
	}
	t, ok := usdRates[to]
	if !ok {
		return decimal.Zero, false
	}
	return t.DivRound(f, precision), true
}
