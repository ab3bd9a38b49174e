// Package service holds one facade per platform resource. Facades validate
// caller input through the model DTOs, attach signed headers and hand the
// request to a transport.Doer.
package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/suar-net/iberbanco-go/internal/auth"
	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/sdkerr"
	"github.com/suar-net/iberbanco-go/internal/transport"
	"github.com/suar-net/iberbanco-go/internal/validation"
)

const (
	maxPerPage = 100

	defaultAccountsPerPage     = 25
	defaultCardsPerPage        = 25
	defaultUsersPerPage        = 50
	defaultTransactionsPerPage = 50
	defaultCryptoPerPage       = 50
)

type IAuthService interface {
	Authenticate(ctx context.Context, username, password string) (model.Envelope, error)
	IsTokenValid() bool
	Token() string
	SetToken(token string)
	ClearToken()
	GenerateAuthHeaders(token string, timestamp int64) (auth.SignedHeaders, error)
	VerifyHash(token string, timestamp int64, username, hash string) bool
	ValidateTimestamp(timestamp int64, tolerance time.Duration) bool
}

type IUserService interface {
	List(ctx context.Context, filters map[string]any) (model.Envelope, error)
	RegisterPersonal(ctx context.Context, data map[string]any) (model.Envelope, error)
	RegisterBusiness(ctx context.Context, data map[string]any) (model.Envelope, error)
}

type IAccountService interface {
	List(ctx context.Context, filters map[string]any) (model.Envelope, error)
	Search(ctx context.Context, params map[string]any) (model.Envelope, error)
	Show(ctx context.Context, accountNumber string) (model.Envelope, error)
	Create(ctx context.Context, data map[string]any) (model.Envelope, error)
	TotalBalance(ctx context.Context, params map[string]any) (model.Envelope, error)
}

type ITransactionService interface {
	List(ctx context.Context, filters map[string]any) (model.Envelope, error)
	Search(ctx context.Context, params map[string]any) (model.Envelope, error)
	Show(ctx context.Context, transactionNumber string) (model.Envelope, error)
	Create(ctx context.Context, transferType string, data map[string]any) (model.Envelope, error)
	CreateSwift(ctx context.Context, data map[string]any) (model.Envelope, error)
	CreateSepa(ctx context.Context, data map[string]any) (model.Envelope, error)
	CreateAch(ctx context.Context, data map[string]any) (model.Envelope, error)
	CreateBacs(ctx context.Context, data map[string]any) (model.Envelope, error)
}

type ICardService interface {
	List(ctx context.Context, filters map[string]any) (model.Envelope, error)
	Show(ctx context.Context, remoteID string) (model.Envelope, error)
	Create(ctx context.Context, data map[string]any) (model.Envelope, error)
	Transactions(ctx context.Context, params map[string]any) (model.Envelope, error)
	RequestPhysical(ctx context.Context, data map[string]any) (model.Envelope, error)
}

type ICryptoService interface {
	List(ctx context.Context, filters map[string]any) (model.Envelope, error)
	Search(ctx context.Context, params map[string]any) (model.Envelope, error)
	Show(ctx context.Context, transactionNumber string) (model.Envelope, error)
	CreatePaymentLink(ctx context.Context, data map[string]any) (model.Envelope, error)
}

type IExchangeService interface {
	GetRate(ctx context.Context, params map[string]any) (model.Envelope, error)
	Conversion(ctx context.Context, from, to string, amount float64, options map[string]any) (model.Envelope, error)
	HistoricalRate(ctx context.Context, from, to, date string, options map[string]any) (model.Envelope, error)
}

type IExportService interface {
	Users(ctx context.Context, params map[string]any) (model.Envelope, error)
	Accounts(ctx context.Context, params map[string]any) (model.Envelope, error)
	Transactions(ctx context.Context, params map[string]any) (model.Envelope, error)
	Cards(ctx context.Context, params map[string]any) (model.Envelope, error)
	Columns(resource model.ExportResource) []string
}

type Option func(*base)

// WithClock replaces time.Now for date-relative input checks.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// base carries what every facade shares: the transport, the session and the
// clock used by date-relative DTO checks.
type base struct {
	doer transport.Doer
	auth *auth.Authenticator
	now  func() time.Time
}

func newBase(doer transport.Doer, a *auth.Authenticator, opts []Option) base {
	b := base{doer: doer, auth: a, now: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) clock() model.Option {
	return model.WithClock(b.now)
}

func (b *base) signedHeaders() (map[string]string, error) {
	if !b.auth.IsAuthenticated() {
		err := sdkerr.MissingToken()
		err.Errors = []string{"Authentication token is required for this request"}
		return nil, err
	}
	signed, err := b.auth.GenerateAuthHeaders("", 0)
	if err != nil {
		return nil, err
	}
	return signed.Map(), nil
}

func (b *base) get(ctx context.Context, path string, query map[string]any) (model.Envelope, error) {
	return b.send(ctx, http.MethodGet, path, compact(query))
}

func (b *base) post(ctx context.Context, path string, body map[string]any) (model.Envelope, error) {
	if body == nil {
		body = map[string]any{}
	}
	return b.send(ctx, http.MethodPost, path, body)
}

func (b *base) send(ctx context.Context, method, path string, body map[string]any) (model.Envelope, error) {
	headers, err := b.signedHeaders()
	if err != nil {
		return nil, err
	}
	res, err := b.doer.Do(ctx, method, path, body, headers)
	if err != nil {
		return nil, err
	}
	return model.Envelope(res), nil
}

// compact drops nil and empty string values from a query.
func compact(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// withPerPage fills in the default page size and clamps it to [1, 100].
func withPerPage(query map[string]any, def int) map[string]any {
	n, ok := query["per_page"].(int)
	if !ok {
		n = def
	}
	query["per_page"] = max(1, min(n, maxPerPage))
	return query
}

// resourcePath joins a collection path and an identifier, rejecting a blank
// identifier.
func resourcePath(collection, id, field string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", sdkerr.Required(field)
	}
	return collection + "/" + url.PathEscape(id), nil
}

// formatAmount rounds to cents, half away from zero. Non-finite values are
// returned unchanged.
func formatAmount(amount float64) float64 {
	if validation.Finite(amount, "amount") != nil {
		return amount
	}
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

func formatCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// merge returns params overlaid with extra. Neither input is modified.
func merge(params, extra map[string]any) map[string]any {
	out := make(map[string]any, len(params)+len(extra))
	for k, v := range params {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
