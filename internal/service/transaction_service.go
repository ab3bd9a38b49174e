package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/suar-net/iberbanco-go/internal/auth"
	"github.com/suar-net/iberbanco-go/internal/enum"
	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/sdkerr"
	"github.com/suar-net/iberbanco-go/internal/transport"
	"github.com/suar-net/iberbanco-go/internal/validation"
)

// TransferTypes are the path segments accepted by Create.
var TransferTypes = []string{"swift", "sepa", "ach", "bacs", "eft", "interac", "internal", "pan-africa"}

type transactionService struct {
	base
}

func NewTransactionService(doer transport.Doer, a *auth.Authenticator, opts ...Option) ITransactionService {
	return &transactionService{base: newBase(doer, a, opts)}
}

func (s *transactionService) List(ctx context.Context, filters map[string]any) (model.Envelope, error) {
	dto, err := model.FromMap[model.ListTransactions](filters, s.clock())
	if err != nil {
		return nil, err
	}
	return s.get(ctx, "transactions", withPerPage(model.ToMap(dto, false), defaultTransactionsPerPage))
}

func (s *transactionService) Search(ctx context.Context, params map[string]any) (model.Envelope, error) {
	dto, err := model.FromMap[model.SearchTransactions](params, s.clock())
	if err != nil {
		return nil, err
	}
	return s.post(ctx, "transactions/search", model.ToMap(dto, false))
}

func (s *transactionService) Show(ctx context.Context, transactionNumber string) (model.Envelope, error) {
	path, err := resourcePath("transactions", transactionNumber, "transaction_number")
	if err != nil {
		return nil, err
	}
	return s.get(ctx, path, nil)
}

// Create posts a transfer of the given type. The four clearing rails are
// checked against their full field set; the other types only need a source
// account and a positive amount.
func (s *transactionService) Create(ctx context.Context, transferType string, data map[string]any) (model.Envelope, error) {
	kind := strings.ToLower(strings.TrimSpace(transferType))
	if err := validation.OneOf(kind, TransferTypes, "type"); err != nil {
		return nil, sdkerr.InvalidValue("type", transferType, TransferTypes...)
	}

	var (
		body map[string]any
		err  error
	)
	switch enum.Rail(kind) {
	case enum.RailSwift:
		body, err = wire[model.CreateSwiftTransaction](data, s.clock())
	case enum.RailSEPA:
		body, err = wire[model.CreateSepaTransaction](data, s.clock())
	case enum.RailACH:
		body, err = wire[model.CreateAchTransaction](data, s.clock())
	case enum.RailBACS:
		body, err = wire[model.CreateBacsTransaction](data, s.clock())
	default:
		body, err = checkTransfer(data)
	}
	if err != nil {
		return nil, err
	}
	return s.post(ctx, "transactions/"+kind, body)
}

func (s *transactionService) CreateSwift(ctx context.Context, data map[string]any) (model.Envelope, error) {
	return s.Create(ctx, string(enum.RailSwift), data)
}

func (s *transactionService) CreateSepa(ctx context.Context, data map[string]any) (model.Envelope, error) {
	return s.Create(ctx, string(enum.RailSEPA), data)
}

func (s *transactionService) CreateAch(ctx context.Context, data map[string]any) (model.Envelope, error) {
	return s.Create(ctx, string(enum.RailACH), data)
}

func (s *transactionService) CreateBacs(ctx context.Context, data map[string]any) (model.Envelope, error) {
	return s.Create(ctx, string(enum.RailBACS), data)
}

// wire validates data as a T and returns its wire form.
func wire[T any, P interface {
	*T
	model.DTO
}](data map[string]any, opts ...model.Option) (map[string]any, error) {
	dto, err := model.FromMap[T, P](data, opts...)
	if err != nil {
		return nil, err
	}
	return model.ToMap(dto, false), nil
}

// checkTransfer covers transfer types without a dedicated payload: the body
// is passed through once the common fields hold.
func checkTransfer(data map[string]any) (map[string]any, error) {
	if err := validation.Required(data, []string{"account_number", "amount"}); err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(fmt.Sprint(data["amount"])))
	if err != nil {
		return nil, sdkerr.InvalidFormat("amount", "numeric")
	}
	if !amount.IsPositive() {
		return nil, sdkerr.Minimum("amount", amount.String(), 0.01)
	}
	return merge(data, nil), nil
}
