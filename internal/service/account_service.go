package service

import (
	"context"

	"github.com/suar-net/iberbanco-go/internal/auth"
	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/transport"
)

type accountService struct {
	base
}

func NewAccountService(doer transport.Doer, a *auth.Authenticator, opts ...Option) IAccountService {
	return &accountService{base: newBase(doer, a, opts)}
}

// List clamps per_page into range rather than rejecting it.
func (s *accountService) List(ctx context.Context, filters map[string]any) (model.Envelope, error) {
	dto, err := model.FromMap[model.ListAccounts](filters, s.clock())
	if err != nil {
		return nil, err
	}
	return s.get(ctx, "accounts", withPerPage(model.ToMap(dto, false), defaultAccountsPerPage))
}

func (s *accountService) Search(ctx context.Context, params map[string]any) (model.Envelope, error) {
	dto, err := model.FromMap[model.SearchAccounts](params, s.clock())
	if err != nil {
		return nil, err
	}
	return s.post(ctx, "accounts/search", model.ToMap(dto, false))
}

func (s *accountService) Show(ctx context.Context, accountNumber string) (model.Envelope, error) {
	path, err := resourcePath("accounts", accountNumber, "account_number")
	if err != nil {
		return nil, err
	}
	return s.get(ctx, path, nil)
}

func (s *accountService) Create(ctx context.Context, data map[string]any) (model.Envelope, error) {
	dto, err := model.FromMap[model.CreateAccount](data, s.clock())
	if err != nil {
		return nil, err
	}
	return s.post(ctx, "accounts/create", model.ToMap(dto, false))
}

func (s *accountService) TotalBalance(ctx context.Context, params map[string]any) (model.Envelope, error) {
	dto, err := model.FromMap[model.TotalBalance](params, s.clock())
	if err != nil {
		return nil, err
	}
	return s.get(ctx, "accounts/total-balance", model.ToMap(dto, false))
}
