package service

import (
	"context"

	"github.com/suar-net/iberbanco-go/internal/auth"
	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/transport"
)

type cryptoService struct {
	base
}

func NewCryptoService(doer transport.Doer, a *auth.Authenticator, opts ...Option) ICryptoService {
	return &cryptoService{base: newBase(doer, a, opts)}
}

func (s *cryptoService) List(ctx context.Context, filters map[string]any) (model.Envelope, error) {
	dto, err := model.FromMap[model.ListCryptoTransactions](filters, s.clock())
	if err != nil {
		return nil, err
	}
	return s.get(ctx, "crypto/transactions", withPerPage(model.ToMap(dto, false), defaultCryptoPerPage))
}

func (s *cryptoService) Search(ctx context.Context, params map[string]any) (model.Envelope, error) {
	body, err := wire[model.SearchCryptoTransactions](params, s.clock())
	if err != nil {
		return nil, err
	}
	return s.post(ctx, "crypto/transactions/search", body)
}

func (s *cryptoService) Show(ctx context.Context, transactionNumber string) (model.Envelope, error) {
	path, err := resourcePath("crypto/transactions", transactionNumber, "transaction_number")
	if err != nil {
		return nil, err
	}
	return s.get(ctx, path, nil)
}

func (s *cryptoService) CreatePaymentLink(ctx context.Context, data map[string]any) (model.Envelope, error) {
	body, err := wire[model.CreatePaymentLink](data, s.clock())
	if err != nil {
		return nil, err
	}
	return s.post(ctx, "crypto/transactions/payment-link", body)
}
