package service

import (
	"context"

	"github.com/suar-net/iberbanco-go/internal/auth"
	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/transport"
	"github.com/suar-net/iberbanco-go/internal/validation"
)

type exchangeService struct {
	base
}

func NewExchangeService(doer transport.Doer, a *auth.Authenticator, opts ...Option) IExchangeService {
	return &exchangeService{base: newBase(doer, a, opts)}
}

func (s *exchangeService) GetRate(ctx context.Context, params map[string]any) (model.Envelope, error) {
	query, err := wire[model.GetRate](params, s.clock())
	if err != nil {
		return nil, err
	}
	return s.get(ctx, "exchange/rate", query)
}

// Conversion quotes amount of from in to. options may carry precision; its
// keys override the positional arguments.
func (s *exchangeService) Conversion(ctx context.Context, from, to string, amount float64, options map[string]any) (model.Envelope, error) {
	if err := validation.Finite(amount, "amount"); err != nil {
		return nil, err
	}
	return s.GetRate(ctx, merge(map[string]any{
		"from":   formatCurrency(from),
		"to":     formatCurrency(to),
		"amount": formatAmount(amount),
	}, options))
}

// HistoricalRate quotes the rate on date (Y-m-d), at most one year back.
func (s *exchangeService) HistoricalRate(ctx context.Context, from, to, date string, options map[string]any) (model.Envelope, error) {
	query, err := wire[model.HistoricalRate](merge(map[string]any{
		"from": formatCurrency(from),
		"to":   formatCurrency(to),
		"date": date,
	}, options), s.clock())
	if err != nil {
		return nil, err
	}
	return s.get(ctx, "exchange/rate", query)
}
