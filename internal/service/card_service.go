package service

import (
	"context"

	"github.com/suar-net/iberbanco-go/internal/auth"
	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/transport"
)

type cardService struct {
	base
}

func NewCardService(doer transport.Doer, a *auth.Authenticator, opts ...Option) ICardService {
	return &cardService{base: newBase(doer, a, opts)}
}

func (s *cardService) List(ctx context.Context, filters map[string]any) (model.Envelope, error) {
	dto, err := model.FromMap[model.ListCards](filters, s.clock())
	if err != nil {
		return nil, err
	}
	return s.get(ctx, "cards", withPerPage(model.ToMap(dto, false), defaultCardsPerPage))
}

func (s *cardService) Show(ctx context.Context, remoteID string) (model.Envelope, error) {
	path, err := resourcePath("cards", remoteID, "remote_id")
	if err != nil {
		return nil, err
	}
	return s.get(ctx, path, nil)
}

func (s *cardService) Create(ctx context.Context, data map[string]any) (model.Envelope, error) {
	body, err := wire[model.CreateCard](data, s.clock())
	if err != nil {
		return nil, err
	}
	return s.post(ctx, "cards/create", body)
}

func (s *cardService) Transactions(ctx context.Context, params map[string]any) (model.Envelope, error) {
	body, err := wire[model.CardTransactions](params, s.clock())
	if err != nil {
		return nil, err
	}
	return s.post(ctx, "cards/transactions", body)
}

func (s *cardService) RequestPhysical(ctx context.Context, data map[string]any) (model.Envelope, error) {
	body, err := wire[model.RequestPhysicalCard](data, s.clock())
	if err != nil {
		return nil, err
	}
	return s.post(ctx, "cards/request-physical", body)
}
