package service

import (
	"context"

	"github.com/suar-net/iberbanco-go/internal/auth"
	"github.com/suar-net/iberbanco-go/internal/enum"
	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/transport"
)

type userService struct {
	base
}

func NewUserService(doer transport.Doer, a *auth.Authenticator, opts ...Option) IUserService {
	return &userService{base: newBase(doer, a, opts)}
}

func (s *userService) List(ctx context.Context, filters map[string]any) (model.Envelope, error) {
	dto, err := model.FromMap[model.ListUsers](filters, s.clock())
	if err != nil {
		return nil, err
	}
	return s.get(ctx, "users", withPerPage(model.ToMap(dto, false), defaultUsersPerPage))
}

func (s *userService) RegisterPersonal(ctx context.Context, data map[string]any) (model.Envelope, error) {
	dto, err := model.FromMap[model.RegisterPersonalUser](data, s.clock())
	if err != nil {
		return nil, err
	}
	body := model.ToMap(dto, false)
	body["type"] = int(enum.ClientPersonal)
	return s.post(ctx, "users/register/personal", body)
}

func (s *userService) RegisterBusiness(ctx context.Context, data map[string]any) (model.Envelope, error) {
	dto, err := model.FromMap[model.RegisterBusinessUser](data, s.clock())
	if err != nil {
		return nil, err
	}
	body := model.ToMap(dto, false)
	body["type"] = int(enum.ClientBusiness)
	return s.post(ctx, "users/register/business", body)
}
