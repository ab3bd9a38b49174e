package repository

import (
	"context"
	"database/sql"

	"github.com/suar-net/iberbanco-go/internal/model"
)

type IRequestRepository interface {
	Record(ctx context.Context, entry *model.RequestLog) error
	Recent(ctx context.Context, limit int) ([]*model.RequestLog, error)
}

type IRepository interface {
	Request() IRequestRepository
}

type Repository struct {
	request IRequestRepository
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		request: NewRequestRepository(db),
	}
}

func (r *Repository) Request() IRequestRepository {
	return r.request
}
