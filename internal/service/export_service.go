package service

import (
	"context"

	"github.com/suar-net/iberbanco-go/internal/auth"
	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/transport"
)

type exportService struct {
	base
}

func NewExportService(doer transport.Doer, a *auth.Authenticator, opts ...Option) IExportService {
	return &exportService{base: newBase(doer, a, opts)}
}

func (s *exportService) Users(ctx context.Context, params map[string]any) (model.Envelope, error) {
	return s.start(ctx, model.ExportUsers, params)
}

func (s *exportService) Accounts(ctx context.Context, params map[string]any) (model.Envelope, error) {
	return s.start(ctx, model.ExportAccounts, params)
}

func (s *exportService) Transactions(ctx context.Context, params map[string]any) (model.Envelope, error) {
	return s.start(ctx, model.ExportTransactions, params)
}

func (s *exportService) Cards(ctx context.Context, params map[string]any) (model.Envelope, error) {
	return s.start(ctx, model.ExportCards, params)
}

func (s *exportService) Columns(resource model.ExportResource) []string {
	return resource.Columns()
}

// start queues an export job. The platform answers with a job reference; the
// file is delivered out of band.
func (s *exportService) start(ctx context.Context, resource model.ExportResource, params map[string]any) (model.Envelope, error) {
	dto, err := model.FromMap[model.ExportData](params, s.clock())
	if err != nil {
		return nil, err
	}
	if err := resource.CheckColumns(dto.Columns); err != nil {
		return nil, err
	}
	return s.post(ctx, "export/"+string(resource), model.ToMap(dto, false))
}
