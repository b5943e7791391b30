package dealing

import (
	"context"

	"github.com/vfg2006/sales-pipeline-api/infrastructure/repository"
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
	"github.com/vfg2006/sales-pipeline-api/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline-api/pkg/log"
)

// Query filtra a listagem de negócios. Campos vazios não filtram
type Query struct {
	Status         domain.DealStatus
	Category       string
	AssigneeID     string
	Search         string
	IncludeDeleted bool
}

// Dealer define a listagem e a exportação filtrada de negócios
type Dealer interface {
	ListDeals(ctx context.Context, query Query) ([]domain.Deal, error)
	ExportDeals(ctx context.Context, query Query) ([]byte, error)
}

type Exporter interface {
	DealsToXLSX(deals []domain.Deal) ([]byte, error)
}

type Service struct {
	dealRepo repository.DealRepository
	exporter Exporter
}

var _ Dealer = (*Service)(nil)

func NewService(dealRepo repository.DealRepository, exporter Exporter) *Service {
	return &Service{
		dealRepo: dealRepo,
		exporter: exporter,
	}
}

// ListDeals retorna os negócios que atendem ao filtro, na ordem de criação
func (s *Service) ListDeals(ctx context.Context, query Query) ([]domain.Deal, error) {
	if query.Status != "" && !query.Status.Valid() {
		return nil, NewDealError(ErrInvalidStatus, apiErrors.ErrInvalidFormat, string(query.Status))
	}

	deals, err := s.dealRepo.ListDeals(ctx, repository.DealFilter{
		AssigneeID:     query.AssigneeID,
		Status:         query.Status,
		Category:       query.Category,
		Search:         query.Search,
		IncludeDeleted: query.IncludeDeleted,
	})
	if err != nil {
		return nil, NewDealError(ErrFetchDeals, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return deals, nil
}

// ExportDeals gera a planilha com os negócios do filtro
func (s *Service) ExportDeals(ctx context.Context, query Query) ([]byte, error) {
	deals, err := s.ListDeals(ctx, query)
	if err != nil {
		return nil, err
	}

	content, err := s.exporter.DealsToXLSX(deals)
	if err != nil {
		return nil, NewDealError(ErrExport, apiErrors.ErrExportFailed, err.Error())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"status":      string(query.Status),
		"category":    query.Category,
		"user_id":     query.AssigneeID,
		"total_deals": len(deals),
	}).Info("deals: planilha de negócios gerada")

	return content, nil
}
