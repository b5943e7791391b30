package targeting

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-pipeline-api/infrastructure/repository"
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
	"github.com/vfg2006/sales-pipeline-api/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline-api/pkg/log"
)

// defaultRangeMonths é a janela listada quando o início não é informado
const defaultRangeMonths = 12

// Targeter define as operações de metas mensais da organização
type Targeter interface {
	UpsertTarget(ctx context.Context, month domain.Month, salesTarget, profitTarget decimal.Decimal) (*domain.MonthlyTarget, error)
	ListTargets(ctx context.Context, from, to domain.Month) ([]domain.MonthlyTarget, error)
}

type Service struct {
	targetRepo   repository.TargetRepository
	snapshotRepo repository.DashboardSnapshotRepository
	now          func() time.Time
}

var _ Targeter = (*Service)(nil)

func NewService(targetRepo repository.TargetRepository, snapshotRepo repository.DashboardSnapshotRepository) *Service {
	return &Service{
		targetRepo:   targetRepo,
		snapshotRepo: snapshotRepo,
		now:          time.Now,
	}
}

// WithClock substitui o relógio usado para o mês corrente
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// UpsertTarget cria ou substitui a meta da organização do mês. O mês é gravado como o seu primeiro dia.
// Os snapshots do mês e dos meses seguintes são descartados, pois a meta entra na tendência deles
func (s *Service) UpsertTarget(ctx context.Context, month domain.Month, salesTarget, profitTarget decimal.Decimal) (*domain.MonthlyTarget, error) {
	if month.IsZero() {
		return nil, NewTargetError(ErrMonthRequired, apiErrors.ErrMissingRequiredData, "", "")
	}

	if salesTarget.IsNegative() || profitTarget.IsNegative() {
		return nil, NewTargetError(ErrNegativeTarget, apiErrors.ErrInvalidFormat, month.String(), "")
	}

	target, err := s.targetRepo.UpsertOrgTarget(ctx, &domain.MonthlyTarget{
		Month:        month,
		SalesTarget:  salesTarget,
		ProfitTarget: profitTarget,
	})
	if err != nil {
		return nil, NewTargetError(ErrUpsertTarget, apiErrors.ErrDatabaseOperation, month.String(), err.Error())
	}

	deleted, err := s.snapshotRepo.DeleteFromPeriod(ctx, month)
	if err != nil {
		return nil, NewTargetError(ErrInvalidateSnapshots, apiErrors.ErrDatabaseOperation, month.String(), err.Error())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"month":             month.String(),
		"sales_target":      salesTarget.String(),
		"profit_target":     profitTarget.String(),
		"snapshots_deleted": deleted,
	}).Info("targets: meta mensal da organização salva")

	return target, nil
}

// ListTargets lista as metas da organização entre from e to, inclusive.
// to zero usa o mês corrente e from zero usa os últimos doze meses até to
func (s *Service) ListTargets(ctx context.Context, from, to domain.Month) ([]domain.MonthlyTarget, error) {
	if to.IsZero() {
		to = domain.NewMonth(s.now())
	}

	if from.IsZero() {
		from = to.AddMonths(-(defaultRangeMonths - 1))
	}

	if to.Before(from) {
		return nil, NewTargetError(ErrInvalidMonthRange, apiErrors.ErrInvalidRequest, "",
			from.String()+" > "+to.String())
	}

	targets, err := s.targetRepo.ListByMonthRange(ctx, from, to, nil)
	if err != nil {
		return nil, NewTargetError(ErrFetchTargets, apiErrors.ErrDatabaseOperation, "", err.Error())
	}

	return targets, nil
}
