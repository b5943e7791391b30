package dashboarding

import (
	"context"
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-pipeline-api/infrastructure/repository"
	"github.com/vfg2006/sales-pipeline-api/internal/analytics"
	"github.com/vfg2006/sales-pipeline-api/internal/config"
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
	"github.com/vfg2006/sales-pipeline-api/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline-api/pkg/log"
)

// Query identifica o dashboard pedido. Month zero usa o mês corrente e TrendMonths <= 0 usa o padrão configurado
type Query struct {
	Month       domain.Month
	TrendMonths int
	AssigneeID  string
}

// Dashboarder define as operações do dashboard de vendas
type Dashboarder interface {
	GetDashboard(ctx context.Context, query Query) (*domain.Dashboard, error)
	BuildSnapshot(ctx context.Context, month domain.Month, trendMonths int) (*domain.DashboardSnapshot, error)
	ExportDashboard(ctx context.Context, query Query) ([]byte, error)
	GetAvailablePeriods(ctx context.Context) (*domain.AvailablePeriods, error)
}

// Exporter converte um dashboard em arquivo
type Exporter interface {
	DashboardToXLSX(dashboard *domain.Dashboard) ([]byte, error)
}

type Service struct {
	cfg          config.Dashboard
	dealRepo     repository.DealRepository
	targetRepo   repository.TargetRepository
	userRepo     repository.UserRepository
	snapshotRepo repository.DashboardSnapshotRepository
	exporter     Exporter
	now          func() time.Time
}

var _ Dashboarder = (*Service)(nil)

func NewService(
	cfg config.Dashboard,
	dealRepo repository.DealRepository,
	targetRepo repository.TargetRepository,
	userRepo repository.UserRepository,
	snapshotRepo repository.DashboardSnapshotRepository,
	exporter Exporter,
) *Service {
	return &Service{
		cfg:          cfg,
		dealRepo:     dealRepo,
		targetRepo:   targetRepo,
		userRepo:     userRepo,
		snapshotRepo: snapshotRepo,
		exporter:     exporter,
		now:          time.Now,
	}
}

// WithClock substitui o relógio usado para decidir se um mês está fechado
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CurrentMonth retorna o mês corrente segundo o relógio do serviço
func (s *Service) CurrentMonth() domain.Month {
	return domain.NewMonth(s.now())
}

func (s *Service) normalize(query Query) (Query, error) {
	if query.Month.IsZero() {
		query.Month = s.CurrentMonth()
	}

	if query.TrendMonths <= 0 {
		query.TrendMonths = s.cfg.TrendMonths
	}

	if query.TrendMonths > s.cfg.MaxTrendMonths {
		return query, NewDashboardError(ErrInvalidTrendMonths, apiErrors.ErrInvalidFormat, query.Month.String(), nil)
	}

	return query, nil
}

// GetDashboard monta o dashboard do mês. Meses fechados podem ser servidos a partir do snapshot persistido
func (s *Service) GetDashboard(ctx context.Context, query Query) (*domain.Dashboard, error) {
	query, err := s.normalize(query)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"month":        query.Month.String(),
		"trend_months": query.TrendMonths,
		"user_id":      query.AssigneeID,
	})

	if s.cacheable(query) {
		snapshot, err := s.snapshotRepo.GetByPeriod(ctx, query.Month, query.TrendMonths)
		if err != nil {
			logger.WithError(err).Warn("dashboard: erro ao buscar snapshot, calculando a partir dos negócios")
		} else if snapshot != nil {
			logger.Debug("dashboard: servindo snapshot persistido")
			return snapshot.Dashboard, nil
		}
	}

	return s.assemble(ctx, query)
}

func (s *Service) cacheable(query Query) bool {
	return s.cfg.SnapshotCacheEnabled &&
		query.AssigneeID == "" &&
		query.Month.Before(s.CurrentMonth())
}

func (s *Service) assemble(ctx context.Context, query Query) (*domain.Dashboard, error) {
	month := query.Month.String()

	var userID *string
	if query.AssigneeID != "" {
		assignee, err := s.userRepo.GetUserByID(ctx, query.AssigneeID)
		if err != nil {
			return nil, NewDashboardError(ErrFetchUsers, apiErrors.ErrDatabaseOperation, month, err)
		}
		if assignee == nil {
			return nil, NewDashboardError(ErrAssigneeNotFound, apiErrors.ErrResourceNotFound, month, nil)
		}
		userID = &assignee.ID
	}

	deals, err := s.dealRepo.ListDeals(ctx, repository.DealFilter{AssigneeID: query.AssigneeID})
	if err != nil {
		return nil, NewDashboardError(ErrFetchDeals, apiErrors.ErrDatabaseOperation, month, err)
	}

	window := analytics.TrendWindow(query.Month, query.TrendMonths)
	targets, err := s.targetRepo.ListByMonthRange(ctx, window[0], window[len(window)-1], userID)
	if err != nil {
		return nil, NewDashboardError(ErrFetchTargets, apiErrors.ErrDatabaseOperation, month, err)
	}

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, NewDashboardError(ErrFetchUsers, apiErrors.ErrDatabaseOperation, month, err)
	}

	dashboard, err := analytics.Assemble(analytics.Input{
		Deals:          deals,
		Targets:        targets,
		Users:          users,
		ReferenceMonth: query.Month,
		TrendMonths:    query.TrendMonths,
		AssigneeID:     query.AssigneeID,
	})
	if err != nil {
		var validationErr *analytics.ValidationError
		if errors.As(err, &validationErr) {
			dashErr := NewDashboardError(ErrInvalidRecord, apiErrors.ErrInvalidRecord, month, err)
			dashErr.Details = validationErr
			return nil, dashErr
		}
		return nil, NewDashboardError(err, apiErrors.ErrInternalServer, month, nil)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"month":       month,
		"total_deals": dashboard.TotalDeals,
	}).Debug("dashboard: agregação concluída")

	return dashboard, nil
}

// BuildSnapshot calcula e persiste o dashboard de um mês fechado
func (s *Service) BuildSnapshot(ctx context.Context, month domain.Month, trendMonths int) (*domain.DashboardSnapshot, error) {
	query, err := s.normalize(Query{Month: month, TrendMonths: trendMonths})
	if err != nil {
		return nil, err
	}

	if !query.Month.Before(s.CurrentMonth()) {
		return nil, NewDashboardError(ErrSnapshotOpenMonth, apiErrors.ErrInvalidRequest, query.Month.String(), nil)
	}

	dashboard, err := s.assemble(ctx, query)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.DashboardSnapshot{
		Period:      query.Month,
		TrendMonths: query.TrendMonths,
		Dashboard:   dashboard,
	}

	if err := s.snapshotRepo.SaveOrUpdate(ctx, snapshot); err != nil {
		return nil, NewDashboardError(ErrSaveSnapshot, apiErrors.ErrDatabaseOperation, query.Month.String(), err)
	}

	log.ForContext(ctx).WithField("period", query.Month.String()).Info("dashboard: snapshot persistido")

	return snapshot, nil
}

// ExportDashboard gera a planilha XLSX do dashboard
func (s *Service) ExportDashboard(ctx context.Context, query Query) ([]byte, error) {
	dashboard, err := s.GetDashboard(ctx, query)
	if err != nil {
		return nil, err
	}

	content, err := s.exporter.DashboardToXLSX(dashboard)
	if err != nil {
		return nil, NewDashboardError(ErrExport, apiErrors.ErrExportFailed, dashboard.ReferenceMonth.String(), err)
	}

	return content, nil
}

// GetAvailablePeriods retorna os meses e anos com snapshot persistido, do mais recente para o mais antigo
func (s *Service) GetAvailablePeriods(ctx context.Context) (*domain.AvailablePeriods, error) {
	periods, err := s.snapshotRepo.GetAllPeriods(ctx)
	if err != nil {
		return nil, NewDashboardError(ErrFetchSnapshots, apiErrors.ErrDatabaseOperation, "", err)
	}

	result := &domain.AvailablePeriods{
		Periods: make([]string, 0, len(periods)),
		Years:   make([]string, 0),
	}

	for _, period := range periods {
		month, err := domain.ParseMonth(period)
		if err != nil {
			log.ForContext(ctx).WithError(err).Warnf("dashboard: período inválido ignorado: %s", period)
			continue
		}

		normalized := month.String()
		if !slices.Contains(result.Periods, normalized) {
			result.Periods = append(result.Periods, normalized)
		}

		year := normalized[:4]
		if !slices.Contains(result.Years, year) {
			result.Years = append(result.Years, year)
		}
	}

	slices.Sort(result.Periods)
	slices.Reverse(result.Periods)
	slices.Sort(result.Years)
	slices.Reverse(result.Years)

	return result, nil
}
