package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/sales-pipeline-api/infrastructure/repository"
	"github.com/vfg2006/sales-pipeline-api/internal/config"
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-pipeline-api/pkg/log"
)

// JobDashboardSnapshot é o nome do job usado nas rotas de cron
const JobDashboardSnapshot = "dashboard-snapshot"

// ErrSyncInProgress indica que já existe uma sincronização em execução
var ErrSyncInProgress = errors.New("sincronização de snapshots já em andamento")

// SyncResult resume uma execução da sincronização
type SyncResult struct {
	Saved   []string `json:"saved"`
	Failed  []string `json:"failed"`
	Deleted int64    `json:"deleted"`
}

// DashboardSnapshotSyncService persiste periodicamente o dashboard dos meses fechados
type DashboardSnapshotSyncService struct {
	scheduler    *gocron.Scheduler
	config       config.DashboardSnapshotSync
	trendMonths  int
	dashboarder  dashboarding.Dashboarder
	snapshotRepo repository.DashboardSnapshotRepository
	now          func() time.Time
	sleep        func(time.Duration)

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          *SyncResult
}

func NewDashboardSnapshotSyncService(
	dashboarder dashboarding.Dashboarder,
	snapshotRepo repository.DashboardSnapshotRepository,
	appConfig *config.Config,
) *DashboardSnapshotSyncService {
	syncConfig := appConfig.DashboardSnapshotSync

	log.L.WithFields(log.Fields{
		"job":              JobDashboardSnapshot,
		"cron_schedule":    syncConfig.CronSchedule,
		"request_delay":    syncConfig.RequestDelay().String(),
		"month_lookback":   syncConfig.MonthLookBack,
		"retention_months": syncConfig.RetentionMonths,
		"sync_enabled":     syncConfig.Enabled,
	}).Info("Configuração do agendador de snapshots do dashboard carregada")

	return &DashboardSnapshotSyncService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       syncConfig,
		trendMonths:  appConfig.Dashboard.TrendMonths,
		dashboarder:  dashboarder,
		snapshotRepo: snapshotRepo,
		now:          time.Now,
		sleep:        time.Sleep,
	}
}

// Start agenda a sincronização e para o agendador quando o contexto é cancelado
func (s *DashboardSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.WithField("job", JobDashboardSnapshot).Info("Sincronização de snapshots desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.Sync(ctx); err != nil && !errors.Is(err, ErrSyncInProgress) {
			log.L.WithError(err).Error("Erro na sincronização agendada de snapshots")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots: %w", err)
	}

	s.scheduler.StartAsync()
	log.L.WithField("job", JobDashboardSnapshot).Infof("Agendador de snapshots iniciado (%s)", s.config.CronSchedule)

	go func() {
		<-ctx.Done()
		log.L.WithField("job", JobDashboardSnapshot).Info("Parando agendador de snapshots")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *DashboardSnapshotSyncService) acquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	return true
}

func (s *DashboardSnapshotSyncService) release(result *SyncResult) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = s.now()
	s.lastResult = result
}

// Sync calcula e persiste os snapshots dos últimos MonthLookBack meses fechados e
// remove os snapshots mais antigos que a retenção configurada.
// Falha em um mês não interrompe os demais
func (s *DashboardSnapshotSyncService) Sync(ctx context.Context) (*SyncResult, error) {
	if !s.acquire() {
		log.L.WithField("job", JobDashboardSnapshot).Info("Sincronização de snapshots já em andamento, ignorando")
		return nil, ErrSyncInProgress
	}

	result := &SyncResult{Saved: []string{}, Failed: []string{}}
	defer s.release(result)

	startTime := s.now()
	current := domain.NewMonth(startTime)

	for i := 1; i <= s.config.MonthLookBack; i++ {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		month := current.AddMonths(-i)
		logger := log.L.WithFields(log.Fields{"job": JobDashboardSnapshot, "period": month.String()})

		if _, err := s.dashboarder.BuildSnapshot(ctx, month, s.trendMonths); err != nil {
			logger.WithError(err).Error("Erro ao calcular snapshot do dashboard")
			result.Failed = append(result.Failed, month.String())
		} else {
			logger.Info("Snapshot do dashboard salvo")
			result.Saved = append(result.Saved, month.String())
		}

		if i < s.config.MonthLookBack {
			s.sleep(s.config.RequestDelay())
		}
	}

	if s.config.RetentionMonths > 0 {
		cutoff := current.AddMonths(-s.config.RetentionMonths)
		deleted, err := s.snapshotRepo.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			log.L.WithError(err).WithField("period", cutoff.String()).Error("Erro ao remover snapshots antigos")
		} else {
			result.Deleted = deleted
		}
	}

	log.L.WithFields(log.Fields{
		"job":      JobDashboardSnapshot,
		"duration": time.Since(startTime).String(),
		"saved":    len(result.Saved),
		"failed":   len(result.Failed),
		"deleted":  result.Deleted,
	}).Info("Sincronização de snapshots concluída")

	return result, nil
}

// TriggerManualSync inicia a sincronização em segundo plano. Retorna ErrSyncInProgress se já houver uma em execução
func (s *DashboardSnapshotSyncService) TriggerManualSync(ctx context.Context) error {
	if s.IsRunning() {
		return ErrSyncInProgress
	}

	log.L.WithField("job", JobDashboardSnapshot).Info("Iniciando sincronização manual de snapshots")
	go func() {
		if _, err := s.Sync(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, ErrSyncInProgress) {
			log.L.WithError(err).Error("Erro na sincronização manual de snapshots")
		}
	}()

	return nil
}

func (s *DashboardSnapshotSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o estado atual da sincronização
func (s *DashboardSnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.Enabled,
		"month_lookback":         s.config.MonthLookBack,
		"retention_months":       s.config.RetentionMonths,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_result":            s.lastResult,
	}
}
