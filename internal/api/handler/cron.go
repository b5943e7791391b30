package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/sales-pipeline-api/internal/scheduler"
	"github.com/vfg2006/sales-pipeline-api/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline-api/pkg/log"
)

// Tipos de cron job aceitos em /v1/cron/:type/run
const (
	CronJobTypeDashboardSnapshot = scheduler.JobDashboardSnapshot
	CronJobTypeAll               = "all"
)

// SnapshotSyncer é a sincronização de snapshots acionável manualmente
type SnapshotSyncer interface {
	TriggerManualSync(ctx context.Context) error
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron que podem ser executados manualmente
type CronJobServices struct {
	DashboardSnapshotSync SnapshotSyncer
}

// RunCronJob executa manualmente uma cron job
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		logger := log.ForContext(r.Context()).WithField("job", cronType)

		switch cronType {
		case CronJobTypeDashboardSnapshot, CronJobTypeAll:
			if services.DashboardSnapshotSync == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "serviço de snapshots do dashboard não disponível", nil)
				return
			}

			if err := services.DashboardSnapshotSync.TriggerManualSync(r.Context()); err != nil {
				if errors.Is(err, scheduler.ErrSyncInProgress) {
					apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, err.Error(), nil)
					return
				}
				logger.WithError(err).Error("cron: erro ao iniciar job")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "erro ao iniciar cron job", nil)
				return
			}
		case "":
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "tipo de cron job não especificado", nil)
			return
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "tipo de cron job inválido. Valores aceitos: dashboard-snapshot, all", nil)
			return
		}

		logger.Info("cron: job iniciada manualmente")
		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.DashboardSnapshotSync != nil {
			status[CronJobTypeDashboardSnapshot] = services.DashboardSnapshotSync.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
