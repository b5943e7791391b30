package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/sales-pipeline-api/infrastructure/exporter"
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-pipeline-api/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline-api/pkg/log"
)

// parseDashboardQuery lê month (yyyy-mm), trend_months e assignee_id da query string
func parseDashboardQuery(r *http.Request) (dashboarding.Query, error) {
	var query dashboarding.Query
	params := r.URL.Query()

	if value := params.Get("month"); value != "" {
		month, err := domain.ParseMonth(value)
		if err != nil {
			return query, err
		}
		query.Month = month
	}

	if value := params.Get("trend_months"); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return query, fmt.Errorf("trend_months inválido %q: use um inteiro positivo", value)
		}
		query.TrendMonths = n
	}

	query.AssigneeID = params.Get("assignee_id")

	return query, nil
}

// GetDashboard retorna o dashboard agregado do mês
func GetDashboard(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseDashboardQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		logger := log.ForContext(r.Context()).WithFields(log.Fields{
			"month":        query.Month.String(),
			"trend_months": query.TrendMonths,
			"user_id":      query.AssigneeID,
		})
		logger.Info("dashboard: montando dashboard")

		dashboard, err := service.GetDashboard(r.Context(), query)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		logger.WithField("total_deals", dashboard.TotalDeals).Info("dashboard: dashboard gerado com sucesso")
		writeJSON(w, r, http.StatusOK, dashboard)
	}
}

// ExportDashboard retorna o dashboard do mês como planilha XLSX
func ExportDashboard(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseDashboardQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		content, err := service.ExportDashboard(r.Context(), query)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		month := query.Month
		if month.IsZero() {
			month = domain.NewMonth(time.Now())
		}

		w.Header().Set("Content-Type", exporter.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.FileName(month)))
		w.Header().Set("Content-Length", strconv.Itoa(len(content)))
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(content); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("dashboard-export: erro ao enviar planilha")
		}
	}
}

// GetDashboardPeriods retorna os meses com snapshot persistido
func GetDashboardPeriods(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		periods, err := service.GetAvailablePeriods(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, periods)
	}
}
