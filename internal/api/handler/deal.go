package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/sales-pipeline-api/infrastructure/exporter"
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/dealing"
	"github.com/vfg2006/sales-pipeline-api/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline-api/pkg/log"
)

// parseDealQuery lê status, category, assignee_id, search e include_deleted da query string
func parseDealQuery(r *http.Request) (dealing.Query, error) {
	params := r.URL.Query()
	query := dealing.Query{
		Category:   params.Get("category"),
		AssigneeID: params.Get("assignee_id"),
		Search:     params.Get("search"),
	}

	if value := params.Get("status"); value != "" {
		status, err := domain.ParseDealStatus(value)
		if err != nil {
			return query, err
		}
		query.Status = status
	}

	if value := params.Get("include_deleted"); value != "" {
		includeDeleted, err := strconv.ParseBool(value)
		if err != nil {
			return query, fmt.Errorf("include_deleted inválido %q: use true ou false", value)
		}
		query.IncludeDeleted = includeDeleted
	}

	return query, nil
}

// ListDeals lista os negócios com os filtros da query string
func ListDeals(service dealing.Dealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseDealQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		deals, err := service.ListDeals(r.Context(), query)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		if deals == nil {
			deals = []domain.Deal{}
		}

		writeJSON(w, r, http.StatusOK, deals)
	}
}

// ExportDeals retorna os negócios filtrados como planilha XLSX
func ExportDeals(service dealing.Dealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseDealQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		content, err := service.ExportDeals(r.Context(), query)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", exporter.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.DealsFileName(time.Now())))
		w.Header().Set("Content-Length", strconv.Itoa(len(content)))
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(content); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("deals-export: erro ao enviar planilha")
		}
	}
}
