package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/sales-pipeline-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/dealing"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/targeting"
	"github.com/vfg2006/sales-pipeline-api/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("erro ao codificar resposta")
	}
}

// writeServiceError traduz os erros dos casos de uso para o erro padronizado da API.
// Erros de servidor não expõem a causa ao cliente
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	var dashErr *dashboarding.DashboardError
	if errors.As(err, &dashErr) {
		logger = logger.WithField("month", dashErr.Month)
		if apiErrors.StatusFor(dashErr.Code) >= http.StatusInternalServerError {
			logger.Error("dashboard: erro ao processar requisição")
			apiErrors.WriteError(w, dashErr.Code, dashErr.Err.Error(), nil)
			return
		}
		logger.Warn("dashboard: requisição rejeitada")
		apiErrors.WriteError(w, dashErr.Code, dashErr.Err.Error(), dashErr.Details)
		return
	}

	var targetErr *targeting.TargetError
	if errors.As(err, &targetErr) {
		logger = logger.WithField("month", targetErr.Month)
		if apiErrors.StatusFor(targetErr.Code) >= http.StatusInternalServerError {
			logger.Error("targets: erro ao processar requisição")
			apiErrors.WriteError(w, targetErr.Code, targetErr.Err.Error(), nil)
			return
		}
		logger.Warn("targets: requisição rejeitada")
		apiErrors.WriteError(w, targetErr.Code, targetErr.Error(), nil)
		return
	}

	var dealErr *dealing.DealError
	if errors.As(err, &dealErr) {
		if apiErrors.StatusFor(dealErr.Code) >= http.StatusInternalServerError {
			logger.Error("deals: erro ao processar requisição")
			apiErrors.WriteError(w, dealErr.Code, dealErr.Err.Error(), nil)
			return
		}
		logger.Warn("deals: requisição rejeitada")
		apiErrors.WriteError(w, dealErr.Code, dealErr.Error(), nil)
		return
	}

	logger.Error("erro inesperado")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "erro interno no servidor", nil)
}
