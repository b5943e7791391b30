package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/sales-pipeline-api/internal/domain"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/targeting"
	"github.com/vfg2006/sales-pipeline-api/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline-api/pkg/log"
)

func parseOptionalMonth(value string) (domain.Month, error) {
	if value == "" {
		return domain.Month{}, nil
	}
	return domain.ParseMonth(value)
}

// ListTargets lista as metas mensais da organização entre from e to
func ListTargets(service targeting.Targeter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := parseOptionalMonth(r.URL.Query().Get("from"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		to, err := parseOptionalMonth(r.URL.Query().Get("to"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		targets, err := service.ListTargets(r.Context(), from, to)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		if targets == nil {
			targets = []domain.MonthlyTarget{}
		}
		writeJSON(w, r, http.StatusOK, targets)
	}
}

// UpsertTarget cria ou substitui a meta da organização do mês informado na rota
func UpsertTarget(service targeting.Targeter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := httprouter.ParamsFromContext(r.Context()).ByName("month")
		if value == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "mês da meta é obrigatório", nil)
			return
		}

		month, err := domain.ParseMonth(value)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		var req domain.UpsertTargetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		target, err := service.UpsertTarget(r.Context(), month, req.SalesTarget, req.ProfitTarget)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithField("month", month.String()).Info("targets: meta atualizada")
		writeJSON(w, r, http.StatusOK, target)
	}
}
