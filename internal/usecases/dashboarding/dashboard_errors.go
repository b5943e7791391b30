package dashboarding

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto do dashboard
var (
	// Erros de validação
	ErrInvalidTrendMonths = errors.New("invalid trend months")
	ErrInvalidRecord      = errors.New("stored record violates aggregation preconditions")
	ErrAssigneeNotFound   = errors.New("assignee not found")
	ErrSnapshotOpenMonth  = errors.New("snapshots are only built for closed months")

	// Erros de banco de dados
	ErrFetchDeals     = errors.New("error fetching deals from database")
	ErrFetchTargets   = errors.New("error fetching targets from database")
	ErrFetchUsers     = errors.New("error fetching users from database")
	ErrSaveSnapshot   = errors.New("error saving dashboard snapshot")
	ErrFetchSnapshots = errors.New("error fetching dashboard snapshots")

	// Erros de exportação
	ErrExport = errors.New("error exporting dashboard")
)

// DashboardError é um erro com contexto adicional para o dashboard
type DashboardError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Month   string // Mês de referência envolvido (quando aplicável)
	Details any    // Detalhes adicionais
	Cause   error  // Erro de origem
}

// Error implementa a interface error
func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Cause.Error())
	}
	return e.Err.Error()
}

// Unwrap expõe o erro base e o erro de origem para errors.Is e errors.As
func (e *DashboardError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewDashboardError cria um novo DashboardError
func NewDashboardError(err error, code string, month string, cause error) *DashboardError {
	return &DashboardError{
		Err:   err,
		Code:  code,
		Month: month,
		Cause: cause,
	}
}
