package targeting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de metas
var (
	ErrMonthRequired     = errors.New("target month is required")
	ErrNegativeTarget    = errors.New("targets must not be negative")
	ErrInvalidMonthRange = errors.New("invalid month range")
	ErrUpsertTarget      = errors.New("error saving monthly target")
	ErrFetchTargets      = errors.New("error fetching monthly targets")
)

// ErrInvalidateSnapshots indica que a meta foi salva mas os snapshots não foram descartados.
// Repetir o upsert tenta a invalidação de novo
var ErrInvalidateSnapshots = errors.New("error invalidating dashboard snapshots")

// TargetError é um erro com contexto adicional para metas
type TargetError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Month   string // Mês da meta envolvida (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *TargetError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *TargetError) Unwrap() error {
	return e.Err
}

// NewTargetError cria um novo TargetError
func NewTargetError(err error, code string, month string, details string) *TargetError {
	return &TargetError{
		Err:     err,
		Code:    code,
		Month:   month,
		Details: details,
	}
}
