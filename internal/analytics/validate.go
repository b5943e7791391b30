package analytics

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

var (
	ErrInvalidDeal            = errors.New("negócio inválido")
	ErrReferenceMonthRequired = errors.New("mês de referência é obrigatório")
)

// Restrições verificadas nos negócios de entrada
const (
	ConstraintNonNegative  = "non_negative"
	ConstraintPercentRange = "between_0_and_100"
	ConstraintKnownStatus  = "known_status"
	ConstraintValidMonth   = "valid_month"
)

// ValidationError identifica o negócio, o campo e a restrição violada
type ValidationError struct {
	DealID     string `json:"deal_id"`
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Value      any    `json:"value"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("negócio %q: campo %s viola a restrição %s (valor: %v)", e.DealID, e.Field, e.Constraint, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidDeal
}

// ValidateDeal verifica as pré-condições de um negócio antes da agregação
func ValidateDeal(deal domain.Deal) error {
	switch {
	case !deal.Status.Valid():
		return &ValidationError{DealID: deal.ID, Field: "status", Constraint: ConstraintKnownStatus, Value: deal.Status}
	case deal.SalesAmount.IsNegative():
		return &ValidationError{DealID: deal.ID, Field: "sales_amount", Constraint: ConstraintNonNegative, Value: deal.SalesAmount.String()}
	case deal.Probability < 0 || deal.Probability > 100:
		return &ValidationError{DealID: deal.ID, Field: "probability", Constraint: ConstraintPercentRange, Value: deal.Probability}
	case deal.ExpectedBookingMonth != nil && deal.ExpectedBookingMonth.IsZero():
		return &ValidationError{DealID: deal.ID, Field: "expected_booking_month", Constraint: ConstraintValidMonth, Value: deal.ExpectedBookingMonth}
	case deal.ExpectedOrderMonth != nil && deal.ExpectedOrderMonth.IsZero():
		return &ValidationError{DealID: deal.ID, Field: "expected_order_month", Constraint: ConstraintValidMonth, Value: deal.ExpectedOrderMonth}
	}

	return nil
}

// ValidateDeals rejeita a entrada inteira no primeiro negócio ativo inválido.
// Negócios excluídos não entram em nenhuma agregação e não são verificados
func ValidateDeals(deals []domain.Deal) error {
	for i, deal := range deals {
		if deal.IsDeleted() {
			continue
		}
		if err := ValidateDeal(deal); err != nil {
			return errors.Wrapf(err, "registro %d", i)
		}
	}
	return nil
}
