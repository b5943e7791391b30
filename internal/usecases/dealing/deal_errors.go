package dealing

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStatus = errors.New("invalid deal status")
	ErrFetchDeals    = errors.New("error fetching deals from database")
	ErrExport        = errors.New("error exporting deals")
)

// DealError é um erro com contexto adicional para a listagem de negócios
type DealError struct {
	Err     error
	Code    string
	Details string
}

func (e *DealError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *DealError) Unwrap() error {
	return e.Err
}

func NewDealError(err error, code string, details string) *DealError {
	return &DealError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
