package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

var (
	june2024  = domain.Month{Year: 2024, Month: time.June}
	may2024   = domain.Month{Year: 2024, Month: time.May}
	march2024 = domain.Month{Year: 2024, Month: time.March}
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func strPtr(s string) *string {
	return &s
}

func datePtr(year int, month time.Month, day int) *time.Time {
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &date
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, actual.Equal(dec(expected)), "esperado %s, obtido %s %v", expected, actual.String(), msgAndArgs)
}

// dealOption ajusta um negócio de teste
type dealOption func(*domain.Deal)

func newDeal(id string, status domain.DealStatus, sales string, opts ...dealOption) domain.Deal {
	deal := domain.Deal{
		ID:          id,
		CompanyName: "Empresa " + id,
		Status:      status,
		SalesAmount: dec(sales),
		GrossProfit: decimal.Zero,
		Assignee:    domain.UserRef{ID: "u1", Name: "Ana"},
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&deal)
	}
	return deal
}

func withProfit(profit string) dealOption {
	return func(d *domain.Deal) { d.GrossProfit = dec(profit) }
}

func withProbability(p int) dealOption {
	return func(d *domain.Deal) { d.Probability = p }
}

func bookedIn(month domain.Month, day int) dealOption {
	return func(d *domain.Deal) { d.ExpectedBookingMonth = datePtr(month.Year, month.Month, day) }
}

func withAssignee(id, name string) dealOption {
	return func(d *domain.Deal) { d.Assignee = domain.UserRef{ID: id, Name: name} }
}

func withCategory(category string) dealOption {
	return func(d *domain.Deal) { d.Category = strPtr(category) }
}

func deleted() dealOption {
	return func(d *domain.Deal) { d.DeletedAt = datePtr(2024, time.June, 20) }
}

func orgTarget(month domain.Month, sales, profit string) domain.MonthlyTarget {
	return domain.MonthlyTarget{
		ID:           "t-" + month.String(),
		Month:        month,
		SalesTarget:  dec(sales),
		ProfitTarget: dec(profit),
	}
}

func userTarget(userID string, month domain.Month, sales, profit string) domain.MonthlyTarget {
	target := orgTarget(month, sales, profit)
	target.ID = "t-" + userID + "-" + month.String()
	target.UserID = strPtr(userID)
	return target
}
