package analytics

import (
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

// Input é o snapshot em memória consumido pelo Assemble
type Input struct {
	Deals          []domain.Deal
	Targets        []domain.MonthlyTarget
	Users          []domain.UserRef
	ReferenceMonth domain.Month
	// TrendMonths <= 0 usa domain.DefaultTrendMonths
	TrendMonths int
	// AssigneeID restringe o dashboard aos negócios e metas de um responsável
	AssigneeID string
}

// Assemble valida a entrada e monta o dashboard do mês de referência.
// Não faz I/O e não guarda estado: entradas idênticas produzem o mesmo resultado.
func Assemble(input Input) (*domain.Dashboard, error) {
	if input.ReferenceMonth.IsZero() {
		return nil, ErrReferenceMonthRequired
	}

	if err := ValidateDeals(input.Deals); err != nil {
		return nil, err
	}

	deals := ActiveDeals(input.Deals)
	if input.AssigneeID != "" {
		deals = DealsByAssignee(deals, input.AssigneeID)
	}

	month := input.ReferenceMonth
	targets := IndexTargets(input.Targets, input.AssigneeID)
	actuals := SumActuals(deals, month)
	salesTarget := targets.Sales(month)
	profitTarget := targets.Profit(month)

	booked := DealsWonInMonth(deals, month)

	statuses, err := StatusDistribution(deals)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		ReferenceMonth:     month,
		SalesActual:        actuals.Sales,
		ProfitActual:       actuals.Profit,
		SalesTarget:        salesTarget,
		ProfitTarget:       profitTarget,
		SalesAchievement:   Achievement(actuals.Sales, salesTarget),
		ProfitAchievement:  Achievement(actuals.Profit, profitTarget),
		Forecast:           Forecast(deals),
		TotalDeals:         len(deals),
		StatusDistribution: statuses,
		Assignees:          AssigneeRollup(booked, NewUserDirectory(input.Users)),
		Categories:         CategoryDistribution(booked),
		Trend:              BuildTrend(deals, targets, month, input.TrendMonths),
	}, nil
}
