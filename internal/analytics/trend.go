package analytics

import (
	"runtime"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

// TargetIndex indexa as metas de um escopo (organização ou usuário) por mês
type TargetIndex struct {
	targets Grouping[domain.Month, domain.MonthlyTarget]
}

// IndexTargets indexa as metas do escopo informado. userID vazio seleciona as metas da organização.
// Havendo mais de uma meta para o mesmo mês, prevalece a primeira.
func IndexTargets(targets []domain.MonthlyTarget, userID string) TargetIndex {
	grouped := Fold(targets, NewGrouping[domain.Month, domain.MonthlyTarget](),
		func(g Grouping[domain.Month, domain.MonthlyTarget], target domain.MonthlyTarget) Grouping[domain.Month, domain.MonthlyTarget] {
			if !inScope(target, userID) {
				return g
			}
			return g.With(target.Month, func(current domain.MonthlyTarget, exists bool) domain.MonthlyTarget {
				if exists {
					return current
				}
				return target
			})
		})

	return TargetIndex{targets: grouped}
}

func inScope(target domain.MonthlyTarget, userID string) bool {
	if userID == "" {
		return target.IsOrgWide()
	}
	return target.UserID != nil && *target.UserID == userID
}

// Sales retorna a meta de vendas do mês, ou zero quando não há meta cadastrada
func (i TargetIndex) Sales(month domain.Month) decimal.Decimal {
	if target, ok := i.targets.Get(month); ok {
		return target.SalesTarget
	}
	return decimal.Zero
}

// Profit retorna a meta de lucro do mês, ou zero quando não há meta cadastrada
func (i TargetIndex) Profit(month domain.Month) decimal.Decimal {
	if target, ok := i.targets.Get(month); ok {
		return target.ProfitTarget
	}
	return decimal.Zero
}

// TrendWindow retorna os n meses terminados em reference, do mais antigo para o mais recente
func TrendWindow(reference domain.Month, months int) []domain.Month {
	if months <= 0 {
		months = domain.DefaultTrendMonths
	}

	window := make([]domain.Month, months)
	for i := range window {
		window[i] = reference.AddMonths(i - months + 1)
	}
	return window
}

// BuildTrend calcula realizado e meta para cada mês da janela. Os meses são independentes e
// calculados em paralelo; cada resultado é gravado na sua posição, mantendo a ordem cronológica.
func BuildTrend(deals []domain.Deal, targets TargetIndex, reference domain.Month, months int) []domain.TrendPoint {
	active := ActiveDeals(deals)
	window := TrendWindow(reference, months)
	points := make([]domain.TrendPoint, len(window))

	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, month := range window {
		i, month := i, month
		group.Go(func() error {
			actuals := SumActuals(active, month)
			points[i] = domain.TrendPoint{
				Month:        month,
				SalesActual:  actuals.Sales,
				ProfitActual: actuals.Profit,
				SalesTarget:  targets.Sales(month),
			}
			return nil
		})
	}

	// Nenhum mês retorna erro
	_ = group.Wait()

	return points
}
