package analytics

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Actuals são os valores realizados (negócios ganhos faturados no mês)
type Actuals struct {
	Sales  decimal.Decimal
	Profit decimal.Decimal
}

// UserDirectory resolve o nome de exibição de um usuário pelo ID
type UserDirectory map[string]string

func NewUserDirectory(users []domain.UserRef) UserDirectory {
	directory := make(UserDirectory, len(users))
	for _, user := range users {
		if user.ID != "" && user.Name != "" {
			directory[user.ID] = user.Name
		}
	}
	return directory
}

func SumActuals(deals []domain.Deal, month domain.Month) Actuals {
	initial := Actuals{Sales: decimal.Zero, Profit: decimal.Zero}

	return Fold(DealsWonInMonth(deals, month), initial, func(acc Actuals, deal domain.Deal) Actuals {
		return Actuals{
			Sales:  acc.Sales.Add(deal.SalesAmount),
			Profit: acc.Profit.Add(deal.GrossProfit),
		}
	})
}

// Achievement retorna actual/target*100 sem arredondamento. Meta zero ou negativa resulta em 0.
func Achievement(actual, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}

	ratio, _ := actual.Mul(hundred).Div(target).Float64()
	return ratio
}

// Forecast soma o valor ponderado pela probabilidade dos negócios ainda abertos
func Forecast(deals []domain.Deal) decimal.Decimal {
	return Fold(DealsOpenForForecast(deals), decimal.Zero, func(acc decimal.Decimal, deal domain.Deal) decimal.Decimal {
		return acc.Add(deal.WeightedAmount())
	})
}

// StatusDistribution retorna exatamente um bucket por status da enumeração, na ordem do funil.
// Um status fora da enumeração retorna *ValidationError
func StatusDistribution(deals []domain.Deal) ([]domain.StatusBucket, error) {
	for _, deal := range deals {
		if !deal.Status.Valid() {
			return nil, &ValidationError{DealID: deal.ID, Field: "status", Constraint: ConstraintKnownStatus, Value: deal.Status}
		}
	}

	seed := Fold(domain.AllDealStatuses(), NewGrouping[domain.DealStatus, domain.StatusBucket](),
		func(g Grouping[domain.DealStatus, domain.StatusBucket], status domain.DealStatus) Grouping[domain.DealStatus, domain.StatusBucket] {
			return g.With(status, func(domain.StatusBucket, bool) domain.StatusBucket {
				return domain.StatusBucket{Status: status, Amount: decimal.Zero}
			})
		})

	grouped := Fold(deals, seed, func(g Grouping[domain.DealStatus, domain.StatusBucket], deal domain.Deal) Grouping[domain.DealStatus, domain.StatusBucket] {
		return g.With(deal.Status, func(bucket domain.StatusBucket, _ bool) domain.StatusBucket {
			return domain.StatusBucket{
				Status: bucket.Status,
				Count:  bucket.Count + 1,
				Amount: bucket.Amount.Add(deal.SalesAmount),
			}
		})
	})

	buckets := grouped.Values()
	ensureStatusCoverage(buckets)

	return buckets, nil
}

// ensureStatusCoverage garante que a distribuição cobre toda a enumeração, na ordem canônica
func ensureStatusCoverage(buckets []domain.StatusBucket) {
	statuses := domain.AllDealStatuses()
	if len(buckets) != len(statuses) {
		panic(fmt.Sprintf("analytics: distribuição com %d status, esperado %d", len(buckets), len(statuses)))
	}

	for i, status := range statuses {
		if buckets[i].Status != status {
			panic(fmt.Sprintf("analytics: status %q ausente da distribuição", status))
		}
	}
}

// AssigneeRollup agrupa os negócios ganhos por responsável, na ordem da primeira ocorrência.
// Responsáveis não resolvidos caem no bucket "unknown".
func AssigneeRollup(deals []domain.Deal, users UserDirectory) []domain.AssigneeRollup {
	grouped := Fold(DealsByStatus(deals, domain.DealStatusWon), NewGrouping[string, domain.AssigneeRollup](),
		func(g Grouping[string, domain.AssigneeRollup], deal domain.Deal) Grouping[string, domain.AssigneeRollup] {
			userID, userName := resolveAssignee(deal.Assignee, users)

			return g.With(userID, func(rollup domain.AssigneeRollup, exists bool) domain.AssigneeRollup {
				if !exists {
					rollup = domain.AssigneeRollup{
						UserID:    userID,
						UserName:  userName,
						SalesSum:  decimal.Zero,
						ProfitSum: decimal.Zero,
					}
				}

				return domain.AssigneeRollup{
					UserID:    rollup.UserID,
					UserName:  rollup.UserName,
					SalesSum:  rollup.SalesSum.Add(deal.SalesAmount),
					ProfitSum: rollup.ProfitSum.Add(deal.GrossProfit),
					DealCount: rollup.DealCount + 1,
				}
			})
		})

	return grouped.Values()
}

// resolveAssignee prioriza o nome do diretório e depois o nome já vinculado ao negócio
func resolveAssignee(ref domain.UserRef, users UserDirectory) (string, string) {
	if ref.ID == "" {
		return domain.UnknownAssigneeID, domain.UnknownAssigneeName
	}

	name := users[ref.ID]
	if name == "" {
		name = ref.Name
	}

	if name == "" {
		return domain.UnknownAssigneeID, domain.UnknownAssigneeName
	}

	return ref.ID, name
}

// CategoryDistribution soma o valor de venda dos negócios ganhos por categoria
func CategoryDistribution(deals []domain.Deal) []domain.CategoryBucket {
	grouped := Fold(DealsByStatus(deals, domain.DealStatusWon), NewGrouping[string, domain.CategoryBucket](),
		func(g Grouping[string, domain.CategoryBucket], deal domain.Deal) Grouping[string, domain.CategoryBucket] {
			category := categoryOf(deal)

			return g.With(category, func(bucket domain.CategoryBucket, exists bool) domain.CategoryBucket {
				if !exists {
					bucket = domain.CategoryBucket{Category: category, Amount: decimal.Zero}
				}
				return domain.CategoryBucket{
					Category: bucket.Category,
					Amount:   bucket.Amount.Add(deal.SalesAmount),
				}
			})
		})

	return grouped.Values()
}

func categoryOf(deal domain.Deal) string {
	if deal.Category == nil {
		return domain.UncategorizedLabel
	}

	category := strings.TrimSpace(*deal.Category)
	if category == "" {
		return domain.UncategorizedLabel
	}

	return category
}
