package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

func TestSumActuals(t *testing.T) {
	tests := []struct {
		name       string
		deals      []domain.Deal
		wantSales  string
		wantProfit string
	}{
		{
			name:       "Sem negócios retorna zero",
			wantSales:  "0",
			wantProfit: "0",
		},
		{
			name: "Soma apenas ganhos faturados no mês",
			deals: []domain.Deal{
				newDeal("d1", domain.DealStatusWon, "1000000", withProfit("300000"), bookedIn(june2024, 15)),
				newDeal("d2", domain.DealStatusWon, "500", withProfit("-50"), bookedIn(june2024, 30)),
				newDeal("d3", domain.DealStatusWon, "999", withProfit("1"), bookedIn(may2024, 15)),
				newDeal("d4", domain.DealStatusNegotiation, "777", bookedIn(june2024, 1)),
				newDeal("d5", domain.DealStatusWon, "888"),
			},
			wantSales:  "1000500",
			wantProfit: "299950",
		},
		{
			name: "Somas decimais sem deriva de ponto flutuante",
			deals: []domain.Deal{
				newDeal("d1", domain.DealStatusWon, "0.1", withProfit("0.1"), bookedIn(june2024, 1)),
				newDeal("d2", domain.DealStatusWon, "0.2", withProfit("0.2"), bookedIn(june2024, 2)),
			},
			wantSales:  "0.3",
			wantProfit: "0.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actuals := SumActuals(tt.deals, june2024)
			assertDecimal(t, tt.wantSales, actuals.Sales)
			assertDecimal(t, tt.wantProfit, actuals.Profit)
		})
	}
}

func TestAchievement(t *testing.T) {
	tests := []struct {
		name   string
		actual string
		target string
		want   float64
	}{
		{name: "Meta zero com realizado positivo", actual: "1000", target: "0", want: 0},
		{name: "Meta zero com realizado zero", actual: "0", target: "0", want: 0},
		{name: "Meta negativa", actual: "1000", target: "-10", want: 0},
		{name: "Meta batida pela metade", actual: "500", target: "1000", want: 50},
		{name: "Meta superada", actual: "3000", target: "1000", want: 300},
		{name: "Lucro negativo", actual: "-250", target: "1000", want: -25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Achievement(dec(tt.actual), dec(tt.target)))
		})
	}
}

func TestAchievement_IsNotRounded(t *testing.T) {
	got := Achievement(dec("1000000"), dec("1500000"))

	assert.InDelta(t, 66.6666666666, got, 1e-9)
	assert.NotEqual(t, 66.67, got)
}

func TestForecast(t *testing.T) {
	deals := []domain.Deal{
		newDeal("lead", domain.DealStatusLead, "500000", withProbability(40)),
		newDeal("neg", domain.DealStatusNegotiation, "1000", withProbability(15)),
		newDeal("won", domain.DealStatusWon, "900000", withProbability(100), bookedIn(june2024, 1)),
		newDeal("lost", domain.DealStatusLost, "900000", withProbability(90)),
		newDeal("zero", domain.DealStatusProposal, "333", withProbability(0)),
	}

	assertDecimal(t, "200150", Forecast(deals))
	assertDecimal(t, "0", Forecast(nil))
}

func TestStatusDistribution(t *testing.T) {
	t.Run("Sem negócios todos os status aparecem zerados", func(t *testing.T) {
		buckets, err := StatusDistribution(nil)
		require.NoError(t, err)

		require.Len(t, buckets, len(domain.AllDealStatuses()))
		for i, status := range domain.AllDealStatuses() {
			assert.Equal(t, status, buckets[i].Status)
			assert.Equal(t, 0, buckets[i].Count)
			assertDecimal(t, "0", buckets[i].Amount)
		}
	})

	t.Run("Contagens somam o total de negócios ativos", func(t *testing.T) {
		deals := ActiveDeals([]domain.Deal{
			newDeal("d1", domain.DealStatusWon, "100"),
			newDeal("d2", domain.DealStatusLead, "10"),
			newDeal("d3", domain.DealStatusWon, "200"),
			newDeal("d4", domain.DealStatusLost, "50", deleted()),
			newDeal("d5", domain.DealStatusProposal, "5"),
		})

		buckets, err := StatusDistribution(deals)
		require.NoError(t, err)
		require.Len(t, buckets, 5)

		total := 0
		for _, bucket := range buckets {
			assert.GreaterOrEqual(t, bucket.Count, 0)
			total += bucket.Count
		}
		assert.Equal(t, len(deals), total)

		assert.Equal(t, domain.DealStatusLead, buckets[0].Status)
		assert.Equal(t, 1, buckets[0].Count)
		assertDecimal(t, "10", buckets[0].Amount)

		assert.Equal(t, domain.DealStatusWon, buckets[3].Status)
		assert.Equal(t, 2, buckets[3].Count)
		assertDecimal(t, "300", buckets[3].Amount)

		assert.Equal(t, domain.DealStatusLost, buckets[4].Status)
		assert.Equal(t, 0, buckets[4].Count)
	})

	t.Run("Status fora da enumeração é violação de pré-condição", func(t *testing.T) {
		deals := []domain.Deal{newDeal("d1", domain.DealStatus("archived"), "1")}

		buckets, err := StatusDistribution(deals)
		assert.Nil(t, buckets)
		assert.ErrorIs(t, err, ErrInvalidDeal)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "d1", validationErr.DealID)
		assert.Equal(t, ConstraintKnownStatus, validationErr.Constraint)
	})
}

func TestAssigneeRollup(t *testing.T) {
	tests := []struct {
		name     string
		deals    []domain.Deal
		users    []domain.UserRef
		validate func(t *testing.T, rollup []domain.AssigneeRollup)
	}{
		{
			name: "Agrupa ganhos na ordem da primeira ocorrência",
			deals: []domain.Deal{
				newDeal("d1", domain.DealStatusWon, "100", withProfit("10"), withAssignee("u2", "Bruno")),
				newDeal("d2", domain.DealStatusWon, "200", withProfit("20"), withAssignee("u1", "Ana")),
				newDeal("d3", domain.DealStatusLead, "999", withAssignee("u3", "Carla")),
				newDeal("d4", domain.DealStatusWon, "300", withProfit("30"), withAssignee("u2", "Bruno")),
			},
			validate: func(t *testing.T, rollup []domain.AssigneeRollup) {
				require.Len(t, rollup, 2)

				assert.Equal(t, "u2", rollup[0].UserID)
				assert.Equal(t, "Bruno", rollup[0].UserName)
				assertDecimal(t, "400", rollup[0].SalesSum)
				assertDecimal(t, "40", rollup[0].ProfitSum)
				assert.Equal(t, 2, rollup[0].DealCount)

				assert.Equal(t, "u1", rollup[1].UserID)
				assertDecimal(t, "200", rollup[1].SalesSum)
				assert.Equal(t, 1, rollup[1].DealCount)
			},
		},
		{
			name: "Responsável não resolvido vai para o bucket unknown",
			deals: []domain.Deal{
				newDeal("d1", domain.DealStatusWon, "100", withAssignee("", "")),
				newDeal("d2", domain.DealStatusWon, "50", withAssignee("u9", "")),
				newDeal("d3", domain.DealStatusWon, "25", withAssignee("u1", "")),
			},
			users: []domain.UserRef{{ID: "u1", Name: "Ana"}},
			validate: func(t *testing.T, rollup []domain.AssigneeRollup) {
				require.Len(t, rollup, 2)

				assert.Equal(t, domain.UnknownAssigneeID, rollup[0].UserID)
				assert.Equal(t, domain.UnknownAssigneeName, rollup[0].UserName)
				assertDecimal(t, "150", rollup[0].SalesSum)
				assert.Equal(t, 2, rollup[0].DealCount)

				assert.Equal(t, "u1", rollup[1].UserID)
				assert.Equal(t, "Ana", rollup[1].UserName)
			},
		},
		{
			name: "Nome do diretório prevalece sobre o nome vinculado",
			deals: []domain.Deal{
				newDeal("d1", domain.DealStatusWon, "100", withAssignee("u1", "ana.antiga")),
			},
			users: []domain.UserRef{{ID: "u1", Name: "Ana Souza"}},
			validate: func(t *testing.T, rollup []domain.AssigneeRollup) {
				require.Len(t, rollup, 1)
				assert.Equal(t, "Ana Souza", rollup[0].UserName)
			},
		},
		{
			name: "Sem ganhos retorna vazio",
			deals: []domain.Deal{
				newDeal("d1", domain.DealStatusLead, "100"),
			},
			validate: func(t *testing.T, rollup []domain.AssigneeRollup) {
				assert.Empty(t, rollup)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, AssigneeRollup(tt.deals, NewUserDirectory(tt.users)))
		})
	}
}

func TestAssigneeRollup_SumMatchesSalesActual(t *testing.T) {
	deals := []domain.Deal{
		newDeal("d1", domain.DealStatusWon, "120.50", bookedIn(june2024, 3), withAssignee("u1", "Ana")),
		newDeal("d2", domain.DealStatusWon, "80", bookedIn(june2024, 9), withAssignee("", "")),
		newDeal("d3", domain.DealStatusWon, "42", bookedIn(june2024, 28), withAssignee("u2", "Bruno")),
		newDeal("d4", domain.DealStatusWon, "1000", bookedIn(may2024, 28), withAssignee("u2", "Bruno")),
		newDeal("d5", domain.DealStatusWon, "7", bookedIn(june2024, 1), deleted()),
	}

	active := ActiveDeals(deals)
	rollup := AssigneeRollup(DealsWonInMonth(active, june2024), nil)

	total := decimal.Zero
	for _, group := range rollup {
		total = total.Add(group.SalesSum)
	}

	assert.True(t, total.Equal(SumActuals(active, june2024).Sales))
	assertDecimal(t, "242.5", total)
}

func TestCategoryDistribution(t *testing.T) {
	deals := []domain.Deal{
		newDeal("d1", domain.DealStatusWon, "100", withCategory("Hardware")),
		newDeal("d2", domain.DealStatusWon, "50"),
		newDeal("d3", domain.DealStatusWon, "25", withCategory("   ")),
		newDeal("d4", domain.DealStatusLead, "999", withCategory("Software")),
		newDeal("d5", domain.DealStatusWon, "10", withCategory(" Hardware ")),
		newDeal("d6", domain.DealStatusWon, "5", withCategory("Serviços")),
	}

	buckets := CategoryDistribution(deals)
	require.Len(t, buckets, 3)

	assert.Equal(t, "Hardware", buckets[0].Category)
	assertDecimal(t, "110", buckets[0].Amount)

	assert.Equal(t, domain.UncategorizedLabel, buckets[1].Category)
	assertDecimal(t, "75", buckets[1].Amount)

	assert.Equal(t, "Serviços", buckets[2].Category)
	assertDecimal(t, "5", buckets[2].Amount)

	assert.Empty(t, CategoryDistribution(nil))
}
