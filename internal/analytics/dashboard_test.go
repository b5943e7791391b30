package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

func TestAssemble(t *testing.T) {
	tests := []struct {
		name     string
		input    Input
		wantErr  error
		validate func(t *testing.T, dashboard *domain.Dashboard)
	}{
		{
			name: "Um negócio ganho contra a meta do mês",
			input: Input{
				Deals: []domain.Deal{
					newDeal("d1", domain.DealStatusWon, "1000000", withProfit("300000"), bookedIn(june2024, 1)),
				},
				Targets:        []domain.MonthlyTarget{orgTarget(june2024, "1500000", "400000")},
				ReferenceMonth: june2024,
			},
			validate: func(t *testing.T, dashboard *domain.Dashboard) {
				assertDecimal(t, "1000000", dashboard.SalesActual)
				assertDecimal(t, "300000", dashboard.ProfitActual)
				assertDecimal(t, "1500000", dashboard.SalesTarget)
				assertDecimal(t, "400000", dashboard.ProfitTarget)
				assert.InDelta(t, 66.67, dashboard.SalesAchievement, 0.01)
				assert.Equal(t, 75.0, dashboard.ProfitAchievement)
				assert.Equal(t, 1, dashboard.TotalDeals)

				require.Len(t, dashboard.Assignees, 1)
				assertDecimal(t, "1000000", dashboard.Assignees[0].SalesSum)
				require.Len(t, dashboard.Categories, 1)
				assert.Equal(t, domain.UncategorizedLabel, dashboard.Categories[0].Category)
			},
		},
		{
			name:  "Sem negócios e sem metas tudo é zero",
			input: Input{ReferenceMonth: june2024},
			validate: func(t *testing.T, dashboard *domain.Dashboard) {
				assertDecimal(t, "0", dashboard.SalesActual)
				assertDecimal(t, "0", dashboard.ProfitActual)
				assertDecimal(t, "0", dashboard.SalesTarget)
				assertDecimal(t, "0", dashboard.ProfitTarget)
				assertDecimal(t, "0", dashboard.Forecast)
				assert.Zero(t, dashboard.SalesAchievement)
				assert.Zero(t, dashboard.ProfitAchievement)
				assert.Zero(t, dashboard.TotalDeals)
				assert.Empty(t, dashboard.Assignees)
				assert.Empty(t, dashboard.Categories)

				require.Len(t, dashboard.StatusDistribution, 5)
				for _, bucket := range dashboard.StatusDistribution {
					assert.Zero(t, bucket.Count)
				}

				require.Len(t, dashboard.Trend, domain.DefaultTrendMonths)
				for _, point := range dashboard.Trend {
					assertDecimal(t, "0", point.SalesActual)
					assertDecimal(t, "0", point.ProfitActual)
					assertDecimal(t, "0", point.SalesTarget)
				}
			},
		},
		{
			name: "Apenas um lead gera previsão sem realizado",
			input: Input{
				Deals: []domain.Deal{
					newDeal("d1", domain.DealStatusLead, "500000", withProbability(40)),
				},
				ReferenceMonth: june2024,
				TrendMonths:    3,
			},
			validate: func(t *testing.T, dashboard *domain.Dashboard) {
				assertDecimal(t, "200000", dashboard.Forecast)
				assertDecimal(t, "0", dashboard.SalesActual)
				assert.Len(t, dashboard.Trend, 3)
			},
		},
		{
			name: "Negócios excluídos não entram em nenhuma agregação",
			input: Input{
				Deals: []domain.Deal{
					newDeal("d1", domain.DealStatusWon, "100", bookedIn(june2024, 1)),
					newDeal("d2", domain.DealStatusWon, "900", bookedIn(june2024, 1), deleted()),
					newDeal("d3", domain.DealStatusLead, "900", withProbability(50), deleted()),
				},
				ReferenceMonth: june2024,
			},
			validate: func(t *testing.T, dashboard *domain.Dashboard) {
				assertDecimal(t, "100", dashboard.SalesActual)
				assertDecimal(t, "0", dashboard.Forecast)
				assert.Equal(t, 1, dashboard.TotalDeals)
				assertDecimal(t, "100", dashboard.Trend[len(dashboard.Trend)-1].SalesActual)
			},
		},
		{
			name: "Dashboard de um responsável usa as metas do usuário",
			input: Input{
				Deals: []domain.Deal{
					newDeal("d1", domain.DealStatusWon, "100", bookedIn(june2024, 1), withAssignee("u1", "Ana")),
					newDeal("d2", domain.DealStatusWon, "300", bookedIn(june2024, 1), withAssignee("u2", "Bruno")),
				},
				Targets: []domain.MonthlyTarget{
					orgTarget(june2024, "1000", "100"),
					userTarget("u1", june2024, "200", "20"),
				},
				ReferenceMonth: june2024,
				AssigneeID:     "u1",
			},
			validate: func(t *testing.T, dashboard *domain.Dashboard) {
				assertDecimal(t, "100", dashboard.SalesActual)
				assertDecimal(t, "200", dashboard.SalesTarget)
				assert.Equal(t, 50.0, dashboard.SalesAchievement)
				assert.Equal(t, 1, dashboard.TotalDeals)
				require.Len(t, dashboard.Assignees, 1)
				assert.Equal(t, "u1", dashboard.Assignees[0].UserID)
			},
		},
		{
			name: "Negócio ganho sem identificador é agregado",
			input: Input{
				Deals: []domain.Deal{
					newDeal("", domain.DealStatusWon, "1000000", withProfit("300000"), bookedIn(june2024, 1)),
				},
				Targets:        []domain.MonthlyTarget{orgTarget(june2024, "1500000", "400000")},
				ReferenceMonth: june2024,
			},
			validate: func(t *testing.T, dashboard *domain.Dashboard) {
				assertDecimal(t, "1000000", dashboard.SalesActual)
				assert.Equal(t, 75.0, dashboard.ProfitAchievement)
			},
		},
		{
			name: "Negócio excluído malformado não rejeita a chamada",
			input: Input{
				Deals: []domain.Deal{
					newDeal("d1", domain.DealStatusWon, "100", bookedIn(june2024, 1)),
					newDeal("d2", domain.DealStatus("archived"), "-1", deleted()),
				},
				ReferenceMonth: june2024,
			},
			validate: func(t *testing.T, dashboard *domain.Dashboard) {
				assertDecimal(t, "100", dashboard.SalesActual)
				assert.Equal(t, 1, dashboard.TotalDeals)
			},
		},
		{
			name:    "Mês de referência obrigatório",
			input:   Input{},
			wantErr: ErrReferenceMonthRequired,
		},
		{
			name: "Negócio inválido rejeita a chamada inteira",
			input: Input{
				Deals: []domain.Deal{
					newDeal("d1", domain.DealStatusWon, "100", bookedIn(june2024, 1)),
					newDeal("d2", domain.DealStatusLead, "-1"),
				},
				ReferenceMonth: june2024,
			},
			wantErr: ErrInvalidDeal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dashboard, err := Assemble(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, dashboard)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.ReferenceMonth, dashboard.ReferenceMonth)
			tt.validate(t, dashboard)
		})
	}
}

func TestAssemble_IsIdempotent(t *testing.T) {
	input := Input{
		Deals: []domain.Deal{
			newDeal("d1", domain.DealStatusWon, "1234.56", withProfit("200"), bookedIn(june2024, 10), withCategory("Hardware")),
			newDeal("d2", domain.DealStatusNegotiation, "800", withProbability(35), withAssignee("u2", "Bruno")),
			newDeal("d3", domain.DealStatusWon, "99.99", withProfit("-5"), bookedIn(may2024, 2), withAssignee("u3", "")),
			newDeal("d4", domain.DealStatusLost, "10"),
		},
		Targets: []domain.MonthlyTarget{
			orgTarget(june2024, "3000", "600"),
			orgTarget(may2024, "100", "10"),
		},
		Users:          []domain.UserRef{{ID: "u1", Name: "Ana"}},
		ReferenceMonth: june2024,
		TrendMonths:    12,
	}

	first, err := Assemble(input)
	require.NoError(t, err)
	second, err := Assemble(input)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, string(firstJSON), string(secondJSON))
}
