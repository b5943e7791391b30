package exporter

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

func sampleDashboard() *domain.Dashboard {
	june := domain.Month{Year: 2024, Month: time.June}
	return &domain.Dashboard{
		ReferenceMonth:    june,
		SalesActual:       decimal.RequireFromString("1000"),
		SalesTarget:       decimal.RequireFromString("1500"),
		SalesAchievement:  66.666666,
		ProfitActual:      decimal.RequireFromString("300"),
		ProfitTarget:      decimal.Zero,
		ProfitAchievement: 0,
		Forecast:          decimal.RequireFromString("200150"),
		TotalDeals:        3,
		StatusDistribution: []domain.StatusBucket{
			{Status: domain.DealStatusLead, Count: 2, Amount: decimal.RequireFromString("500")},
			{Status: domain.DealStatusWon, Count: 1, Amount: decimal.RequireFromString("1000")},
		},
		Assignees: []domain.AssigneeRollup{
			{UserID: "u1", UserName: "Ana", SalesSum: decimal.RequireFromString("1000"), ProfitSum: decimal.RequireFromString("300"), DealCount: 1},
		},
		Categories: []domain.CategoryBucket{
			{Category: "software", Amount: decimal.RequireFromString("1000")},
		},
		Trend: []domain.TrendPoint{
			{Month: june.AddMonths(-1), SalesActual: decimal.Zero, ProfitActual: decimal.Zero, SalesTarget: decimal.Zero},
			{Month: june, SalesActual: decimal.RequireFromString("1000"), ProfitActual: decimal.RequireFromString("300"), SalesTarget: decimal.RequireFromString("1500")},
		},
	}
}

func TestXLSXExporter_DashboardToXLSX(t *testing.T) {
	content, err := NewXLSXExporter().DashboardToXLSX(sampleDashboard())
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetStatus, SheetAssignees, SheetCategories, SheetTrend}, f.GetSheetList())

	t.Run("Resumo com atingimento arredondado", func(t *testing.T) {
		rows, err := f.GetRows(SheetSummary)
		require.NoError(t, err)
		require.Len(t, rows, 10)
		assert.Equal(t, []string{"Mês de referência", "2024-06"}, rows[1])
		assert.Equal(t, "66.67", rows[4][1])
		assert.Equal(t, "200150", rows[8][1])
		assert.Equal(t, "3", rows[9][1])
	})

	t.Run("Status usa o rótulo de exibição", func(t *testing.T) {
		rows, err := f.GetRows(SheetStatus)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"Lead", "2", "500"}, rows[1])
		assert.Equal(t, []string{"Ganho", "1", "1000"}, rows[2])
	})

	t.Run("Tendência em ordem crescente", func(t *testing.T) {
		rows, err := f.GetRows(SheetTrend)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "2024-05", rows[1][0])
		assert.Equal(t, "2024-06", rows[2][0])
	})
}

func TestXLSXExporter_NilDashboard(t *testing.T) {
	_, err := NewXLSXExporter().DashboardToXLSX(nil)
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "dashboard_2024-06.xlsx", FileName(domain.Month{Year: 2024, Month: time.June}))
}
