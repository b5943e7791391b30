package exporter

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vfg2006/sales-pipeline-api/internal/domain"
	"github.com/vfg2006/sales-pipeline-api/pkg/utils"
)

const (
	SheetSummary    = "Resumo"
	SheetStatus     = "Status"
	SheetAssignees  = "Responsáveis"
	SheetCategories = "Categorias"
	SheetTrend      = "Tendência"

	// ContentType é o tipo MIME da planilha gerada
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// XLSXExporter gera a planilha do dashboard, uma aba por bloco
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// FileName retorna o nome do arquivo de exportação do mês
func FileName(month domain.Month) string {
	return fmt.Sprintf("dashboard_%s.xlsx", month.String())
}

// DashboardToXLSX escreve o dashboard em uma planilha e retorna o conteúdo do arquivo
func (e *XLSXExporter) DashboardToXLSX(dashboard *domain.Dashboard) ([]byte, error) {
	if dashboard == nil {
		return nil, fmt.Errorf("dashboard vazio")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("erro ao renomear aba: %w", err)
	}

	summary := [][]interface{}{
		{"Indicador", "Valor"},
		{"Mês de referência", dashboard.ReferenceMonth.String()},
		{"Vendas realizadas", toFloat(dashboard.SalesActual)},
		{"Meta de vendas", toFloat(dashboard.SalesTarget)},
		{"Atingimento de vendas (%)", utils.RoundWithTwoDecimalPlace(dashboard.SalesAchievement)},
		{"Lucro realizado", toFloat(dashboard.ProfitActual)},
		{"Meta de lucro", toFloat(dashboard.ProfitTarget)},
		{"Atingimento de lucro (%)", utils.RoundWithTwoDecimalPlace(dashboard.ProfitAchievement)},
		{"Previsão ponderada", toFloat(dashboard.Forecast)},
		{"Total de negócios", dashboard.TotalDeals},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return nil, err
	}

	status := [][]interface{}{{"Status", "Quantidade", "Valor"}}
	for _, bucket := range dashboard.StatusDistribution {
		status = append(status, []interface{}{bucket.Status.Label(), bucket.Count, toFloat(bucket.Amount)})
	}

	assignees := [][]interface{}{{"Responsável", "Vendas", "Lucro", "Negócios"}}
	for _, rollup := range dashboard.Assignees {
		assignees = append(assignees, []interface{}{rollup.UserName, toFloat(rollup.SalesSum), toFloat(rollup.ProfitSum), rollup.DealCount})
	}

	categories := [][]interface{}{{"Categoria", "Valor"}}
	for _, bucket := range dashboard.Categories {
		categories = append(categories, []interface{}{bucket.Category, toFloat(bucket.Amount)})
	}

	trend := [][]interface{}{{"Mês", "Vendas", "Lucro", "Meta de vendas"}}
	for _, point := range dashboard.Trend {
		trend = append(trend, []interface{}{point.Month.String(), toFloat(point.SalesActual), toFloat(point.ProfitActual), toFloat(point.SalesTarget)})
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetStatus, status},
		{SheetAssignees, assignees},
		{SheetCategories, categories},
		{SheetTrend, trend},
	}

	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("erro ao criar aba %s: %w", sheet.name, err)
		}
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar planilha: %w", err)
	}

	return bytes.Clone(buf.Bytes()), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("erro ao escrever linha %d da aba %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func toFloat(value decimal.Decimal) float64 {
	return value.InexactFloat64()
}
