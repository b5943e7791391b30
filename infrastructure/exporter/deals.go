package exporter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

const SheetDeals = "Negócios"

var dealColumns = []struct {
	title string
	width float64
}{
	{"Empresa", 30},
	{"Contato", 20},
	{"Categoria", 15},
	{"Status", 12},
	{"Valor de venda", 15},
	{"Lucro bruto", 15},
	{"Probabilidade", 12},
	{"Mês do pedido", 12},
	{"Mês de faturamento", 12},
	{"Responsável", 15},
	{"Criado em", 12},
	{"Atualizado em", 12},
}

// DealsFileName retorna o nome do arquivo da listagem, com data e hora da geração
func DealsFileName(now time.Time) string {
	return fmt.Sprintf("negocios_%s.xlsx", now.Format("20060102_150405"))
}

// DealsToXLSX escreve a listagem de negócios em uma única aba, um negócio por linha
func (e *XLSXExporter) DealsToXLSX(deals []domain.Deal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetDeals); err != nil {
		return nil, fmt.Errorf("erro ao renomear aba: %w", err)
	}

	header := make([]interface{}, len(dealColumns))
	for i, column := range dealColumns {
		header[i] = column.title

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetDeals, name, name, column.width); err != nil {
			return nil, fmt.Errorf("erro ao ajustar largura da coluna %s: %w", name, err)
		}
	}

	rows := [][]interface{}{header}
	for _, deal := range deals {
		rows = append(rows, []interface{}{
			deal.CompanyName,
			stringOrEmpty(deal.ContactPerson),
			stringOrEmpty(deal.Category),
			deal.Status.Label(),
			toFloat(deal.SalesAmount),
			toFloat(deal.GrossProfit),
			fmt.Sprintf("%d%%", deal.Probability),
			monthOrEmpty(deal.ExpectedOrderMonth),
			monthOrEmpty(deal.ExpectedBookingMonth),
			deal.Assignee.Name,
			deal.CreatedAt.Format("02/01/2006"),
			deal.UpdatedAt.Format("02/01/2006"),
		})
	}

	if err := writeRows(f, SheetDeals, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar planilha: %w", err)
	}

	return bytes.Clone(buf.Bytes()), nil
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func monthOrEmpty(value *time.Time) string {
	if value == nil {
		return ""
	}
	return domain.NewMonth(*value).String()
}
