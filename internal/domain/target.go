package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyTarget representa a meta mensal de vendas e lucro. UserID nulo indica meta da organização
type MonthlyTarget struct {
	ID           string          `json:"id"`
	Month        Month           `json:"target_month"`
	SalesTarget  decimal.Decimal `json:"sales_target"`
	ProfitTarget decimal.Decimal `json:"profit_target"`
	UserID       *string         `json:"user_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (t MonthlyTarget) IsOrgWide() bool {
	return t.UserID == nil
}

// UpsertTargetRequest representa o corpo da requisição de criação/atualização de meta
type UpsertTargetRequest struct {
	SalesTarget  decimal.Decimal `json:"sales_target"`
	ProfitTarget decimal.Decimal `json:"profit_target"`
}
