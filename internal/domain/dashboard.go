package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// UnknownAssigneeID agrupa negócios cujo responsável não pôde ser resolvido
	UnknownAssigneeID   = "unknown"
	UnknownAssigneeName = "Desconhecido"

	// UncategorizedLabel agrupa negócios sem categoria
	UncategorizedLabel = "uncategorized"

	DefaultTrendMonths = 6
)

type StatusBucket struct {
	Status DealStatus      `json:"status"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type AssigneeRollup struct {
	UserID    string          `json:"user_id"`
	UserName  string          `json:"user_name"`
	SalesSum  decimal.Decimal `json:"sales_sum"`
	ProfitSum decimal.Decimal `json:"profit_sum"`
	DealCount int             `json:"deal_count"`
}

type CategoryBucket struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type TrendPoint struct {
	Month        Month           `json:"month"`
	SalesActual  decimal.Decimal `json:"sales_actual"`
	ProfitActual decimal.Decimal `json:"profit_actual"`
	SalesTarget  decimal.Decimal `json:"sales_target"`
}

// Dashboard é o resultado agregado de um mês de referência
type Dashboard struct {
	ReferenceMonth     Month            `json:"reference_month"`
	SalesActual        decimal.Decimal  `json:"sales_actual"`
	ProfitActual       decimal.Decimal  `json:"profit_actual"`
	SalesTarget        decimal.Decimal  `json:"sales_target"`
	ProfitTarget       decimal.Decimal  `json:"profit_target"`
	SalesAchievement   float64          `json:"sales_achievement"`
	ProfitAchievement  float64          `json:"profit_achievement"`
	Forecast           decimal.Decimal  `json:"forecast"`
	TotalDeals         int              `json:"total_deals"`
	StatusDistribution []StatusBucket   `json:"status_distribution"`
	Assignees          []AssigneeRollup `json:"assignees"`
	Categories         []CategoryBucket `json:"categories"`
	Trend              []TrendPoint     `json:"trend"`
}

// DashboardSnapshot representa um dashboard persistido de um mês fechado
type DashboardSnapshot struct {
	ID          string     `json:"id"`
	Period      Month      `json:"period"`
	TrendMonths int        `json:"trend_months"`
	Dashboard   *Dashboard `json:"dashboard"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AvailablePeriods representa os meses com snapshots disponíveis
type AvailablePeriods struct {
	Periods []string `json:"periods"` // Lista de períodos no formato yyyy-mm
	Years   []string `json:"years"`
}
