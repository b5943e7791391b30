package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type DealStatus string

const (
	DealStatusLead        DealStatus = "lead"
	DealStatusNegotiation DealStatus = "negotiation"
	DealStatusProposal    DealStatus = "proposal"
	DealStatusWon         DealStatus = "won"
	DealStatusLost        DealStatus = "lost"
)

// dealStatuses é o único ponto de definição da enumeração, na ordem do funil
var dealStatuses = []DealStatus{
	DealStatusLead,
	DealStatusNegotiation,
	DealStatusProposal,
	DealStatusWon,
	DealStatusLost,
}

var dealStatusLabels = map[DealStatus]string{
	DealStatusLead:        "Lead",
	DealStatusNegotiation: "Em negociação",
	DealStatusProposal:    "Proposta enviada",
	DealStatusWon:         "Ganho",
	DealStatusLost:        "Perdido",
}

// AllDealStatuses retorna uma cópia da enumeração de status na ordem do funil
func AllDealStatuses() []DealStatus {
	statuses := make([]DealStatus, len(dealStatuses))
	copy(statuses, dealStatuses)
	return statuses
}

func ParseDealStatus(value string) (DealStatus, error) {
	status := DealStatus(value)
	if !status.Valid() {
		return "", fmt.Errorf("status de negócio desconhecido: %q", value)
	}
	return status, nil
}

func (s DealStatus) Valid() bool {
	_, ok := dealStatusLabels[s]
	return ok
}

// Closed indica se o negócio saiu do funil (ganho ou perdido)
func (s DealStatus) Closed() bool {
	return s == DealStatusWon || s == DealStatusLost
}

func (s DealStatus) Label() string {
	if label, ok := dealStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// UserRef é a referência de usuário usada apenas para rotular agrupamentos
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Deal representa um negócio (projeto) do funil de vendas
type Deal struct {
	ID                   string          `json:"id"`
	CompanyName          string          `json:"company_name"`
	ContactPerson        *string         `json:"contact_person,omitempty"`
	Status               DealStatus      `json:"status"`
	SalesAmount          decimal.Decimal `json:"sales_amount"`
	GrossProfit          decimal.Decimal `json:"gross_profit"`
	Probability          int             `json:"probability"`
	Category             *string         `json:"category,omitempty"`
	ExpectedOrderMonth   *time.Time      `json:"expected_order_month,omitempty"`
	ExpectedBookingMonth *time.Time      `json:"expected_booking_month,omitempty"`
	Assignee             UserRef         `json:"assignee"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	DeletedAt            *time.Time      `json:"deleted_at,omitempty"`
}

func (d Deal) IsDeleted() bool {
	return d.DeletedAt != nil
}

// WeightedAmount retorna o valor de venda ponderado pela probabilidade
func (d Deal) WeightedAmount() decimal.Decimal {
	return d.SalesAmount.Mul(decimal.NewFromInt(int64(d.Probability))).Div(decimal.NewFromInt(100))
}

type ActivityType string

const (
	ActivityTypeVisit   ActivityType = "visit"
	ActivityTypeCall    ActivityType = "call"
	ActivityTypeEmail   ActivityType = "email"
	ActivityTypeMeeting ActivityType = "meeting"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTypeVisit, ActivityTypeCall, ActivityTypeEmail, ActivityTypeMeeting:
		return true
	}
	return false
}

// Activity é um registro de contato feito em um negócio
type Activity struct {
	ID           string       `json:"id"`
	DealID       string       `json:"deal_id"`
	AuthorID     string       `json:"author_id"`
	Type         ActivityType `json:"activity_type"`
	Content      string       `json:"content"`
	ActivityDate time.Time    `json:"activity_date"`
	CreatedAt    time.Time    `json:"created_at"`
}
