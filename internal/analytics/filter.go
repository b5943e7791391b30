package analytics

import (
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

func selectDeals(deals []domain.Deal, keep func(domain.Deal) bool) []domain.Deal {
	selected := make([]domain.Deal, 0, len(deals))
	for _, deal := range deals {
		if keep(deal) {
			selected = append(selected, deal)
		}
	}
	return selected
}

// ActiveDeals descarta os negócios com exclusão lógica, preservando a ordem
func ActiveDeals(deals []domain.Deal) []domain.Deal {
	return selectDeals(deals, func(deal domain.Deal) bool {
		return !deal.IsDeleted()
	})
}

// DealsWonInMonth seleciona os negócios ganhos cujo mês de faturamento cai no mês informado.
// Negócios ganhos sem mês de faturamento nunca são selecionados.
func DealsWonInMonth(deals []domain.Deal, month domain.Month) []domain.Deal {
	return selectDeals(deals, func(deal domain.Deal) bool {
		return deal.Status == domain.DealStatusWon &&
			deal.ExpectedBookingMonth != nil &&
			month.Contains(*deal.ExpectedBookingMonth)
	})
}

// DealsOpenForForecast seleciona os negócios ainda no funil (nem ganhos nem perdidos), sem recorte de mês
func DealsOpenForForecast(deals []domain.Deal) []domain.Deal {
	return selectDeals(deals, func(deal domain.Deal) bool {
		return !deal.Status.Closed()
	})
}

func DealsByStatus(deals []domain.Deal, status domain.DealStatus) []domain.Deal {
	return selectDeals(deals, func(deal domain.Deal) bool {
		return deal.Status == status
	})
}

func DealsByAssignee(deals []domain.Deal, userID string) []domain.Deal {
	return selectDeals(deals, func(deal domain.Deal) bool {
		return deal.Assignee.ID == userID
	})
}
