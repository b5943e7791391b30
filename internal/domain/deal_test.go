package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDealStatus(t *testing.T) {
	statuses := AllDealStatuses()
	assert.Equal(t, []DealStatus{
		DealStatusLead,
		DealStatusNegotiation,
		DealStatusProposal,
		DealStatusWon,
		DealStatusLost,
	}, statuses)

	// A cópia retornada não altera a enumeração
	statuses[0] = "hacked"
	assert.Equal(t, DealStatusLead, AllDealStatuses()[0])

	for _, status := range AllDealStatuses() {
		assert.True(t, status.Valid(), status)
		assert.NotEqual(t, string(status), status.Label())
	}

	assert.False(t, DealStatus("archived").Valid())
	assert.Equal(t, "archived", DealStatus("archived").Label())

	assert.True(t, DealStatusWon.Closed())
	assert.True(t, DealStatusLost.Closed())
	assert.False(t, DealStatusProposal.Closed())
}

func TestParseDealStatus(t *testing.T) {
	status, err := ParseDealStatus("won")
	assert.NoError(t, err)
	assert.Equal(t, DealStatusWon, status)

	_, err = ParseDealStatus("WON")
	assert.Error(t, err)
}

func TestDeal_WeightedAmountAndDeleted(t *testing.T) {
	deal := Deal{
		SalesAmount: decimal.NewFromInt(500000),
		Probability: 40,
	}
	assert.True(t, decimal.NewFromInt(200000).Equal(deal.WeightedAmount()))
	assert.False(t, deal.IsDeleted())

	deletedAt := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	deal.DeletedAt = &deletedAt
	assert.True(t, deal.IsDeleted())
}

func TestActivityType_Valid(t *testing.T) {
	for _, activityType := range []ActivityType{ActivityTypeVisit, ActivityTypeCall, ActivityTypeEmail, ActivityTypeMeeting} {
		assert.True(t, activityType.Valid())
	}
	assert.False(t, ActivityType("sms").Valid())
}
