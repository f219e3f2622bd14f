package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/forecast-engine/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestRecommend_CriticalItemOrder(t *testing.T) {
	// 3.0/day usage, 10 in stock, 3 days to depletion.
	forecast := domain.StockForecast{
		ItemID:             "flour",
		ItemName:           "Wheat flour",
		CurrentStock:       10,
		DailyAverageUsage:  3.0,
		DaysUntilDepletion: intPtr(3),
		Status:             domain.StatusCritical,
	}

	rec, err := Recommend(forecast, ReorderParams{LeadTimeDays: 5, SafetyDays: 3, UnitCost: floatPtr(1000)})
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.InDelta(t, 14.0, rec.RecommendedOrderQuantity, 1e-9) // 3.0*8 - 10
	assert.InDelta(t, 14000.0, rec.EstimatedCost, 1e-9)
	assert.Equal(t, domain.UrgencyUrgent, rec.Urgency) // 3 <= 5
}

func TestRecommend_SkipsNonCandidates(t *testing.T) {
	params := ReorderParams{LeadTimeDays: 5, SafetyDays: 3}

	for _, status := range []domain.StockStatus{domain.StatusOK, domain.StatusNoData} {
		rec, err := Recommend(domain.StockForecast{
			ItemID:             "salt",
			Status:             status,
			DailyAverageUsage:  2.0,
			DaysUntilDepletion: intPtr(20),
		}, params)
		require.NoError(t, err)
		assert.Nilf(t, rec, "status=%s", status)
	}
}

func TestRecommend_NoOrderWhenCovered(t *testing.T) {
	// Enough stock to cover lead + safety: 1.0*8 - 14 < 0, clamp to none.
	rec, err := Recommend(domain.StockForecast{
		ItemID:             "sugar",
		Status:             domain.StatusLow,
		CurrentStock:       14,
		DailyAverageUsage:  1.0,
		DaysUntilDepletion: intPtr(14),
	}, ReorderParams{LeadTimeDays: 5, SafetyDays: 3})
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRecommend_UnknownUnitCost(t *testing.T) {
	rec, err := Recommend(domain.StockForecast{
		ItemID:             "yeast",
		Status:             domain.StatusWarning,
		CurrentStock:       2,
		DailyAverageUsage:  1.0,
		DaysUntilDepletion: intPtr(2),
	}, ReorderParams{LeadTimeDays: 5, SafetyDays: 3})
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.InDelta(t, 6.0, rec.RecommendedOrderQuantity, 1e-9)
	assert.Zero(t, rec.EstimatedCost)
}

func TestRecommend_UrgencyAccountsForLeadTime(t *testing.T) {
	tests := []struct {
		days int
		want domain.Urgency
	}{
		{3, domain.UrgencyUrgent},
		{5, domain.UrgencyUrgent},   // exactly the lead time
		{6, domain.UrgencySoon},
		{8, domain.UrgencySoon},     // exactly lead + safety
		{9, domain.UrgencyPlanAhead},
		{14, domain.UrgencyPlanAhead},
	}

	for _, tt := range tests {
		rec, err := Recommend(domain.StockForecast{
			ItemID:             "beans",
			Status:             domain.StatusLow,
			CurrentStock:       1,
			DailyAverageUsage:  5.0,
			DaysUntilDepletion: intPtr(tt.days),
		}, ReorderParams{LeadTimeDays: 5, SafetyDays: 3})
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equalf(t, tt.want, rec.Urgency, "days=%d", tt.days)
	}
}

func TestRecommend_ContractViolations(t *testing.T) {
	forecast := domain.StockForecast{Status: domain.StatusCritical, DaysUntilDepletion: intPtr(1)}

	_, err := Recommend(forecast, ReorderParams{LeadTimeDays: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Recommend(forecast, ReorderParams{SafetyDays: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSortRecommendations(t *testing.T) {
	recs := []domain.ReorderRecommendation{
		{ItemID: "d", Urgency: domain.UrgencyPlanAhead, DaysUntilDepletion: intPtr(12)},
		{ItemID: "b", Urgency: domain.UrgencySoon, DaysUntilDepletion: intPtr(7)},
		{ItemID: "a", Urgency: domain.UrgencyUrgent, DaysUntilDepletion: intPtr(4)},
		{ItemID: "c", Urgency: domain.UrgencySoon, DaysUntilDepletion: intPtr(6)},
		{ItemID: "e", Urgency: domain.UrgencyUrgent, DaysUntilDepletion: intPtr(2)},
	}

	SortRecommendations(recs)

	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ItemID)
	}
	assert.Equal(t, []string{"e", "a", "c", "b", "d"}, ids)
}
