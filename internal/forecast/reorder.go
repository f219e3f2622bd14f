package forecast

import (
	"sort"

	"github.com/andresuchdata/forecast-engine/internal/domain"
)

// ReorderParams are the restocking assumptions for one recommendation.
type ReorderParams struct {
	LeadTimeDays int
	SafetyDays   int
	UnitCost     *float64
}

// Recommend derives a purchase-order suggestion from a depletion forecast.
// It returns nil when the item needs no order: OK and NO_DATA items carry
// no actionable usage signal, and items already holding enough stock to
// cover lead time plus safety days have nothing to top up.
func Recommend(forecast domain.StockForecast, params ReorderParams) (*domain.ReorderRecommendation, error) {
	if params.LeadTimeDays < 0 {
		return nil, invalidInput("lead time must not be negative, got %d days", params.LeadTimeDays)
	}
	if params.SafetyDays < 0 {
		return nil, invalidInput("safety stock days must not be negative, got %d", params.SafetyDays)
	}

	switch forecast.Status {
	case domain.StatusCritical, domain.StatusWarning, domain.StatusLow:
	default:
		return nil, nil
	}
	if forecast.DaysUntilDepletion == nil {
		return nil, nil
	}

	coverDays := params.LeadTimeDays + params.SafetyDays
	quantity := forecast.DailyAverageUsage*float64(coverDays) - forecast.CurrentStock
	if quantity <= 0 {
		return nil, nil
	}

	var cost float64
	if params.UnitCost != nil {
		cost = quantity * *params.UnitCost
	}

	return &domain.ReorderRecommendation{
		ItemID:                   forecast.ItemID,
		ItemName:                 forecast.ItemName,
		RecommendedOrderQuantity: quantity,
		EstimatedCost:            cost,
		Urgency:                  classifyUrgency(*forecast.DaysUntilDepletion, params),
		DaysUntilDepletion:       forecast.DaysUntilDepletion,
	}, nil
}

// classifyUrgency accounts for how long restocking itself takes, not only
// the raw depletion countdown: an item depleting within the supplier lead
// time is already urgent.
func classifyUrgency(daysUntilDepletion int, params ReorderParams) domain.Urgency {
	switch {
	case daysUntilDepletion <= params.LeadTimeDays:
		return domain.UrgencyUrgent
	case daysUntilDepletion <= params.LeadTimeDays+params.SafetyDays:
		return domain.UrgencySoon
	default:
		return domain.UrgencyPlanAhead
	}
}

// SortRecommendations orders by urgency tier, then ascending days until
// depletion, then item ID for determinism.
func SortRecommendations(recs []domain.ReorderRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if ra, rb := domain.UrgencyRank(a.Urgency), domain.UrgencyRank(b.Urgency); ra != rb {
			return ra < rb
		}
		if a.DaysUntilDepletion != nil && b.DaysUntilDepletion != nil &&
			*a.DaysUntilDepletion != *b.DaysUntilDepletion {
			return *a.DaysUntilDepletion < *b.DaysUntilDepletion
		}
		return a.ItemID < b.ItemID
	})
}
