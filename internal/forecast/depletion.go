package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/andresuchdata/forecast-engine/internal/domain"
)

// Status thresholds in days until depletion. Evaluated in order; first
// match wins.
const (
	criticalThresholdDays = 3
	warningThresholdDays  = 7
	lowThresholdDays      = 14
)

// Confidence thresholds as a fraction of the analysis window covered by
// usage movements.
const (
	highConfidenceRatio   = 0.70
	mediumConfidenceRatio = 0.30
)

// DepletionInput carries everything needed to forecast one item.
type DepletionInput struct {
	CurrentStock      float64
	DailyAverageUsage float64
	MovementCount     int
	WindowDays        int
	AsOf              time.Time
}

// ForecastDepletion turns current stock plus a usage rate into a depletion
// outlook. Item identity fields are attached by the caller.
func ForecastDepletion(in DepletionInput) (domain.StockForecast, error) {
	if in.CurrentStock < 0 {
		return domain.StockForecast{}, invalidInput("current stock must not be negative, got %g", in.CurrentStock)
	}
	if in.DailyAverageUsage < 0 {
		return domain.StockForecast{}, invalidInput("daily average usage must not be negative, got %g", in.DailyAverageUsage)
	}
	if in.MovementCount < 0 {
		return domain.StockForecast{}, invalidInput("movement count must not be negative, got %d", in.MovementCount)
	}
	if in.WindowDays <= 0 {
		return domain.StockForecast{}, invalidInput("analysis window must be positive, got %d days", in.WindowDays)
	}

	forecast := domain.StockForecast{
		CurrentStock:      in.CurrentStock,
		DailyAverageUsage: in.DailyAverageUsage,
		MovementCount:     in.MovementCount,
		Confidence:        classifyConfidence(in.MovementCount, in.WindowDays),
	}

	// Zero usage means the item cannot be forecast at the current rate.
	// That is a distinct "cannot estimate" state, not an error.
	if in.DailyAverageUsage > 0 {
		days := int(math.Floor(in.CurrentStock / in.DailyAverageUsage))
		date := in.AsOf.AddDate(0, 0, days)
		forecast.DaysUntilDepletion = &days
		forecast.DepletionDate = &date
	}

	forecast.Status = classifyStatus(in.MovementCount, forecast.DaysUntilDepletion)

	return forecast, nil
}

// classifyStatus applies the ordered status ladder. NO_DATA is checked
// first: with zero usage movements there is no evidence to grade, no matter
// the stock level.
func classifyStatus(movementCount int, daysUntilDepletion *int) domain.StockStatus {
	switch {
	case movementCount == 0:
		return domain.StatusNoData
	case daysUntilDepletion == nil:
		// Usage history exists but the measured rate is zero: effectively
		// infinite runway.
		return domain.StatusOK
	case *daysUntilDepletion <= criticalThresholdDays:
		return domain.StatusCritical
	case *daysUntilDepletion <= warningThresholdDays:
		return domain.StatusWarning
	case *daysUntilDepletion <= lowThresholdDays:
		return domain.StatusLow
	default:
		return domain.StatusOK
	}
}

// classifyConfidence grades how much of the analysis window is covered by
// usage evidence. Sparse data must not be presented with false precision.
func classifyConfidence(movementCount, windowDays int) domain.Confidence {
	ratio := float64(movementCount) / float64(windowDays)
	switch {
	case ratio >= highConfidenceRatio:
		return domain.ConfidenceHigh
	case ratio >= mediumConfidenceRatio:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// SortForecasts orders forecasts ascending by days until depletion with
// "cannot estimate" entries last, so the most urgent items surface first.
// Ties fall back to item ID to keep reports deterministic.
func SortForecasts(forecasts []domain.StockForecast) {
	sort.SliceStable(forecasts, func(i, j int) bool {
		a, b := forecasts[i], forecasts[j]
		switch {
		case a.DaysUntilDepletion == nil && b.DaysUntilDepletion == nil:
			return a.ItemID < b.ItemID
		case a.DaysUntilDepletion == nil:
			return false
		case b.DaysUntilDepletion == nil:
			return true
		case *a.DaysUntilDepletion != *b.DaysUntilDepletion:
			return *a.DaysUntilDepletion < *b.DaysUntilDepletion
		default:
			return a.ItemID < b.ItemID
		}
	})
}
