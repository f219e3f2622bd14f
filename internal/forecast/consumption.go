package forecast

import (
	"math"

	"github.com/andresuchdata/forecast-engine/internal/domain"
)

// EstimateDailyUsage converts the usage movements of one item inside the
// analysis window into a daily average consumption rate. Quantities are
// normalized via absolute value; non-usage movements are ignored.
//
// The denominator is the fixed window length, not the count of days with
// recorded usage. Dividing by the window smooths sparse or irregular usage
// days instead of overstating the rate on the days consumption happened to
// be logged.
func EstimateDailyUsage(movements []domain.StockMovement, windowDays int) (float64, error) {
	if windowDays <= 0 {
		return 0, invalidInput("analysis window must be positive, got %d days", windowDays)
	}

	var total float64
	for _, m := range movements {
		if m.Type != domain.MovementUsage {
			continue
		}
		total += math.Abs(m.Quantity)
	}

	return total / float64(windowDays), nil
}
