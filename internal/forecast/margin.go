package forecast

import (
	"math"
	"time"

	"github.com/andresuchdata/forecast-engine/internal/domain"
)

// Margin dead-zone in percentage points, mirroring the demand-forecast
// dead-zone: small period-over-period wobble reads as stable.
const marginDeadZonePts = 2.0

// PeriodTotals are the revenue and expense totals for one labelled period.
// Start anchors the period in time so chronology can be enforced.
type PeriodTotals struct {
	Label    string
	Start    time.Time
	Revenue  float64
	Expenses float64
}

// AnalyzeMarginTrend classifies the margin trend across consecutive
// periods, ordered oldest to newest. A single period (or none) yields a
// STABLE trend by definition: there is no prior basis for comparison, and
// that is an insufficient-data state, not an error.
func AnalyzeMarginTrend(periods []PeriodTotals) (domain.MarginTrend, error) {
	if err := validatePeriods(periods); err != nil {
		return domain.MarginTrend{}, err
	}

	comparison := make([]domain.PeriodMargin, 0, len(periods))
	for _, p := range periods {
		comparison = append(comparison, domain.PeriodMargin{
			Period: p.Label,
			Margin: marginPct(p.Revenue, p.Expenses),
		})
	}

	trend := domain.MarginTrend{
		Trend:            domain.MarginStable,
		PeriodComparison: comparison,
	}

	if len(comparison) == 0 {
		return trend, nil
	}

	trend.CurrentMargin = comparison[len(comparison)-1].Margin
	if len(comparison) >= 2 {
		delta := trend.CurrentMargin - comparison[len(comparison)-2].Margin
		switch {
		case delta > marginDeadZonePts:
			trend.Trend = domain.MarginImproving
		case delta < -marginDeadZonePts:
			trend.Trend = domain.MarginDeclining
		}
	}

	return trend, nil
}

func validatePeriods(periods []PeriodTotals) error {
	seen := make(map[string]struct{}, len(periods))
	for i, p := range periods {
		if p.Revenue < 0 {
			return invalidInput("period %q revenue must not be negative, got %g", p.Label, p.Revenue)
		}
		if p.Expenses < 0 {
			return invalidInput("period %q expenses must not be negative, got %g", p.Label, p.Expenses)
		}
		if _, ok := seen[p.Label]; ok {
			return invalidInput("duplicate period label %q", p.Label)
		}
		seen[p.Label] = struct{}{}
		if i > 0 && !periods[i-1].Start.Before(p.Start) {
			return invalidInput("periods must be in chronological order: %q does not follow %q", p.Label, periods[i-1].Label)
		}
	}

	return nil
}

// marginPct is the gross margin as a rounded percentage. Zero revenue maps
// to a 0% margin rather than a division error.
func marginPct(revenue, expenses float64) float64 {
	if revenue == 0 {
		return 0
	}

	return math.Round((revenue - expenses) / revenue * 100)
}
