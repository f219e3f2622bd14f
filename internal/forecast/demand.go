package forecast

import (
	"math"

	"github.com/andresuchdata/forecast-engine/internal/domain"
)

// Trend dead-zone in percent. Half-over-half changes inside ±5% are
// reported as flat so noise never reads as a trend.
const trendDeadZonePct = 5.0

// ForecastDemand projects expected revenue over horizonDays from a daily
// revenue series ordered oldest to newest. The confidence interval is a
// fixed multiple (ciWidth) of the sample standard deviation scaled by
// sqrt(horizon), a simple auditable band rather than a fitted statistical
// model.
func ForecastDemand(series []float64, horizonDays int, ciWidth float64) (domain.DemandForecast, error) {
	if horizonDays <= 0 {
		return domain.DemandForecast{}, invalidInput("forecast horizon must be positive, got %d days", horizonDays)
	}
	if ciWidth < 0 {
		return domain.DemandForecast{}, invalidInput("confidence interval width must not be negative, got %g", ciWidth)
	}
	for i, v := range series {
		if v < 0 {
			return domain.DemandForecast{}, invalidInput("revenue series must not contain negative values, got %g at index %d", v, i)
		}
	}

	expected := mean(series) * float64(horizonDays)
	spread := ciWidth * sampleStdDev(series) * math.Sqrt(float64(horizonDays))
	trend, pct := classifyTrend(series)

	return domain.DemandForecast{
		HorizonDays:     horizonDays,
		ExpectedRevenue: expected,
		ConfidenceInterval: domain.ConfidenceInterval{
			Low:  math.Max(0, expected-spread),
			High: expected + spread,
		},
		Trend:           trend,
		TrendPercentage: pct,
	}, nil
}

// classifyTrend splits the series into equal-length older and newer halves
// (dropping the oldest point when the length is odd) and compares their
// means. Series shorter than two points have no trend basis.
func classifyTrend(series []float64) (domain.TrendDirection, float64) {
	if len(series) < 2 {
		return domain.TrendFlat, 0
	}

	trimmed := series[len(series)%2:]
	half := len(trimmed) / 2
	olderMean := mean(trimmed[:half])
	newerMean := mean(trimmed[half:])

	var pct float64
	switch {
	case olderMean == 0 && newerMean == 0:
		return domain.TrendFlat, 0
	case olderMean == 0:
		pct = 100
	default:
		pct = (newerMean - olderMean) / olderMean * 100
	}

	switch {
	case pct > trendDeadZonePct:
		return domain.TrendUp, pct
	case pct < -trendDeadZonePct:
		return domain.TrendDown, pct
	default:
		return domain.TrendFlat, pct
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// sampleStdDev returns the sample standard deviation (n-1 denominator), or
// 0 for series shorter than two points so the interval collapses to the
// point estimate.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(values)-1))
}
