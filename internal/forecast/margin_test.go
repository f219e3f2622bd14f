package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/forecast-engine/internal/domain"
)

func period(label string, daysAgo int, revenue, expenses float64) PeriodTotals {
	return PeriodTotals{
		Label:    label,
		Start:    time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
		Revenue:  revenue,
		Expenses: expenses,
	}
}

func TestAnalyzeMarginTrend_DecliningMargins(t *testing.T) {
	// Prior period at 20% margin, recent period at 15%.
	trend, err := AnalyzeMarginTrend([]PeriodTotals{
		period("July", 60, 1000, 800),
		period("August", 30, 1000, 850),
	})
	require.NoError(t, err)

	assert.InDelta(t, 15.0, trend.CurrentMargin, 1e-9)
	assert.Equal(t, domain.MarginDeclining, trend.Trend)
	require.Len(t, trend.PeriodComparison, 2)
	assert.Equal(t, "July", trend.PeriodComparison[0].Period)
	assert.InDelta(t, 20.0, trend.PeriodComparison[0].Margin, 1e-9)
}

func TestAnalyzeMarginTrend_DeadZone(t *testing.T) {
	tests := []struct {
		name             string
		priorExpenses    float64
		currentExpenses  float64
		want             domain.MarginDirection
	}{
		{"two points up is still stable", 800, 780, domain.MarginStable},
		{"two points down is still stable", 800, 820, domain.MarginStable},
		{"three points up improves", 800, 770, domain.MarginImproving},
		{"three points down declines", 800, 830, domain.MarginDeclining},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend, err := AnalyzeMarginTrend([]PeriodTotals{
				period("prior", 60, 1000, tt.priorExpenses),
				period("current", 30, 1000, tt.currentExpenses),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, trend.Trend)
		})
	}
}

func TestAnalyzeMarginTrend_ZeroRevenueMeansZeroMargin(t *testing.T) {
	trend, err := AnalyzeMarginTrend([]PeriodTotals{
		period("prior", 60, 0, 500),
		period("current", 30, 1000, 500),
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.0, trend.PeriodComparison[0].Margin, 1e-9)
	assert.InDelta(t, 50.0, trend.CurrentMargin, 1e-9)
	assert.Equal(t, domain.MarginImproving, trend.Trend)
}

func TestAnalyzeMarginTrend_NegativeMargin(t *testing.T) {
	trend, err := AnalyzeMarginTrend([]PeriodTotals{
		period("prior", 60, 1000, 900),
		period("current", 30, 1000, 1200),
	})
	require.NoError(t, err)

	assert.InDelta(t, -20.0, trend.CurrentMargin, 1e-9)
	assert.Equal(t, domain.MarginDeclining, trend.Trend)
}

func TestAnalyzeMarginTrend_InsufficientDataIsStable(t *testing.T) {
	// One period: no prior basis for comparison.
	trend, err := AnalyzeMarginTrend([]PeriodTotals{period("only", 30, 1000, 600)})
	require.NoError(t, err)
	assert.Equal(t, domain.MarginStable, trend.Trend)
	assert.InDelta(t, 40.0, trend.CurrentMargin, 1e-9)

	// No periods at all: still a valid, renderable result.
	trend, err = AnalyzeMarginTrend(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.MarginStable, trend.Trend)
	assert.Zero(t, trend.CurrentMargin)
	assert.Empty(t, trend.PeriodComparison)
}

func TestAnalyzeMarginTrend_MalformedPeriodLists(t *testing.T) {
	_, err := AnalyzeMarginTrend([]PeriodTotals{
		period("same", 60, 100, 50),
		period("same", 30, 100, 50),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = AnalyzeMarginTrend([]PeriodTotals{
		period("newer", 30, 100, 50),
		period("older", 60, 100, 50),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = AnalyzeMarginTrend([]PeriodTotals{period("bad", 30, -100, 50)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = AnalyzeMarginTrend([]PeriodTotals{period("bad", 30, 100, -50)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
