package forecast

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/forecast-engine/internal/domain"
)

// Inputs is the snapshot of collaborator data one report is built from. The
// engine reads it and nothing else: no I/O, no clock, no hidden state.
type Inputs struct {
	Items         []domain.InventoryItemSnapshot
	Movements     []domain.StockMovement
	RevenuePoints []domain.RevenuePoint
	ExpensePoints []domain.ExpensePoint
	CashEvents    []domain.CashEvent
}

// BuildForecastReport composes every forecast section into one report:
// per-item depletion forecasts, reorder recommendations, a cash runway,
// demand forecasts per horizon and a margin trend. Per-item work runs in
// parallel; output order is fixed by the sort rules afterwards, never by
// scheduling order.
//
// Tenants with empty history get a well-formed, mostly-empty report, not an
// error. All timestamps are taken as provided; asOf replaces any wall-clock
// lookup so identical inputs always produce identical reports.
func BuildForecastReport(ctx context.Context, tenantID string, asOf time.Time, cfg Config, in Inputs) (*domain.ForecastReport, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateInputs(in); err != nil {
		return nil, err
	}

	windowStart := asOf.AddDate(0, 0, -cfg.AnalysisWindowDays)
	usageByItem := groupUsageMovements(in.Movements, windowStart, asOf)

	forecasts, recommendations, err := forecastItems(ctx, cfg, asOf, in.Items, usageByItem)
	if err != nil {
		return nil, err
	}
	SortForecasts(forecasts)
	SortRecommendations(recommendations)

	runway, err := projectRunway(cfg, in, windowStart, asOf)
	if err != nil {
		return nil, err
	}

	series := dailyRevenueSeries(in.RevenuePoints, windowStart, asOf, cfg.AnalysisWindowDays)
	demands := make([]domain.DemandForecast, 0, len(cfg.Horizons))
	for _, horizon := range cfg.Horizons {
		demand, err := ForecastDemand(series, horizon, cfg.CIWidth)
		if err != nil {
			return nil, err
		}
		demands = append(demands, demand)
	}

	margin, err := AnalyzeMarginTrend(comparisonPeriods(in, asOf, cfg.AnalysisWindowDays))
	if err != nil {
		return nil, err
	}

	return &domain.ForecastReport{
		TenantID:               tenantID,
		AsOf:                   asOf,
		AnalysisWindowDays:     cfg.AnalysisWindowDays,
		StockForecasts:         forecasts,
		ReorderRecommendations: recommendations,
		CashRunway:             runway,
		DemandForecasts:        demands,
		MarginTrend:            margin,
	}, nil
}

func validateInputs(in Inputs) error {
	for _, item := range in.Items {
		if item.CurrentStock < 0 {
			return invalidInput("item %q current stock must not be negative, got %g", item.ID, item.CurrentStock)
		}
	}
	for _, m := range in.Movements {
		switch m.Type {
		case domain.MovementPurchase, domain.MovementUsage, domain.MovementWaste, domain.MovementAdjustment:
		default:
			return invalidInput("unknown stock movement type %q for item %q", m.Type, m.ItemID)
		}
	}
	for _, p := range in.RevenuePoints {
		if p.Amount < 0 {
			return invalidInput("revenue amount must not be negative, got %g", p.Amount)
		}
	}
	for _, p := range in.ExpensePoints {
		if p.Amount < 0 {
			return invalidInput("expense amount must not be negative, got %g", p.Amount)
		}
	}
	for _, e := range in.CashEvents {
		if e.Type != domain.CashDeposit && e.Type != domain.CashWithdrawal {
			return invalidInput("unknown cash event type %q", e.Type)
		}
		if e.Amount < 0 {
			return invalidInput("cash event amount must not be negative, got %g", e.Amount)
		}
	}

	return nil
}

// forecastItems fans the per-item work out across a bounded worker group.
// Items are independent, so only the result slot index is shared per
// goroutine.
func forecastItems(
	ctx context.Context,
	cfg Config,
	asOf time.Time,
	items []domain.InventoryItemSnapshot,
	usageByItem map[string][]domain.StockMovement,
) ([]domain.StockForecast, []domain.ReorderRecommendation, error) {

	type itemResult struct {
		forecast       domain.StockForecast
		recommendation *domain.ReorderRecommendation
	}

	results := make([]itemResult, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			movements := usageByItem[item.ID]
			rate, err := EstimateDailyUsage(movements, cfg.AnalysisWindowDays)
			if err != nil {
				return fmt.Errorf("item %s: %w", item.ID, err)
			}

			forecast, err := ForecastDepletion(DepletionInput{
				CurrentStock:      item.CurrentStock,
				DailyAverageUsage: rate,
				MovementCount:     len(movements),
				WindowDays:        cfg.AnalysisWindowDays,
				AsOf:              asOf,
			})
			if err != nil {
				return fmt.Errorf("item %s: %w", item.ID, err)
			}
			forecast.ItemID = item.ID
			forecast.ItemName = item.Name
			forecast.Category = item.Category
			forecast.Unit = item.Unit

			recommendation, err := Recommend(forecast, ReorderParams{
				LeadTimeDays: cfg.LeadTimeDays,
				SafetyDays:   cfg.SafetyDays,
				UnitCost:     item.UnitCost,
			})
			if err != nil {
				return fmt.Errorf("item %s: %w", item.ID, err)
			}
			if recommendation != nil {
				recommendation.SupplierName = item.SupplierName
			}

			results[i] = itemResult{forecast: forecast, recommendation: recommendation}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	forecasts := make([]domain.StockForecast, 0, len(items))
	recommendations := make([]domain.ReorderRecommendation, 0)
	for _, r := range results {
		forecasts = append(forecasts, r.forecast)
		if r.recommendation != nil {
			recommendations = append(recommendations, *r.recommendation)
		}
	}

	return forecasts, recommendations, nil
}

func groupUsageMovements(movements []domain.StockMovement, from, to time.Time) map[string][]domain.StockMovement {
	grouped := make(map[string][]domain.StockMovement)
	for _, m := range movements {
		if m.Type != domain.MovementUsage {
			continue
		}
		if m.OccurredAt.Before(from) || m.OccurredAt.After(to) {
			continue
		}
		grouped[m.ItemID] = append(grouped[m.ItemID], m)
	}

	return grouped
}

// projectRunway measures daily revenue and expense rates over the analysis
// window and derives the current balance from the full cash event history.
func projectRunway(cfg Config, in Inputs, windowStart, asOf time.Time) (domain.CashRunway, error) {
	var revenueTotal float64
	for _, p := range in.RevenuePoints {
		if inWindow(p.OccurredAt, windowStart, asOf) {
			revenueTotal += p.Amount
		}
	}

	var expenseTotal float64
	for _, p := range in.ExpensePoints {
		if inWindow(p.OccurredAt, windowStart, asOf) {
			expenseTotal += p.Amount
		}
	}

	var balance float64
	for _, e := range in.CashEvents {
		switch e.Type {
		case domain.CashDeposit:
			balance += e.Amount
		case domain.CashWithdrawal:
			balance -= e.Amount
		}
	}

	window := float64(cfg.AnalysisWindowDays)
	return ProjectCashRunway(balance, revenueTotal/window, expenseTotal/window, cfg.StressFactor)
}

// dailyRevenueSeries buckets revenue points into one value per day of the
// analysis window, oldest first. Days without sales contribute zero so the
// series length always matches the window.
func dailyRevenueSeries(points []domain.RevenuePoint, windowStart, asOf time.Time, windowDays int) []float64 {
	series := make([]float64, windowDays)
	for _, p := range points {
		if !inWindow(p.OccurredAt, windowStart, asOf) {
			continue
		}
		idx := int(p.OccurredAt.Sub(windowStart).Hours() / 24)
		if idx >= windowDays {
			// The window end itself lands in the last bucket.
			idx = windowDays - 1
		}
		if idx < 0 {
			idx = 0
		}
		series[idx] += p.Amount
	}

	return series
}

// comparisonPeriods builds two consecutive windows of the analysis length
// ending at asOf, oldest first, for the margin trend.
func comparisonPeriods(in Inputs, asOf time.Time, windowDays int) []PeriodTotals {
	currentStart := asOf.AddDate(0, 0, -windowDays)
	previousStart := currentStart.AddDate(0, 0, -windowDays)

	return []PeriodTotals{
		buildPeriod(in, previousStart, currentStart),
		buildPeriod(in, currentStart, asOf),
	}
}

func buildPeriod(in Inputs, start, end time.Time) PeriodTotals {
	period := PeriodTotals{
		Label: fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
		Start: start,
	}
	for _, p := range in.RevenuePoints {
		if p.OccurredAt.After(start) && !p.OccurredAt.After(end) {
			period.Revenue += p.Amount
		}
	}
	for _, p := range in.ExpensePoints {
		if p.OccurredAt.After(start) && !p.OccurredAt.After(end) {
			period.Expenses += p.Amount
		}
	}

	return period
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
