package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/forecast-engine/internal/domain"
	"github.com/andresuchdata/forecast-engine/internal/forecast"
)

var serviceAsOf = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

type stubRepository struct {
	items     []domain.InventoryItemSnapshot
	movements []domain.StockMovement
	revenue   []domain.RevenuePoint
	expenses  []domain.ExpensePoint
	cash      []domain.CashEvent

	err   error
	calls int
}

func (s *stubRepository) GetInventoryItems(ctx context.Context, tenantID string) ([]domain.InventoryItemSnapshot, error) {
	s.calls++
	return s.items, s.err
}

func (s *stubRepository) GetStockMovements(ctx context.Context, tenantID string, from, to time.Time) ([]domain.StockMovement, error) {
	return s.movements, s.err
}

func (s *stubRepository) GetRevenuePoints(ctx context.Context, tenantID string, from, to time.Time) ([]domain.RevenuePoint, error) {
	return s.revenue, s.err
}

func (s *stubRepository) GetExpensePoints(ctx context.Context, tenantID string, from, to time.Time) ([]domain.ExpensePoint, error) {
	return s.expenses, s.err
}

func (s *stubRepository) GetCashEvents(ctx context.Context, tenantID string, until time.Time) ([]domain.CashEvent, error) {
	return s.cash, s.err
}

type stubCache struct {
	report *domain.ForecastReport
	sets   int
}

func (s *stubCache) GetReport(ctx context.Context, tenantID string, asOf time.Time, cfg forecast.Config) (*domain.ForecastReport, bool, error) {
	if s.report == nil {
		return nil, false, nil
	}
	return s.report, true, nil
}

func (s *stubCache) SetReport(ctx context.Context, tenantID string, asOf time.Time, cfg forecast.Config, report *domain.ForecastReport) error {
	s.sets++
	s.report = report
	return nil
}

func (s *stubCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	s.report = nil
	return nil
}

func TestBuildReportFetchesAndCaches(t *testing.T) {
	repo := &stubRepository{
		items: []domain.InventoryItemSnapshot{
			{ID: "flour", Name: "Flour", Category: "dry", CurrentStock: 90, Unit: "kg"},
		},
		movements: []domain.StockMovement{
			{ItemID: "flour", Type: domain.MovementUsage, Quantity: -30, OccurredAt: serviceAsOf.AddDate(0, 0, -1)},
		},
		cash: []domain.CashEvent{
			{Type: domain.CashDeposit, Amount: 1000, OccurredAt: serviceAsOf.AddDate(0, 0, -10)},
		},
	}
	cache := &stubCache{}
	svc := NewForecastService(repo, cache, nil, forecast.Config{})

	report, err := svc.BuildReport(context.Background(), "tenant-1", serviceAsOf, forecast.Config{})
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, "tenant-1", report.TenantID)
	assert.Equal(t, forecast.DefaultAnalysisWindowDays, report.AnalysisWindowDays)
	require.Len(t, report.StockForecasts, 1)
	assert.Equal(t, "flour", report.StockForecasts[0].ItemID)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 1, repo.calls)
}

func TestBuildReportServesFromCache(t *testing.T) {
	repo := &stubRepository{}
	cached := &domain.ForecastReport{TenantID: "tenant-1", AsOf: serviceAsOf}
	cache := &stubCache{report: cached}
	svc := NewForecastService(repo, cache, nil, forecast.Config{})

	report, err := svc.BuildReport(context.Background(), "tenant-1", serviceAsOf, forecast.Config{})
	require.NoError(t, err)

	assert.Same(t, cached, report)
	assert.Zero(t, repo.calls)
	assert.Zero(t, cache.sets)
}

func TestBuildReportRepositoryError(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &stubRepository{err: repoErr}
	svc := NewForecastService(repo, nil, nil, forecast.Config{})

	_, err := svc.BuildReport(context.Background(), "tenant-1", serviceAsOf, forecast.Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
}

func TestBuildReportInvalidOverrides(t *testing.T) {
	svc := NewForecastService(&stubRepository{}, nil, nil, forecast.Config{})

	_, err := svc.BuildReport(context.Background(), "tenant-1", serviceAsOf, forecast.Config{AnalysisWindowDays: -5})
	require.Error(t, err)
	assert.ErrorIs(t, err, forecast.ErrInvalidInput)
}

func TestMergeConfigOverrides(t *testing.T) {
	svc := NewForecastService(&stubRepository{}, nil, nil, forecast.Config{
		AnalysisWindowDays: 30,
		Horizons:           []int{7, 14, 30},
		LeadTimeDays:       5,
		SafetyDays:         3,
		StressFactor:       0.2,
		CIWidth:            1.0,
	})

	merged := svc.mergeConfig(forecast.Config{AnalysisWindowDays: 60, Horizons: []int{7}})

	assert.Equal(t, 60, merged.AnalysisWindowDays)
	assert.Equal(t, []int{7}, merged.Horizons)
	assert.Equal(t, 5, merged.LeadTimeDays)
	assert.Equal(t, 3, merged.SafetyDays)
	assert.InDelta(t, 0.2, merged.StressFactor, 1e-9)
	assert.InDelta(t, 1.0, merged.CIWidth, 1e-9)
}
