package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/forecast-engine/internal/cache"
	"github.com/andresuchdata/forecast-engine/internal/domain"
	"github.com/andresuchdata/forecast-engine/internal/forecast"
	"github.com/andresuchdata/forecast-engine/internal/repository"
	"github.com/andresuchdata/forecast-engine/internal/storage"
)

// ForecastService fetches a tenant's history, runs the engine and caches
// the result. The engine stays pure; every piece of I/O for a report lives
// here.
type ForecastService struct {
	repo     repository.ForecastDataRepository
	cache    cache.ReportCache
	archive  *storage.ReportArchive
	defaults forecast.Config
}

func NewForecastService(
	repo repository.ForecastDataRepository,
	cacheImpl cache.ReportCache,
	archive *storage.ReportArchive,
	defaults forecast.Config,
) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &ForecastService{
		repo:     repo,
		cache:    cacheImpl,
		archive:  archive,
		defaults: defaults,
	}
}

// BuildReport returns the forecast report for a tenant as of the given
// time. Overrides with zero values fall back to the service defaults.
func (s *ForecastService) BuildReport(ctx context.Context, tenantID string, asOf time.Time, overrides forecast.Config) (*domain.ForecastReport, error) {
	cfg := s.mergeConfig(overrides)

	if report, ok, err := s.cache.GetReport(ctx, tenantID, asOf, cfg); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID).Msg("forecast: cache get report failed")
	}

	inputs, err := s.fetchInputs(ctx, tenantID, asOf, cfg)
	if err != nil {
		return nil, err
	}

	report, err := forecast.BuildForecastReport(ctx, tenantID, asOf, cfg, inputs)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetReport(ctx, tenantID, asOf, cfg, report); err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID).Msg("forecast: cache set report failed")
	}

	if s.archive != nil {
		if key, err := s.archive.Archive(ctx, report); err != nil {
			log.Warn().Err(err).Str("tenant_id", tenantID).Msg("forecast: report archive failed")
		} else {
			log.Debug().Str("tenant_id", tenantID).Str("key", key).Msg("forecast: report archived")
		}
	}

	return report, nil
}

// fetchInputs gathers the five record collections concurrently; they are
// independent queries against independent tables.
func (s *ForecastService) fetchInputs(ctx context.Context, tenantID string, asOf time.Time, cfg forecast.Config) (forecast.Inputs, error) {
	windowDays := cfg.AnalysisWindowDays
	if windowDays <= 0 {
		windowDays = forecast.DefaultAnalysisWindowDays
	}
	// Margin comparison reaches one window further back than the analysis
	// window itself.
	from := asOf.AddDate(0, 0, -2*windowDays)

	var inputs forecast.Inputs
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inputs.Items, err = s.repo.GetInventoryItems(ctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		inputs.Movements, err = s.repo.GetStockMovements(ctx, tenantID, from, asOf)
		return err
	})
	g.Go(func() error {
		var err error
		inputs.RevenuePoints, err = s.repo.GetRevenuePoints(ctx, tenantID, from, asOf)
		return err
	})
	g.Go(func() error {
		var err error
		inputs.ExpensePoints, err = s.repo.GetExpensePoints(ctx, tenantID, from, asOf)
		return err
	})
	g.Go(func() error {
		var err error
		inputs.CashEvents, err = s.repo.GetCashEvents(ctx, tenantID, asOf)
		return err
	})
	if err := g.Wait(); err != nil {
		return forecast.Inputs{}, err
	}

	return inputs, nil
}

// InvalidateTenant drops any cached reports after the tenant's records
// change.
func (s *ForecastService) InvalidateTenant(ctx context.Context, tenantID string) error {
	return s.cache.InvalidateTenant(ctx, tenantID)
}

func (s *ForecastService) mergeConfig(overrides forecast.Config) forecast.Config {
	cfg := s.defaults
	if overrides.AnalysisWindowDays != 0 {
		cfg.AnalysisWindowDays = overrides.AnalysisWindowDays
	}
	if len(overrides.Horizons) > 0 {
		cfg.Horizons = overrides.Horizons
	}
	if overrides.LeadTimeDays != 0 {
		cfg.LeadTimeDays = overrides.LeadTimeDays
	}
	if overrides.SafetyDays != 0 {
		cfg.SafetyDays = overrides.SafetyDays
	}
	if overrides.StressFactor != 0 {
		cfg.StressFactor = overrides.StressFactor
	}
	if overrides.CIWidth != 0 {
		cfg.CIWidth = overrides.CIWidth
	}

	return cfg
}
