package repository

import (
	"context"
	"time"

	"github.com/andresuchdata/forecast-engine/internal/domain"
)

// ForecastDataRepository fetches the raw tenant history the engine consumes.
// The engine itself never touches storage; this boundary is where all I/O
// for a report happens.
type ForecastDataRepository interface {
	GetInventoryItems(ctx context.Context, tenantID string) ([]domain.InventoryItemSnapshot, error)
	GetStockMovements(ctx context.Context, tenantID string, from, to time.Time) ([]domain.StockMovement, error)
	GetRevenuePoints(ctx context.Context, tenantID string, from, to time.Time) ([]domain.RevenuePoint, error)
	GetExpensePoints(ctx context.Context, tenantID string, from, to time.Time) ([]domain.ExpensePoint, error)
	GetCashEvents(ctx context.Context, tenantID string, until time.Time) ([]domain.CashEvent, error)
}
