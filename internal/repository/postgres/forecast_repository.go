package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/forecast-engine/internal/domain"
	"github.com/andresuchdata/forecast-engine/internal/repository"
)

// Querier is the query surface the repository needs. *DB satisfies it with
// semaphore-guarded selects; a bare *sqlx.DB satisfies it for one-off CLI
// runs where there is no concurrent load to bound.
type Querier interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type forecastRepository struct {
	db Querier
}

// NewForecastRepository builds the postgres-backed data source for report
// builds.
func NewForecastRepository(db Querier) repository.ForecastDataRepository {
	return &forecastRepository{db: db}
}

func (r *forecastRepository) GetInventoryItems(ctx context.Context, tenantID string) ([]domain.InventoryItemSnapshot, error) {
	query := `
		SELECT
			i.id,
			i.name,
			i.category,
			i.current_stock,
			i.unit,
			i.unit_cost,
			i.supplier_id,
			s.name AS supplier_name
		FROM inventory_items i
		LEFT JOIN suppliers s ON s.id = i.supplier_id
		WHERE i.tenant_id = $1
		ORDER BY i.id
	`

	var items []domain.InventoryItemSnapshot
	if err := r.db.SelectContext(ctx, &items, query, tenantID); err != nil {
		return nil, fmt.Errorf("error getting inventory items: %w", err)
	}

	return items, nil
}

func (r *forecastRepository) GetStockMovements(ctx context.Context, tenantID string, from, to time.Time) ([]domain.StockMovement, error) {
	query := `
		SELECT item_id, movement_type, quantity, unit_cost, occurred_at
		FROM stock_movements
		WHERE tenant_id = $1
		  AND occurred_at >= $2
		  AND occurred_at <= $3
		ORDER BY occurred_at
	`

	var movements []domain.StockMovement
	if err := r.db.SelectContext(ctx, &movements, query, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("error getting stock movements: %w", err)
	}

	return movements, nil
}

func (r *forecastRepository) GetRevenuePoints(ctx context.Context, tenantID string, from, to time.Time) ([]domain.RevenuePoint, error) {
	query := `
		SELECT total_amount AS amount, occurred_at
		FROM sales
		WHERE tenant_id = $1
		  AND occurred_at >= $2
		  AND occurred_at <= $3
		ORDER BY occurred_at
	`

	var points []domain.RevenuePoint
	if err := r.db.SelectContext(ctx, &points, query, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("error getting revenue points: %w", err)
	}

	return points, nil
}

func (r *forecastRepository) GetExpensePoints(ctx context.Context, tenantID string, from, to time.Time) ([]domain.ExpensePoint, error) {
	query := `
		SELECT amount, occurred_at
		FROM expenses
		WHERE tenant_id = $1
		  AND occurred_at >= $2
		  AND occurred_at <= $3
		ORDER BY occurred_at
	`

	var points []domain.ExpensePoint
	if err := r.db.SelectContext(ctx, &points, query, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("error getting expense points: %w", err)
	}

	return points, nil
}

func (r *forecastRepository) GetCashEvents(ctx context.Context, tenantID string, until time.Time) ([]domain.CashEvent, error) {
	// The balance is cumulative, so cash events are read from the start of
	// history rather than the analysis window.
	query := `
		SELECT event_type, amount, occurred_at
		FROM bank_transactions
		WHERE tenant_id = $1
		  AND occurred_at <= $2
		ORDER BY occurred_at
	`

	var events []domain.CashEvent
	if err := r.db.SelectContext(ctx, &events, query, tenantID, until); err != nil {
		return nil, fmt.Errorf("error getting cash events: %w", err)
	}

	return events, nil
}
