package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/forecast-engine/internal/domain"
)

var repoAsOf = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

func TestGetInventoryItemsMapsRows(t *testing.T) {
	db, mock := newMockDB(t, 2)
	repo := NewForecastRepository(db)

	mock.ExpectQuery("FROM inventory_items").
		WithArgs("tenant-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "category", "current_stock", "unit", "unit_cost", "supplier_id", "supplier_name",
		}).
			AddRow("flour", "Wheat flour", "dry", 90.0, "kg", 1000.0, "sup-1", "Mill Co").
			AddRow("saffron", "Saffron", "spice", 5.0, "g", nil, nil, nil))

	items, err := repo.GetInventoryItems(context.Background(), "tenant-1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "flour", items[0].ID)
	require.NotNil(t, items[0].UnitCost)
	assert.InDelta(t, 1000.0, *items[0].UnitCost, 1e-9)
	require.NotNil(t, items[0].SupplierName)
	assert.Equal(t, "Mill Co", *items[0].SupplierName)

	assert.Equal(t, "saffron", items[1].ID)
	assert.Nil(t, items[1].UnitCost)
	assert.Nil(t, items[1].SupplierName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStockMovementsPassesRange(t *testing.T) {
	db, mock := newMockDB(t, 2)
	repo := NewForecastRepository(db)

	from := repoAsOf.AddDate(0, 0, -30)
	mock.ExpectQuery("FROM stock_movements").
		WithArgs("tenant-1", from, repoAsOf).
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "movement_type", "quantity", "unit_cost", "occurred_at"}).
			AddRow("flour", domain.MovementUsage, -3.6, nil, repoAsOf.AddDate(0, 0, -1)))

	movements, err := repo.GetStockMovements(context.Background(), "tenant-1", from, repoAsOf)
	require.NoError(t, err)
	require.Len(t, movements, 1)

	assert.Equal(t, domain.MovementUsage, movements[0].Type)
	assert.InDelta(t, -3.6, movements[0].Quantity, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCashEventsReadsFullHistory(t *testing.T) {
	db, mock := newMockDB(t, 2)
	repo := NewForecastRepository(db)

	mock.ExpectQuery("FROM bank_transactions").
		WithArgs("tenant-1", repoAsOf).
		WillReturnRows(sqlmock.NewRows([]string{"event_type", "amount", "occurred_at"}).
			AddRow(domain.CashDeposit, 1_500_000.0, repoAsOf.AddDate(0, 0, -90)).
			AddRow(domain.CashWithdrawal, 500_000.0, repoAsOf.AddDate(0, 0, -45)))

	events, err := repo.GetCashEvents(context.Background(), "tenant-1", repoAsOf)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, domain.CashDeposit, events[0].Type)
	assert.Equal(t, domain.CashWithdrawal, events[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
