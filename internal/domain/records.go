package domain

import "time"

// Stock movement types. Only usage movements feed consumption-rate
// estimation; the rest are carried for completeness of the record stream.
const (
	MovementPurchase   = "purchase"
	MovementUsage      = "usage"
	MovementWaste      = "waste"
	MovementAdjustment = "adjustment"
)

// Cash event types.
const (
	CashDeposit    = "deposit"
	CashWithdrawal = "withdrawal"
)

// StockMovement is a single signed stock change for an inventory item.
// Usage and waste may arrive as negative quantities or as magnitudes;
// consumers normalize via absolute value.
type StockMovement struct {
	ItemID     string    `json:"item_id" db:"item_id"`
	Type       string    `json:"type" db:"movement_type"`
	Quantity   float64   `json:"quantity" db:"quantity"`
	UnitCost   *float64  `json:"unit_cost,omitempty" db:"unit_cost"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
}

// InventoryItemSnapshot is the current state of one inventory item as
// supplied by the collaborator layer.
type InventoryItemSnapshot struct {
	ID           string   `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Category     string   `json:"category" db:"category"`
	CurrentStock float64  `json:"current_stock" db:"current_stock"`
	Unit         string   `json:"unit" db:"unit"`
	UnitCost     *float64 `json:"unit_cost,omitempty" db:"unit_cost"`
	SupplierID   *string  `json:"supplier_id,omitempty" db:"supplier_id"`
	SupplierName *string  `json:"supplier_name,omitempty" db:"supplier_name"`
}

// RevenuePoint is a single dated revenue amount (a sale total).
type RevenuePoint struct {
	Amount     float64   `json:"amount" db:"amount"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
}

// ExpensePoint is a single dated expense amount.
type ExpensePoint struct {
	Amount     float64   `json:"amount" db:"amount"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
}

// CashEvent is a bank deposit or withdrawal.
type CashEvent struct {
	Type       string    `json:"type" db:"event_type"`
	Amount     float64   `json:"amount" db:"amount"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
}
