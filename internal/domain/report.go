package domain

import "time"

// StockForecast is the depletion outlook for one inventory item.
// DaysUntilDepletion and DepletionDate are nil when usage is zero: the item
// cannot be forecast at the current rate, which is a valid state, not an
// error.
type StockForecast struct {
	ItemID             string      `json:"item_id"`
	ItemName           string      `json:"item_name"`
	Category           string      `json:"category,omitempty"`
	Unit               string      `json:"unit,omitempty"`
	CurrentStock       float64     `json:"current_stock"`
	DailyAverageUsage  float64     `json:"daily_average_usage"`
	DaysUntilDepletion *int        `json:"days_until_depletion"`
	DepletionDate      *time.Time  `json:"depletion_date"`
	Status             StockStatus `json:"status"`
	Confidence         Confidence  `json:"confidence"`
	MovementCount      int         `json:"movement_count"`
}

// ReorderRecommendation is a suggested purchase order for one item.
type ReorderRecommendation struct {
	ItemID                   string  `json:"item_id"`
	ItemName                 string  `json:"item_name"`
	SupplierName             *string `json:"supplier_name,omitempty"`
	RecommendedOrderQuantity float64 `json:"recommended_order_quantity"`
	EstimatedCost            float64 `json:"estimated_cost"`
	Urgency                  Urgency `json:"urgency"`
	DaysUntilDepletion       *int    `json:"days_until_depletion"`
}

// Scenario is one named cash-flow assumption applied to the runway formula.
// DaysUntilZero is nil when the balance never depletes at the assumed rate.
type Scenario struct {
	Name          string  `json:"name"`
	DailyNet      float64 `json:"daily_net"`
	DaysUntilZero *int    `json:"days_until_zero"`
}

// CashRunway is the multi-scenario projection of a cash balance.
type CashRunway struct {
	CurrentBalance float64    `json:"current_balance"`
	Scenarios      []Scenario `json:"scenarios"`
}

// ConfidenceInterval bounds an expected-revenue forecast.
type ConfidenceInterval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// DemandForecast is the expected revenue over one horizon.
type DemandForecast struct {
	HorizonDays        int                `json:"horizon_days"`
	ExpectedRevenue    float64            `json:"expected_revenue"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	Trend              TrendDirection     `json:"trend"`
	TrendPercentage    float64            `json:"trend_percentage"`
}

// PeriodMargin is the margin achieved in one labelled period.
type PeriodMargin struct {
	Period string  `json:"period"`
	Margin float64 `json:"margin"`
}

// MarginTrend compares margins across consecutive periods.
type MarginTrend struct {
	CurrentMargin    float64         `json:"current_margin"`
	Trend            MarginDirection `json:"trend"`
	PeriodComparison []PeriodMargin  `json:"period_comparison"`
}

// ForecastReport bundles every forecast section for one tenant as of a
// single point in time.
type ForecastReport struct {
	TenantID               string                  `json:"tenant_id"`
	AsOf                   time.Time               `json:"as_of"`
	AnalysisWindowDays     int                     `json:"analysis_window_days"`
	StockForecasts         []StockForecast         `json:"stock_forecasts"`
	ReorderRecommendations []ReorderRecommendation `json:"reorder_recommendations"`
	CashRunway             CashRunway              `json:"cash_runway"`
	DemandForecasts        []DemandForecast        `json:"demand_forecasts"`
	MarginTrend            MarginTrend             `json:"margin_trend"`
}
