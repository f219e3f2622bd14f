package domain

// StockStatus classifies how close an item is to depletion.
type StockStatus string

const (
	StatusCritical StockStatus = "CRITICAL"
	StatusWarning  StockStatus = "WARNING"
	StatusLow      StockStatus = "LOW"
	StatusOK       StockStatus = "OK"
	StatusNoData   StockStatus = "NO_DATA"
)

// Confidence grades how much historical evidence backs a rate estimate.
// It is a data-sufficiency grade, not a statistical confidence level.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Urgency classifies how soon a purchase order must be placed, accounting
// for supplier lead time.
type Urgency string

const (
	UrgencyUrgent    Urgency = "URGENT"
	UrgencySoon      Urgency = "SOON"
	UrgencyPlanAhead Urgency = "PLAN_AHEAD"
)

var urgencyRanks = map[Urgency]int{
	UrgencyUrgent:    0,
	UrgencySoon:      1,
	UrgencyPlanAhead: 2,
}

// UrgencyRank returns the sort rank for an urgency tier (lower is more
// urgent). Unknown values sort last.
func UrgencyRank(u Urgency) int {
	if rank, ok := urgencyRanks[u]; ok {
		return rank
	}

	return len(urgencyRanks)
}

// TrendDirection classifies a short-horizon revenue trend.
type TrendDirection string

const (
	TrendUp   TrendDirection = "UP"
	TrendDown TrendDirection = "DOWN"
	TrendFlat TrendDirection = "FLAT"
)

// MarginDirection classifies a period-over-period margin trend.
type MarginDirection string

const (
	MarginImproving MarginDirection = "IMPROVING"
	MarginDeclining MarginDirection = "DECLINING"
	MarginStable    MarginDirection = "STABLE"
)
