package forecast

import (
	"math"

	"github.com/andresuchdata/forecast-engine/internal/domain"
)

// Scenario names, returned in this fixed order so downstream rendering
// never needs to re-sort.
const (
	ScenarioPessimistic = "pessimistic"
	ScenarioBaseline    = "baseline"
	ScenarioOptimistic  = "optimistic"
)

// ProjectCashRunway projects how long the current balance lasts under three
// scenarios. The pessimistic scenario reduces revenue and increases
// expenses by the stress factor; the optimistic scenario applies the
// inverse adjustment.
func ProjectCashRunway(currentBalance, dailyRevenue, dailyExpenses, stressFactor float64) (domain.CashRunway, error) {
	if dailyRevenue < 0 {
		return domain.CashRunway{}, invalidInput("daily revenue must not be negative, got %g", dailyRevenue)
	}
	if dailyExpenses < 0 {
		return domain.CashRunway{}, invalidInput("daily expenses must not be negative, got %g", dailyExpenses)
	}
	if stressFactor < 0 || stressFactor >= 1 {
		return domain.CashRunway{}, invalidInput("stress factor must be in [0, 1), got %g", stressFactor)
	}

	return domain.CashRunway{
		CurrentBalance: currentBalance,
		Scenarios: []domain.Scenario{
			buildScenario(ScenarioPessimistic, currentBalance, dailyRevenue*(1-stressFactor), dailyExpenses*(1+stressFactor)),
			buildScenario(ScenarioBaseline, currentBalance, dailyRevenue, dailyExpenses),
			buildScenario(ScenarioOptimistic, currentBalance, dailyRevenue*(1+stressFactor), dailyExpenses*(1-stressFactor)),
		},
	}, nil
}

func buildScenario(name string, balance, dailyRevenue, dailyExpenses float64) domain.Scenario {
	scenario := domain.Scenario{
		Name:     name,
		DailyNet: dailyRevenue - dailyExpenses,
	}

	// A non-negative net means the balance never depletes at this rate;
	// DaysUntilZero stays nil.
	if scenario.DailyNet < 0 {
		days := int(math.Ceil(balance / -scenario.DailyNet))
		if days < 0 {
			days = 0
		}
		scenario.DaysUntilZero = &days
	}

	return scenario
}
