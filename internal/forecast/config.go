package forecast

// Default engine parameters. The thresholds are deliberately simple,
// auditable heuristics carried over from how the business already reasons
// about restocking and cash, not fitted statistical values.
const (
	DefaultAnalysisWindowDays = 30
	DefaultLeadTimeDays       = 5
	DefaultSafetyDays         = 3
	DefaultStressFactor       = 0.20
	DefaultCIWidth            = 1.0
)

// DefaultHorizons are the demand-forecast horizons used when a request does
// not name its own.
func DefaultHorizons() []int {
	return []int{7, 14, 30}
}

// Config enumerates the recognized engine options. The zero value of any
// field means "use the default".
type Config struct {
	AnalysisWindowDays int     `json:"analysis_window_days"`
	Horizons           []int   `json:"horizons"`
	LeadTimeDays       int     `json:"lead_time_days"`
	SafetyDays         int     `json:"safety_days"`
	StressFactor       float64 `json:"stress_factor"`
	CIWidth            float64 `json:"ci_width"`
}

func (c Config) withDefaults() Config {
	if c.AnalysisWindowDays == 0 {
		c.AnalysisWindowDays = DefaultAnalysisWindowDays
	}
	if len(c.Horizons) == 0 {
		c.Horizons = DefaultHorizons()
	}
	if c.LeadTimeDays == 0 {
		c.LeadTimeDays = DefaultLeadTimeDays
	}
	if c.SafetyDays == 0 {
		c.SafetyDays = DefaultSafetyDays
	}
	if c.StressFactor == 0 {
		c.StressFactor = DefaultStressFactor
	}
	if c.CIWidth == 0 {
		c.CIWidth = DefaultCIWidth
	}

	return c
}

// Validate rejects configurations the engine cannot compute with.
func (c Config) Validate() error {
	if c.AnalysisWindowDays <= 0 {
		return invalidInput("analysis window must be positive, got %d days", c.AnalysisWindowDays)
	}
	if c.LeadTimeDays < 0 {
		return invalidInput("lead time must not be negative, got %d days", c.LeadTimeDays)
	}
	if c.SafetyDays < 0 {
		return invalidInput("safety stock days must not be negative, got %d", c.SafetyDays)
	}
	if c.StressFactor < 0 || c.StressFactor >= 1 {
		return invalidInput("stress factor must be in [0, 1), got %g", c.StressFactor)
	}
	if c.CIWidth < 0 {
		return invalidInput("confidence interval width must not be negative, got %g", c.CIWidth)
	}
	for _, h := range c.Horizons {
		if h <= 0 {
			return invalidInput("forecast horizon must be positive, got %d days", h)
		}
	}

	return nil
}
