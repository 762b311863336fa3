package domain

// MarketPosition classifies the ideal rate against the competitor rate.
type MarketPosition string

const (
	AboveMarket MarketPosition = "ABOVE_MARKET"
	BelowMarket MarketPosition = "BELOW_MARKET"
	AtMarket    MarketPosition = "AT_MARKET"
)

// RiskClass is the coarse risk bucket shown to the analyst.
type RiskClass string

const (
	RiskLow      RiskClass = "LOW"
	RiskModerate RiskClass = "MODERATE"
	RiskHigh     RiskClass = "HIGH"
)

// RiskFactor is one weighted component of the composite risk score.
type RiskFactor struct {
	Name         string  `json:"name"`
	Weight       float64 `json:"weight"`
	SubScore     float64 `json:"sub_score"`
	Contribution float64 `json:"contribution"` // Weight * SubScore * 100
}

// CompositeRisk is the outcome of a risk scoring strategy.
type CompositeRisk struct {
	Strategy string       `json:"strategy"`
	Pct      float64      `json:"pct"`
	Factors  []RiskFactor `json:"factors"`
}

// PricingResult carries raw numeric outputs; formatting belongs to the caller.
type PricingResult struct {
	TermDays            int            `json:"term_days"`
	DefaultRiskFraction float64        `json:"default_risk_fraction"`
	ValueAdjustmentPct  float64        `json:"value_adjustment_pct"`
	IdealRatePct        float64        `json:"ideal_rate_pct"`
	EstimatedMarginPct  float64        `json:"estimated_margin_pct"`
	ExpectedReturn      float64        `json:"expected_return"`
	MinimumPrice        float64        `json:"minimum_price"`
	CompositeRiskPct    float64        `json:"composite_risk_pct"`
	CompositeRisk       *CompositeRisk `json:"composite_risk,omitempty"`
	MarketComparison    MarketPosition `json:"market_comparison"`
	RiskClass           RiskClass      `json:"risk_class"`
	RiskClassSource     string         `json:"risk_class_source"`
	NegativeMargin      bool           `json:"negative_margin"`
}

// Scenario is a minimum price computed under a fixed default-risk fraction.
type Scenario struct {
	Name                string  `json:"name"`
	DefaultRiskFraction float64 `json:"default_risk_fraction"`
	MinimumPrice        float64 `json:"minimum_price"`
}
