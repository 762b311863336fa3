// Package pricing implements the anticipation pricing and risk formulas.
// Every function here is pure and safe for concurrent use.
package pricing

import (
	"math"

	"credit-pricing/domain"
)

const (
	// RiskRateFactor converts the default-risk fraction into rate points.
	RiskRateFactor = 2.0
	// MaxValueAdjustment is the surcharge applied to a zero-amount operation.
	MaxValueAdjustment = 0.5
	// ValueAdjustmentBase is the amount at which the surcharge reaches zero.
	ValueAdjustmentBase = 100_000.0
	// MarketBand is the dead zone, in rate points, around the competitor rate.
	MarketBand = 0.05
)

// roundTo2Decimals rounds half away from zero to two decimal places.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// DefaultRiskFraction maps a 0-100 rating onto a 0-1 risk fraction.
func DefaultRiskFraction(rating int) float64 {
	return float64(100-rating) / 100
}

// ValueAdjustment is the size surcharge in rate points: 0.5 at zero,
// falling linearly to 0 at ValueAdjustmentBase and beyond.
func ValueAdjustment(amount float64) float64 {
	return math.Max(MaxValueAdjustment-amount/ValueAdjustmentBase, 0)
}

// IdealRate returns the suggested rate in percent.
func IdealRate(costOfCapitalPct, desiredMarginPct, riskFraction, amount float64) float64 {
	return roundTo2Decimals(costOfCapitalPct + desiredMarginPct +
		riskFraction*RiskRateFactor + ValueAdjustment(amount))
}

// ExpectedReturn returns the margin over cost of capital and the money it
// yields on amount. A negative margin is returned as is.
func ExpectedReturn(amount, idealRatePct, costOfCapitalPct float64) (marginPct, expectedReturn float64) {
	marginPct = roundTo2Decimals(idealRatePct - costOfCapitalPct)
	expectedReturn = roundTo2Decimals(amount * marginPct / 100)
	return marginPct, expectedReturn
}

// MinimumPrice inflates amount by the risk fraction and then by the margin.
func MinimumPrice(amount, riskFraction, desiredMarginPct float64) float64 {
	return amount * (1 + riskFraction) * (1 + desiredMarginPct/100)
}

// ClassifyMarket compares the ideal rate with the competitor rate. Differences
// of exactly MarketBand fall inside the band.
func ClassifyMarket(idealRatePct, competitorRatePct float64) domain.MarketPosition {
	// rounded so that 4.55 - 4.5 compares as 0.05 and not 0.0499999
	diff := math.Round((idealRatePct-competitorRatePct)*1e6) / 1e6
	switch {
	case diff > MarketBand:
		return domain.AboveMarket
	case diff < -MarketBand:
		return domain.BelowMarket
	default:
		return domain.AtMarket
	}
}

// ClassifyComposite buckets a composite risk percentage.
func ClassifyComposite(compositeRiskPct float64) domain.RiskClass {
	switch {
	case compositeRiskPct <= 30:
		return domain.RiskLow
	case compositeRiskPct <= 60:
		return domain.RiskModerate
	default:
		return domain.RiskHigh
	}
}

// ClassifyRating buckets a counterparty rating.
func ClassifyRating(rating int) domain.RiskClass {
	switch {
	case rating >= 80:
		return domain.RiskLow
	case rating >= 60:
		return domain.RiskModerate
	default:
		return domain.RiskHigh
	}
}

// Scenarios returns the best case, current and worst case minimum prices.
func Scenarios(amount, riskFraction, desiredMarginPct float64) []domain.Scenario {
	return []domain.Scenario{
		{Name: "best_case", DefaultRiskFraction: 0, MinimumPrice: MinimumPrice(amount, 0, desiredMarginPct)},
		{Name: "current", DefaultRiskFraction: riskFraction, MinimumPrice: MinimumPrice(amount, riskFraction, desiredMarginPct)},
		{Name: "worst_case", DefaultRiskFraction: 1, MinimumPrice: MinimumPrice(amount, 1, desiredMarginPct)},
	}
}
