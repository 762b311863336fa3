package pricing

import (
	"fmt"

	"credit-pricing/domain"
)

// RiskClassSource selects what the risk class is derived from.
type RiskClassSource string

const (
	// ClassFromComposite uses the composite risk when manual risk is given and
	// falls back to the rating otherwise.
	ClassFromComposite RiskClassSource = "composite"
	// ClassFromRating always uses the counterparty rating.
	ClassFromRating RiskClassSource = "rating"
)

// ParseRiskClassSource validates a configured source name.
func ParseRiskClassSource(s string) (RiskClassSource, error) {
	switch RiskClassSource(s) {
	case ClassFromComposite, "":
		return ClassFromComposite, nil
	case ClassFromRating:
		return ClassFromRating, nil
	default:
		return "", fmt.Errorf("unknown risk class source %q", s)
	}
}

// Engine prices operations with a fixed scoring strategy. It holds no
// mutable state.
type Engine struct {
	scorer      RiskScorer
	classSource RiskClassSource
}

// NewEngine creates an Engine. A nil scorer means StepScorer.
func NewEngine(scorer RiskScorer, classSource RiskClassSource) *Engine {
	if scorer == nil {
		scorer = StepScorer{}
	}
	if classSource == "" {
		classSource = ClassFromComposite
	}
	return &Engine{scorer: scorer, classSource: classSource}
}

// Scorer returns the configured risk scorer.
func (e *Engine) Scorer() RiskScorer {
	return e.scorer
}

// ClassSource returns where the risk class is derived from.
func (e *Engine) ClassSource() RiskClassSource {
	return e.classSource
}

// Price validates the inputs and computes the full pricing result. risk may
// be nil.
func (e *Engine) Price(op domain.OperationInput, risk *domain.ManualRiskInput) (domain.PricingResult, error) {
	if err := ValidateOperation(op); err != nil {
		return domain.PricingResult{}, err
	}
	if risk != nil {
		if err := ValidateRisk(*risk); err != nil {
			return domain.PricingResult{}, err
		}
	}

	riskFraction := DefaultRiskFraction(op.CounterpartyRating)
	idealRate := IdealRate(op.CostOfCapitalPct, op.DesiredMarginPct, riskFraction, op.Amount)
	margin, expected := ExpectedReturn(op.Amount, idealRate, op.CostOfCapitalPct)

	result := domain.PricingResult{
		TermDays:            op.TermDays(),
		DefaultRiskFraction: riskFraction,
		ValueAdjustmentPct:  ValueAdjustment(op.Amount),
		IdealRatePct:        idealRate,
		EstimatedMarginPct:  margin,
		ExpectedReturn:      expected,
		MinimumPrice:        MinimumPrice(op.Amount, riskFraction, op.DesiredMarginPct),
		MarketComparison:    ClassifyMarket(idealRate, op.CompetitorRatePct),
		NegativeMargin:      margin < 0,
	}

	if risk != nil {
		composite := e.scorer.Score(*risk)
		result.CompositeRisk = &composite
		result.CompositeRiskPct = composite.Pct
	}

	if risk != nil && e.classSource == ClassFromComposite {
		result.RiskClass = ClassifyComposite(result.CompositeRiskPct)
		result.RiskClassSource = string(ClassFromComposite)
	} else {
		result.RiskClass = ClassifyRating(op.CounterpartyRating)
		result.RiskClassSource = string(ClassFromRating)
	}

	return result, nil
}
