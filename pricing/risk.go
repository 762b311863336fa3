package pricing

import (
	"fmt"
	"math"

	"credit-pricing/domain"
)

// Factor weights of the composite risk score. They sum to 1.
const (
	WeightCreditScore = 0.40
	WeightCompanyAge  = 0.20
	WeightProtests    = 0.25
	WeightRevenue     = 0.15
)

const (
	FactorCreditScore = "credit_score"
	FactorCompanyAge  = "company_age"
	FactorProtests    = "protests"
	FactorRevenue     = "last_revenue"
)

const (
	StrategyStep     = "step"
	StrategyLogistic = "logistic"
)

// RiskScorer turns manual risk indicators into a composite risk score.
type RiskScorer interface {
	Name() string
	Score(input domain.ManualRiskInput) domain.CompositeRisk
}

// NewRiskScorer returns the scorer registered under name.
func NewRiskScorer(name string) (RiskScorer, error) {
	switch name {
	case StrategyStep, "":
		return StepScorer{}, nil
	case StrategyLogistic:
		return DefaultLogisticScorer(), nil
	default:
		return nil, fmt.Errorf("unknown risk scoring strategy %q", name)
	}
}

// StepScorer scores each factor on a three-level step function.
type StepScorer struct{}

func (StepScorer) Name() string { return StrategyStep }

func (StepScorer) Score(in domain.ManualRiskInput) domain.CompositeRisk {
	var score float64
	switch {
	case in.CreditScore >= 800:
		score = 0
	case in.CreditScore < 600:
		score = 1
	default:
		score = 0.5
	}

	age := 0.5
	if in.CompanyAgeYears >= 5 {
		age = 0
	}

	revenue := 0.5
	if in.LastRevenue >= 500_000 {
		revenue = 0
	}

	return composite(StrategyStep, score, age, protestScore(in.HasProtests), revenue)
}

// LogisticCurve is 1 / (1 + e^(-(Threshold - x) / Scale)): 0.5 at the
// threshold, approaching 1 well below it and 0 well above it.
type LogisticCurve struct {
	Threshold float64
	Scale     float64
}

func (c LogisticCurve) At(x float64) float64 {
	return 1 / (1 + math.Exp(-(c.Threshold-x)/c.Scale))
}

// LogisticScorer smooths the score, age and revenue factors. Protests stay
// binary.
type LogisticScorer struct {
	CreditScore LogisticCurve
	CompanyAge  LogisticCurve
	Revenue     LogisticCurve
}

// DefaultLogisticScorer centres each curve on the step thresholds.
func DefaultLogisticScorer() LogisticScorer {
	return LogisticScorer{
		CreditScore: LogisticCurve{Threshold: 700, Scale: 50},
		CompanyAge:  LogisticCurve{Threshold: 5, Scale: 1.5},
		Revenue:     LogisticCurve{Threshold: 500_000, Scale: 100_000},
	}
}

func (LogisticScorer) Name() string { return StrategyLogistic }

func (s LogisticScorer) Score(in domain.ManualRiskInput) domain.CompositeRisk {
	return composite(StrategyLogistic,
		s.CreditScore.At(float64(in.CreditScore)),
		s.CompanyAge.At(float64(in.CompanyAgeYears)),
		protestScore(in.HasProtests),
		s.Revenue.At(in.LastRevenue),
	)
}

func protestScore(hasProtests bool) float64 {
	if hasProtests {
		return 1
	}
	return 0
}

func composite(strategy string, score, age, protests, revenue float64) domain.CompositeRisk {
	factors := []domain.RiskFactor{
		{Name: FactorCreditScore, Weight: WeightCreditScore, SubScore: score},
		{Name: FactorCompanyAge, Weight: WeightCompanyAge, SubScore: age},
		{Name: FactorProtests, Weight: WeightProtests, SubScore: protests},
		{Name: FactorRevenue, Weight: WeightRevenue, SubScore: revenue},
	}

	var total float64
	for i := range factors {
		factors[i].Contribution = factors[i].Weight * factors[i].SubScore * 100
		total += factors[i].Weight * factors[i].SubScore
	}

	return domain.CompositeRisk{
		Strategy: strategy,
		Pct:      roundTo2Decimals(100 * total),
		Factors:  factors,
	}
}
