package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-pricing/domain"
	"credit-pricing/pricing"
)

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", FormatBRL(1234.56))
	assert.Equal(t, "R$ 180,00", FormatBRL(180))
	assert.Equal(t, "R$ 0,00", FormatBRL(0))
	assert.Equal(t, "R$ 1.000.000,00", FormatBRL(1_000_000))
	assert.Equal(t, "-R$ 50,00", FormatBRL(-50))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "3,30%", FormatPercent(3.3))
	assert.Equal(t, "82,50%", FormatPercent(82.5))
	assert.Equal(t, "-0,50%", FormatPercent(-0.5))
}

func pricedQuote(t *testing.T, risk *domain.ManualRiskInput) domain.Quote {
	op := domain.OperationInput{
		Amount:             10000,
		StartDate:          domain.NewDate(2025, time.March, 1),
		DueDate:            domain.NewDate(2025, time.March, 31),
		CounterpartyRating: 80,
		DesiredMarginPct:   1,
		CostOfCapitalPct:   1.5,
		CompetitorRatePct:  4.5,
	}
	result, err := pricing.NewEngine(pricing.StepScorer{}, pricing.ClassFromComposite).Price(op, risk)
	require.NoError(t, err)

	return domain.Quote{
		Request:     domain.QuoteRequest{ClientName: "Acme Ltda", Operation: op, Risk: risk},
		Result:      result,
		Scenarios:   pricing.Scenarios(op.Amount, result.DefaultRiskFraction, op.DesiredMarginPct),
		Explanation: "ok",
		GeneratedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuild_Summary(t *testing.T) {
	risk := &domain.ManualRiskInput{CreditScore: 500, CompanyAgeYears: 2, HasProtests: true, LastRevenue: 100000}
	r := Build(pricedQuote(t, risk), Options{})

	assert.Equal(t, "Acme Ltda", r.ClientName)
	assert.Equal(t, "Abaixo do mercado", r.MarketPosition)
	assert.Equal(t, "Alto", r.RiskClass)

	lines := map[string]Line{}
	for _, l := range r.Summary {
		lines[l.Key] = l
	}
	assert.Equal(t, "3,30%", lines["ideal_rate_pct"].Text)
	assert.Equal(t, 3.3, lines["ideal_rate_pct"].Raw)
	assert.Equal(t, "R$ 180,00", lines["expected_return"].Text)
	assert.Equal(t, "30 dias", lines["term_days"].Text)
	assert.Equal(t, "82,50%", lines["composite_risk_pct"].Text)

	require.Len(t, r.Factors, 4)
	assert.Equal(t, "40,00%", r.Factors[0].WeightText)

	require.Len(t, r.Scenarios, 3)
	assert.Equal(t, "R$ 10.100,00", r.Scenarios[0].MinimumPriceText)
	assert.Equal(t, "R$ 20.200,00", r.Scenarios[2].MinimumPriceText)

	assert.Empty(t, r.Warnings)
	assert.Nil(t, r.Distribution)
}

func TestBuild_WithoutManualRiskHasNoFactors(t *testing.T) {
	r := Build(pricedQuote(t, nil), Options{})

	assert.Empty(t, r.Factors)
	assert.Equal(t, "Baixo", r.RiskClass)
}

func TestRiskReturnCurve_RateFallsAsRatingRises(t *testing.T) {
	q := pricedQuote(t, nil)
	curve := RiskReturnCurve(q.Request.Operation)

	require.Len(t, curve, 11)
	assert.Equal(t, 0, curve[0].Rating)
	assert.Equal(t, 100, curve[10].Rating)
	for i := 1; i < len(curve); i++ {
		assert.LessOrEqual(t, curve[i].IdealRatePct, curve[i-1].IdealRatePct)
	}
	assert.Equal(t, 3.3, curve[8].IdealRatePct)
}

func TestBuild_Distribution(t *testing.T) {
	r := Build(pricedQuote(t, nil), Options{IncludeDistribution: true, Samples: 500, Seed: 42})

	require.NotNil(t, r.Distribution)
	assert.Equal(t, 500, r.Distribution.Samples)
	assert.Equal(t, uint64(42), r.Distribution.Seed)
}

func TestSimulateRating_Deterministic(t *testing.T) {
	a := SimulateRating(80, 500, 10, 10, 7)
	b := SimulateRating(80, 500, 10, 10, 7)
	c := SimulateRating(80, 500, 10, 10, 8)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Bins, c.Bins)
}

func TestSimulateRating_Shape(t *testing.T) {
	d := SimulateRating(80, 2000, 10, 10, 1)

	require.Len(t, d.Bins, 10)
	total := 0
	for i, b := range d.Bins {
		total += b.Count
		assert.InDelta(t, float64(i)*10, b.Lower, 1e-9)
	}
	assert.Equal(t, 2000, total)
	assert.Equal(t, 100.0, d.Bins[9].Upper)
	assert.InDelta(t, 80, d.Mean, 2)
	assert.GreaterOrEqual(t, d.Mean, 0.0)
	assert.LessOrEqual(t, d.Mean, 100.0)
}

func TestSimulateRating_ClampsAtScaleEdges(t *testing.T) {
	d := SimulateRating(100, 1000, 10, 10, 3)

	total := 0
	for _, b := range d.Bins {
		total += b.Count
	}
	assert.Equal(t, 1000, total)
	assert.Greater(t, d.Bins[9].Count, 400)
}

func TestSimulateRating_Defaults(t *testing.T) {
	d := SimulateRating(50, 0, 0, 0, 0)

	assert.Equal(t, DefaultSamples, d.Samples)
	assert.Equal(t, DefaultSigma, d.Sigma)
	assert.Len(t, d.Bins, DefaultBins)
}
