// Package report turns priced quotes into export-ready data: locale
// formatted values, factor breakdown, scenario and risk-vs-return tables
// and an optional simulated rating distribution. Rendering to PDF or charts
// is left to the consumer.
package report

import (
	"fmt"
	"time"

	"credit-pricing/domain"
	"credit-pricing/pricing"
)

// Options controls optional report sections.
type Options struct {
	IncludeDistribution bool
	Samples             int
	Seed                uint64
}

// Line is a labelled value with its raw number kept alongside.
type Line struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Raw   float64 `json:"raw"`
	Text  string  `json:"text"`
}

type FactorRow struct {
	Name             string  `json:"name"`
	Weight           float64 `json:"weight"`
	SubScore         float64 `json:"sub_score"`
	Contribution     float64 `json:"contribution"`
	WeightText       string  `json:"weight_text"`
	ContributionText string  `json:"contribution_text"`
}

type ScenarioRow struct {
	Name                string  `json:"name"`
	DefaultRiskFraction float64 `json:"default_risk_fraction"`
	MinimumPrice        float64 `json:"minimum_price"`
	MinimumPriceText    string  `json:"minimum_price_text"`
}

// RiskReturnPoint is the rate and return the same operation would get at
// another rating.
type RiskReturnPoint struct {
	Rating         int     `json:"rating"`
	IdealRatePct   float64 `json:"ideal_rate_pct"`
	ExpectedReturn float64 `json:"expected_return"`
}

type Report struct {
	ClientName     string            `json:"client_name"`
	GeneratedAt    time.Time         `json:"generated_at"`
	Summary        []Line            `json:"summary"`
	MarketPosition string            `json:"market_position"`
	RiskClass      string            `json:"risk_class"`
	Factors        []FactorRow       `json:"factors,omitempty"`
	Scenarios      []ScenarioRow     `json:"scenarios"`
	RiskReturn     []RiskReturnPoint `json:"risk_return"`
	Warnings       []string          `json:"warnings,omitempty"`
	Explanation    string            `json:"explanation,omitempty"`
	Distribution   *Distribution     `json:"distribution,omitempty"`
}

var marketLabels = map[domain.MarketPosition]string{
	domain.AboveMarket: "Acima do mercado",
	domain.BelowMarket: "Abaixo do mercado",
	domain.AtMarket:    "Na média do mercado",
}

var riskLabels = map[domain.RiskClass]string{
	domain.RiskLow:      "Baixo",
	domain.RiskModerate: "Moderado",
	domain.RiskHigh:     "Alto",
}

// Build assembles the report for a quote.
func Build(q domain.Quote, opts Options) Report {
	op := q.Request.Operation
	res := q.Result

	r := Report{
		ClientName:     q.Request.ClientName,
		GeneratedAt:    q.GeneratedAt,
		MarketPosition: marketLabels[res.MarketComparison],
		RiskClass:      riskLabels[res.RiskClass],
		Explanation:    q.Explanation,
		Summary: []Line{
			{Key: "amount", Label: "Valor da operação", Raw: op.Amount, Text: FormatBRL(op.Amount)},
			{Key: "term_days", Label: "Prazo", Raw: float64(res.TermDays), Text: fmt.Sprintf("%d dias", res.TermDays)},
			{Key: "ideal_rate_pct", Label: "Taxa ideal sugerida", Raw: res.IdealRatePct, Text: FormatPercent(res.IdealRatePct)},
			{Key: "estimated_margin_pct", Label: "Margem estimada", Raw: res.EstimatedMarginPct, Text: FormatPercent(res.EstimatedMarginPct)},
			{Key: "expected_return", Label: "Retorno esperado", Raw: res.ExpectedReturn, Text: FormatBRL(res.ExpectedReturn)},
			{Key: "minimum_price", Label: "Preço mínimo", Raw: res.MinimumPrice, Text: FormatBRL(res.MinimumPrice)},
			{Key: "competitor_rate_pct", Label: "Taxa da concorrência", Raw: op.CompetitorRatePct, Text: FormatPercent(op.CompetitorRatePct)},
		},
	}

	if res.CompositeRisk != nil {
		r.Summary = append(r.Summary, Line{
			Key: "composite_risk_pct", Label: "Risco de inadimplência",
			Raw: res.CompositeRiskPct, Text: FormatPercent(res.CompositeRiskPct),
		})
		for _, f := range res.CompositeRisk.Factors {
			r.Factors = append(r.Factors, FactorRow{
				Name:             f.Name,
				Weight:           f.Weight,
				SubScore:         f.SubScore,
				Contribution:     f.Contribution,
				WeightText:       FormatPercent(f.Weight * 100),
				ContributionText: FormatPercent(f.Contribution),
			})
		}
	}

	for _, s := range q.Scenarios {
		r.Scenarios = append(r.Scenarios, ScenarioRow{
			Name:                s.Name,
			DefaultRiskFraction: s.DefaultRiskFraction,
			MinimumPrice:        s.MinimumPrice,
			MinimumPriceText:    FormatBRL(s.MinimumPrice),
		})
	}

	r.RiskReturn = RiskReturnCurve(op)

	if res.NegativeMargin {
		r.Warnings = append(r.Warnings, "Taxa ideal abaixo do custo de capital: retorno esperado negativo")
	}
	if res.TermDays == 0 {
		r.Warnings = append(r.Warnings, "Operação com prazo zero")
	}

	if opts.IncludeDistribution {
		d := SimulateRating(op.CounterpartyRating, opts.Samples, DefaultSigma, DefaultBins, opts.Seed)
		r.Distribution = &d
	}

	return r
}

// RiskReturnCurve prices op at ratings 0, 10, ..., 100.
func RiskReturnCurve(op domain.OperationInput) []RiskReturnPoint {
	points := make([]RiskReturnPoint, 0, 11)
	for rating := 0; rating <= 100; rating += 10 {
		rate := pricing.IdealRate(op.CostOfCapitalPct, op.DesiredMarginPct, pricing.DefaultRiskFraction(rating), op.Amount)
		_, expected := pricing.ExpectedReturn(op.Amount, rate, op.CostOfCapitalPct)
		points = append(points, RiskReturnPoint{Rating: rating, IdealRatePct: rate, ExpectedReturn: expected})
	}
	return points
}
