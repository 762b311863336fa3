package domain

// OperationInput holds the parameters of one anticipation operation.
type OperationInput struct {
	Amount             float64 `json:"amount"`
	StartDate          Date    `json:"start_date"`
	DueDate            Date    `json:"due_date"`
	CounterpartyRating int     `json:"counterparty_rating"` // 0 = highest risk, 100 = lowest
	DesiredMarginPct   float64 `json:"desired_margin_pct"`
	CostOfCapitalPct   float64 `json:"cost_of_capital_pct"`
	CompetitorRatePct  float64 `json:"competitor_rate_pct"`
}

// TermDays returns the number of calendar days between start and due date.
// It is negative when the dates are inverted.
func (o OperationInput) TermDays() int {
	return o.DueDate.DaysSince(o.StartDate)
}

// ManualRiskInput holds the credit indicators typed in by the analyst or
// supplied by a bureau.
type ManualRiskInput struct {
	CreditScore     int     `json:"credit_score"`
	CompanyAgeYears int     `json:"company_age_years"`
	HasProtests     bool    `json:"has_protests"`
	LastRevenue     float64 `json:"last_revenue"`
}
