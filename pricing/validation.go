package pricing

import (
	"credit-pricing/domain"
)

// MaxCreditScore is the top of the bureau score scale.
const MaxCreditScore = 1000

// ValidateOperation rejects operations outside the formulas' domain.
func ValidateOperation(op domain.OperationInput) error {
	if op.Amount < 0 {
		return domain.NewValidationError("amount", "must not be negative, got %.2f", op.Amount)
	}
	if op.StartDate.IsZero() {
		return domain.NewValidationError("start_date", "is required")
	}
	if op.DueDate.IsZero() {
		return domain.NewValidationError("due_date", "is required")
	}
	if term := op.TermDays(); term < 0 {
		return domain.NewValidationError("due_date", "is %d days before start_date", -term)
	}
	if op.CounterpartyRating < 0 || op.CounterpartyRating > 100 {
		return domain.NewValidationError("counterparty_rating", "must be within [0, 100], got %d", op.CounterpartyRating)
	}
	if op.DesiredMarginPct < 0 {
		return domain.NewValidationError("desired_margin_pct", "must not be negative")
	}
	if op.CostOfCapitalPct < 0 {
		return domain.NewValidationError("cost_of_capital_pct", "must not be negative")
	}
	if op.CompetitorRatePct < 0 {
		return domain.NewValidationError("competitor_rate_pct", "must not be negative")
	}
	return nil
}

// ValidateRisk rejects manual risk indicators outside their domain.
func ValidateRisk(in domain.ManualRiskInput) error {
	if in.CreditScore < 0 || in.CreditScore > MaxCreditScore {
		return domain.NewValidationError("credit_score", "must be within [0, %d], got %d", MaxCreditScore, in.CreditScore)
	}
	if in.CompanyAgeYears < 0 {
		return domain.NewValidationError("company_age_years", "must not be negative")
	}
	if in.LastRevenue < 0 {
		return domain.NewValidationError("last_revenue", "must not be negative")
	}
	return nil
}
