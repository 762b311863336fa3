package domain

import "time"

// Proposal is an accepted quote kept for follow-up.
type Proposal struct {
	ID               string         `json:"id"`
	ClientName       string         `json:"client_name"`
	Amount           float64        `json:"amount"`
	TermDays         int            `json:"term_days"`
	IdealRatePct     float64        `json:"ideal_rate_pct"`
	CompositeRiskPct float64        `json:"composite_risk_pct"`
	RiskClass        RiskClass      `json:"risk_class"`
	MarketPosition   MarketPosition `json:"market_position"`
	CreatedAt        time.Time      `json:"created_at"`
}
