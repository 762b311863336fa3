package domain

import "time"

// QuoteRequest is what the form submits for a simulation.
type QuoteRequest struct {
	ClientName string           `json:"client_name"`
	Operation  OperationInput   `json:"operation"`
	Risk       *ManualRiskInput `json:"risk,omitempty"`
}

// Quote is a priced simulation ready to be displayed or exported.
type Quote struct {
	Request     QuoteRequest  `json:"request"`
	Result      PricingResult `json:"result"`
	Scenarios   []Scenario    `json:"scenarios"`
	Explanation string        `json:"explanation,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	CacheHit    bool          `json:"cache_hit"`
}

// BatchItem is the outcome of pricing one request in a batch.
type BatchItem struct {
	Index  int            `json:"index"`
	Result *PricingResult `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
	Field  string         `json:"field,omitempty"`
}
