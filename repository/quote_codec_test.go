package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-pricing/domain"
)

func sampleRequest() domain.QuoteRequest {
	return domain.QuoteRequest{
		ClientName: "Acme Ltda",
		Operation: domain.OperationInput{
			Amount:             10000,
			StartDate:          domain.NewDate(2025, time.March, 1),
			DueDate:            domain.NewDate(2025, time.March, 31),
			CounterpartyRating: 80,
			DesiredMarginPct:   1,
			CostOfCapitalPct:   1.5,
			CompetitorRatePct:  4.5,
		},
		Risk: &domain.ManualRiskInput{CreditScore: 850, CompanyAgeYears: 8, LastRevenue: 600000},
	}
}

func TestFingerprint_StableAndSensitive(t *testing.T) {
	req := sampleRequest()

	a, err := Fingerprint("step", req)
	require.NoError(t, err)
	b, err := Fingerprint("step", sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := Fingerprint("logistic", req)
	require.NoError(t, err)
	assert.NotEqual(t, a, other)

	req.Operation.CounterpartyRating = 79
	changed, err := Fingerprint("step", req)
	require.NoError(t, err)
	assert.NotEqual(t, a, changed)
}

func TestQuoteCodec_PreservesDatesAndRisk(t *testing.T) {
	quote := domain.Quote{
		Request:     sampleRequest(),
		Result:      domain.PricingResult{TermDays: 30, IdealRatePct: 3.3, MarketComparison: domain.BelowMarket},
		GeneratedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	encoded, err := EncodeQuote(quote)
	require.NoError(t, err)

	decoded, err := DecodeQuote(encoded)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-31", decoded.Request.Operation.DueDate.String())
	assert.Equal(t, 30, decoded.Request.Operation.TermDays())
	require.NotNil(t, decoded.Request.Risk)
	assert.Equal(t, 850, decoded.Request.Risk.CreditScore)
	assert.Equal(t, 3.3, decoded.Result.IdealRatePct)
	assert.True(t, decoded.GeneratedAt.Equal(quote.GeneratedAt))

	_, err = DecodeQuote("not msgpack")
	assert.Error(t, err)
}
