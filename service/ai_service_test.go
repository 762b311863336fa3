package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-pricing/domain"
	"credit-pricing/pricing"
)

func sampleQuote(t *testing.T) domain.Quote {
	t.Helper()
	req := sampleRequest()
	result, err := pricing.NewEngine(nil, "").Price(req.Operation, nil)
	require.NoError(t, err)
	return domain.Quote{Request: req, Result: result}
}

func TestExplainQuote_FallbackWithoutAPIKey(t *testing.T) {
	svc := NewAIService("", "gpt-4o-mini", zerolog.Nop())

	text := svc.ExplainQuote(context.Background(), sampleQuote(t))

	assert.Contains(t, text, "3,30%")
	assert.Contains(t, text, "below the 4,50% market reference")
	assert.Contains(t, text, "R$ 180,00")
	assert.Equal(t, text, svc.ExplainQuote(context.Background(), sampleQuote(t)))
}

func TestExplainQuote_FallbackWarnsOnNegativeMargin(t *testing.T) {
	svc := NewAIService("", "gpt-4o-mini", zerolog.Nop())

	q := sampleQuote(t)
	q.Result.NegativeMargin = true
	q.Result.ExpectedReturn = -50

	text := svc.ExplainQuote(context.Background(), q)
	assert.Contains(t, text, "Warning")
	assert.Contains(t, text, "-R$ 50,00")
}

func TestExplainQuote_UsesChatCompletion(t *testing.T) {
	var got OpenAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Rate is fair."}}]}`))
	}))
	defer server.Close()

	svc := NewAIService("secret", "gpt-4o-mini", zerolog.Nop()).WithEndpoint(server.URL)

	text := svc.ExplainQuote(context.Background(), sampleQuote(t))
	assert.Equal(t, "Rate is fair.", text)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Contains(t, got.Messages[1].Content, "R$ 10.000,00")
}

func TestExplainQuote_FallbackOnAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewAIService("secret", "gpt-4o-mini", zerolog.Nop()).WithEndpoint(server.URL)

	q := sampleQuote(t)
	assert.Equal(t, svc.generateFallbackExplanation(q), svc.ExplainQuote(context.Background(), q))
}

func TestExplainQuote_FallbackOnEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	svc := NewAIService("secret", "gpt-4o-mini", zerolog.Nop()).WithEndpoint(server.URL)

	q := sampleQuote(t)
	assert.Equal(t, svc.generateFallbackExplanation(q), svc.ExplainQuote(context.Background(), q))
}
