package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-pricing/domain"
	"credit-pricing/pricing"
	"credit-pricing/repository"
	"credit-pricing/service"
)

const quoteBody = `{
	"client_name": "Padaria Central",
	"operation": {
		"amount": 10000,
		"start_date": "2025-03-01",
		"due_date": "2025-03-31",
		"counterparty_rating": 80,
		"desired_margin_pct": 1.0,
		"cost_of_capital_pct": 1.5,
		"competitor_rate_pct": 4.5
	}
}`

func newTestRouter(t *testing.T, capacity int) http.Handler {
	t.Helper()
	log := zerolog.Nop()

	engine := pricing.NewEngine(pricing.StepScorer{}, pricing.ClassFromComposite)
	quotes := service.NewQuoteService(engine, repository.NewMemoryCache(time.Minute), service.NewAIService("", "gpt-4o-mini", log), log)
	proposals := service.NewProposalService(engine, repository.NewProposalRepositoryMemory(), log)

	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(Handlers{
		Quotes:    NewQuoteHandler(quotes, service.NewReportService(quotes), log),
		Proposals: NewProposalHandler(proposals, log),
		Limiter:   limiter,
	}, log)
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t, 10).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestQuoteHandler_OK(t *testing.T) {
	w := postJSON(t, newTestRouter(t, 10), "/quote", quoteBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var quote domain.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, 3.3, quote.Result.IdealRatePct)
	assert.Equal(t, 180.0, quote.Result.ExpectedReturn)
	assert.Equal(t, 30, quote.Result.TermDays)
	assert.Equal(t, domain.BelowMarket, quote.Result.MarketComparison)
	assert.NotEmpty(t, quote.Explanation)
}

func TestQuoteHandler_MethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t, 10).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quote", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestQuoteHandler_BadRequest(t *testing.T) {
	w := postJSON(t, newTestRouter(t, 10), "/quote", `{invalid-json}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuoteHandler_RequiresJSONContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(quoteBody))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	newTestRouter(t, 10).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestQuoteHandler_ValidationErrorCarriesField(t *testing.T) {
	body := strings.Replace(quoteBody, `"counterparty_rating": 80`, `"counterparty_rating": 150`, 1)
	w := postJSON(t, newTestRouter(t, 10), "/quote", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "counterparty_rating", resp.Field)
	assert.NotEmpty(t, resp.Error)
}

func TestQuoteHandler_Batch(t *testing.T) {
	bad := strings.Replace(quoteBody, `"amount": 10000`, `"amount": -1`, 1)
	w := postJSON(t, newTestRouter(t, 10), "/quote/batch", `{"requests":[`+quoteBody+`,`+bad+`]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp batchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	require.NotNil(t, resp.Items[0].Result)
	assert.Equal(t, 3.3, resp.Items[0].Result.IdealRatePct)
	assert.Nil(t, resp.Items[1].Result)
	assert.Equal(t, "amount", resp.Items[1].Field)
}

func TestQuoteHandler_EmptyBatch(t *testing.T) {
	w := postJSON(t, newTestRouter(t, 10), "/quote/batch", `{"requests":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuoteHandler_Report(t *testing.T) {
	h := newTestRouter(t, 10)

	w := postJSON(t, h, "/quote/report?seed=42&samples=300", quoteBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var first map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, "Abaixo do mercado", first["market_position"])
	require.Contains(t, first, "distribution")

	again := postJSON(t, h, "/quote/report?seed=42&samples=300", quoteBody)
	var second map[string]any
	require.NoError(t, json.Unmarshal(again.Body.Bytes(), &second))
	assert.Equal(t, first["distribution"], second["distribution"])

	noSeed := postJSON(t, h, "/quote/report", quoteBody)
	require.Equal(t, http.StatusOK, noSeed.Code)
	assert.NotContains(t, noSeed.Body.String(), `"distribution"`)
}

func TestQuoteHandler_ReportRejectsBadQuery(t *testing.T) {
	h := newTestRouter(t, 10)

	assert.Equal(t, http.StatusBadRequest, postJSON(t, h, "/quote/report?seed=abc", quoteBody).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(t, h, "/quote/report?samples=0", quoteBody).Code)
}

func TestProposalHandler_AcceptGetList(t *testing.T) {
	h := newTestRouter(t, 10)

	w := postJSON(t, h, "/proposals", quoteBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created domain.Proposal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	get := httptest.NewRecorder()
	h.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/proposals/"+created.ID, nil))
	require.Equal(t, http.StatusOK, get.Code)

	var fetched domain.Proposal
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, 3.3, fetched.IdealRatePct)

	list := httptest.NewRecorder()
	h.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/proposals?limit=5", nil))
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"count":1`)
}

func TestProposalHandler_NotFound(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t, 10).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/proposals/unknown", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProposalHandler_BadLimit(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t, 10).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/proposals?limit=x", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimitedRoutes(t *testing.T) {
	h := newTestRouter(t, 2)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, postJSON(t, h, "/quote", quoteBody).Code)
	}

	w := postJSON(t, h, "/quote", quoteBody)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// health stays reachable
	health := httptest.NewRecorder()
	h.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}
