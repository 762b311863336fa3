package http

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"credit-pricing/domain"
	"credit-pricing/report"
	"credit-pricing/service"
)

type QuoteHandler struct {
	quotes  *service.QuoteService
	reports *service.ReportService
	log     zerolog.Logger
}

func NewQuoteHandler(quotes *service.QuoteService, reports *service.ReportService, log zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{
		quotes:  quotes,
		reports: reports,
		log:     log.With().Str("component", "quote_handler").Logger(),
	}
}

type batchRequest struct {
	Requests []domain.QuoteRequest `json:"requests"`
}

type batchResponse struct {
	Items []domain.BatchItem `json:"items"`
}

func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req domain.QuoteRequest
	if !decodeJSON(h.log, w, r, &req) {
		return
	}

	quote, err := h.quotes.Quote(r.Context(), req)
	if err != nil {
		writeServiceError(h.log, w, err)
		return
	}

	writeJSON(h.log, w, http.StatusOK, quote)
}

func (h *QuoteHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeJSON(h.log, w, r, &req) {
		return
	}

	items, err := h.quotes.PriceBatch(r.Context(), req.Requests)
	if err != nil {
		writeServiceError(h.log, w, err)
		return
	}

	writeJSON(h.log, w, http.StatusOK, batchResponse{Items: items})
}

// Report exports a quote report. The rating distribution is included only
// when a seed is given, so the same URL always returns the same histogram.
func (h *QuoteHandler) Report(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.reportOptions(w, r)
	if !ok {
		return
	}

	var req domain.QuoteRequest
	if !decodeJSON(h.log, w, r, &req) {
		return
	}

	rep, err := h.reports.Report(r.Context(), req, opts)
	if err != nil {
		writeServiceError(h.log, w, err)
		return
	}

	writeJSON(h.log, w, http.StatusOK, rep)
}

func (h *QuoteHandler) reportOptions(w http.ResponseWriter, r *http.Request) (report.Options, bool) {
	var opts report.Options
	q := r.URL.Query()

	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeJSON(h.log, w, http.StatusBadRequest, errorResponse{Error: "seed must be a non-negative integer", Field: "seed"})
			return opts, false
		}
		opts.IncludeDistribution = true
		opts.Seed = seed
	}

	if raw := q.Get("samples"); raw != "" {
		samples, err := strconv.Atoi(raw)
		if err != nil || samples <= 0 || samples > report.MaxSamples {
			writeJSON(h.log, w, http.StatusBadRequest, errorResponse{
				Error: "samples must be between 1 and " + strconv.Itoa(report.MaxSamples),
				Field: "samples",
			})
			return opts, false
		}
		opts.Samples = samples
	}

	return opts, true
}
