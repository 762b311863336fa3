package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"credit-pricing/domain"
	"credit-pricing/service"
)

type ProposalHandler struct {
	service *service.ProposalService
	log     zerolog.Logger
}

func NewProposalHandler(service *service.ProposalService, log zerolog.Logger) *ProposalHandler {
	return &ProposalHandler{
		service: service,
		log:     log.With().Str("component", "proposal_handler").Logger(),
	}
}

func (h *ProposalHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req domain.QuoteRequest
	if !decodeJSON(h.log, w, r, &req) {
		return
	}

	proposal, err := h.service.Accept(r.Context(), req)
	if err != nil {
		writeServiceError(h.log, w, err)
		return
	}

	writeJSON(h.log, w, http.StatusCreated, proposal)
}

func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(h.log, w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer", Field: "limit"})
			return
		}
		limit = n
	}

	proposals, err := h.service.List(r.Context(), limit)
	if err != nil {
		writeServiceError(h.log, w, err)
		return
	}
	if proposals == nil {
		proposals = []domain.Proposal{}
	}

	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"proposals": proposals,
		"count":     len(proposals),
	})
}

func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	proposal, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(h.log, w, err)
		return
	}

	writeJSON(h.log, w, http.StatusOK, proposal)
}
