package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"credit-pricing/domain"
	"credit-pricing/pricing"
	"credit-pricing/repository"
)

// ProposalService records quotes the client accepted.
type ProposalService struct {
	engine *pricing.Engine
	repo   repository.ProposalRepository
	log    zerolog.Logger
	now    func() time.Time
}

func NewProposalService(engine *pricing.Engine, repo repository.ProposalRepository, log zerolog.Logger) *ProposalService {
	return &ProposalService{
		engine: engine,
		repo:   repo,
		log:    log.With().Str("component", "proposal_service").Logger(),
		now:    time.Now,
	}
}

// Accept re-prices the request and stores the resulting proposal.
func (s *ProposalService) Accept(ctx context.Context, req domain.QuoteRequest) (domain.Proposal, error) {
	if strings.TrimSpace(req.ClientName) == "" {
		return domain.Proposal{}, domain.NewValidationError("client_name", "is required")
	}
	if err := validateRequest(req); err != nil {
		return domain.Proposal{}, err
	}

	result, err := s.engine.Price(req.Operation, req.Risk)
	if err != nil {
		return domain.Proposal{}, err
	}

	proposal := domain.Proposal{
		ID:               uuid.NewString(),
		ClientName:       strings.TrimSpace(req.ClientName),
		Amount:           req.Operation.Amount,
		TermDays:         result.TermDays,
		IdealRatePct:     result.IdealRatePct,
		CompositeRiskPct: result.CompositeRiskPct,
		RiskClass:        result.RiskClass,
		MarketPosition:   result.MarketComparison,
		CreatedAt:        s.now().UTC(),
	}

	if err := s.repo.Save(ctx, proposal); err != nil {
		return domain.Proposal{}, fmt.Errorf("failed to save proposal: %w", err)
	}

	s.log.Info().
		Str("id", proposal.ID).
		Str("client", proposal.ClientName).
		Float64("ideal_rate_pct", proposal.IdealRatePct).
		Msg("proposal accepted")

	return proposal, nil
}

func (s *ProposalService) Get(ctx context.Context, id string) (domain.Proposal, error) {
	return s.repo.Get(ctx, id)
}

// List returns the most recent proposals. limit is clamped to
// [1, MaxProposalListLimit]; zero means DefaultProposalListLimit.
func (s *ProposalService) List(ctx context.Context, limit int) ([]domain.Proposal, error) {
	switch {
	case limit <= 0:
		limit = DefaultProposalListLimit
	case limit > MaxProposalListLimit:
		limit = MaxProposalListLimit
	}
	return s.repo.List(ctx, limit)
}

// PurgeOlderThan deletes proposals older than the retention window.
func (s *ProposalService) PurgeOlderThan(ctx context.Context, retention time.Duration) (int, error) {
	cutoff := s.now().UTC().Add(-retention)
	removed, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info().Int("removed", removed).Time("cutoff", cutoff).Msg("old proposals purged")
	}
	return removed, nil
}

// ProposalPurgeJob runs PurgeOlderThan on a schedule.
type ProposalPurgeJob struct {
	service       *ProposalService
	retentionDays int
}

func NewProposalPurgeJob(service *ProposalService, retentionDays int) *ProposalPurgeJob {
	return &ProposalPurgeJob{service: service, retentionDays: retentionDays}
}

func (j *ProposalPurgeJob) Name() string { return "proposal_purge" }

func (j *ProposalPurgeJob) Run() error {
	if j.retentionDays <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	_, err := j.service.PurgeOlderThan(ctx, time.Duration(j.retentionDays)*24*time.Hour)
	return err
}
