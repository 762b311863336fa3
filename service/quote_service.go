package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"credit-pricing/domain"
	"credit-pricing/pricing"
	"credit-pricing/repository"
)

// Explainer produces a short justification text for a priced quote.
type Explainer interface {
	ExplainQuote(ctx context.Context, quote domain.Quote) string
}

type QuoteService struct {
	engine    *pricing.Engine
	cache     repository.CacheRepository
	explainer Explainer
	log       zerolog.Logger
	now       func() time.Time
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(
	engine *pricing.Engine,
	cache repository.CacheRepository,
	explainer Explainer,
	log zerolog.Logger,
) *QuoteService {
	return &QuoteService{
		engine:    engine,
		cache:     cache,
		explainer: explainer,
		log:       log.With().Str("component", "quote_service").Logger(),
		now:       time.Now,
	}
}

// Quote prices a simulation request, attaching scenarios and an explanation.
// Identical requests are served from the cache.
func (s *QuoteService) Quote(ctx context.Context, req domain.QuoteRequest) (domain.Quote, error) {
	if err := validateRequest(req); err != nil {
		return domain.Quote{}, err
	}

	key, err := repository.Fingerprint(s.cacheNamespace(), req)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to fingerprint quote request")
	} else if cached, ok := s.cache.Get(ctx, key); ok {
		quote, err := repository.DecodeQuote(cached)
		if err == nil {
			quote.CacheHit = true
			return quote, nil
		}
		s.log.Warn().Err(err).Str("key", key).Msg("discarding unreadable cached quote")
	}

	result, err := s.engine.Price(req.Operation, req.Risk)
	if err != nil {
		return domain.Quote{}, err
	}

	quote := domain.Quote{
		Request:     req,
		Result:      result,
		Scenarios:   pricing.Scenarios(req.Operation.Amount, result.DefaultRiskFraction, req.Operation.DesiredMarginPct),
		GeneratedAt: s.now().UTC(),
	}
	quote.Explanation = s.explainer.ExplainQuote(ctx, quote)

	if result.NegativeMargin {
		s.log.Warn().
			Float64("ideal_rate_pct", result.IdealRatePct).
			Float64("cost_of_capital_pct", req.Operation.CostOfCapitalPct).
			Msg("ideal rate below cost of capital")
	}

	// Cache write is not critical
	if key != "" {
		if encoded, err := repository.EncodeQuote(quote); err != nil {
			s.log.Warn().Err(err).Msg("failed to encode quote for cache")
		} else if err := s.cache.Set(ctx, key, encoded); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache quote")
		}
	}

	s.log.Info().
		Str("client", req.ClientName).
		Float64("amount", req.Operation.Amount).
		Float64("ideal_rate_pct", result.IdealRatePct).
		Float64("composite_risk_pct", result.CompositeRiskPct).
		Str("market", string(result.MarketComparison)).
		Msg("quote priced")

	return quote, nil
}

// PriceBatch prices every request independently. Order is preserved and a
// failing item does not affect the others; only cancellation aborts the batch.
func (s *QuoteService) PriceBatch(ctx context.Context, reqs []domain.QuoteRequest) ([]domain.BatchItem, error) {
	if len(reqs) == 0 {
		return nil, domain.NewValidationError("requests", "must not be empty")
	}
	if len(reqs) > MaxBatchSize {
		return nil, domain.NewValidationError("requests", "at most %d per batch, got %d", MaxBatchSize, len(reqs))
	}

	items := make([]domain.BatchItem, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(BatchConcurrency)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = s.priceItem(i, req)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch pricing aborted: %w", err)
	}

	s.log.Info().Int("size", len(reqs)).Msg("batch priced")
	return items, nil
}

func (s *QuoteService) priceItem(index int, req domain.QuoteRequest) domain.BatchItem {
	item := domain.BatchItem{Index: index}

	err := validateRequest(req)
	if err == nil {
		var result domain.PricingResult
		result, err = s.engine.Price(req.Operation, req.Risk)
		if err == nil {
			item.Result = &result
			return item
		}
	}

	item.Error = err.Error()
	if verr, ok := asValidationError(err); ok {
		item.Field = verr.Field
	}
	return item
}

func (s *QuoteService) cacheNamespace() string {
	return s.engine.Scorer().Name() + "-" + string(s.engine.ClassSource())
}

func validateRequest(req domain.QuoteRequest) error {
	if len(req.ClientName) > MaxClientNameLength {
		return domain.NewValidationError("client_name", "longer than %d characters", MaxClientNameLength)
	}
	if req.Operation.Amount > MaxOperationAmount {
		return domain.NewValidationError("amount", "exceeds the maximum of %.2f", MaxOperationAmount)
	}
	return nil
}
