package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"credit-pricing/domain"
)

// ProposalRepositoryMemory is an in-memory implementation of ProposalRepository.
type ProposalRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.Proposal
}

// NewProposalRepositoryMemory creates a new in-memory proposal repository.
func NewProposalRepositoryMemory() *ProposalRepositoryMemory {
	return &ProposalRepositoryMemory{
		data: []domain.Proposal{},
	}
}

// Save stores the proposal in memory.
func (r *ProposalRepositoryMemory) Save(_ context.Context, proposal domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, proposal)
	return nil
}

func (r *ProposalRepositoryMemory) Get(_ context.Context, id string) (domain.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.data {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Proposal{}, ErrProposalNotFound
}

func (r *ProposalRepositoryMemory) List(_ context.Context, limit int) ([]domain.Proposal, error) {
	r.mu.RLock()
	out := make([]domain.Proposal, len(r.data))
	copy(out, r.data)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ProposalRepositoryMemory) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.data[:0]
	removed := 0
	for _, p := range r.data {
		if p.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	r.data = kept
	return removed, nil
}
