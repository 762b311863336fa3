package repository

import (
	"context"
	"errors"
	"time"

	"credit-pricing/domain"
)

var ErrProposalNotFound = errors.New("proposal not found")

type ProposalRepository interface {
	Save(ctx context.Context, proposal domain.Proposal) error
	Get(ctx context.Context, id string) (domain.Proposal, error)
	// List returns up to limit proposals, newest first.
	List(ctx context.Context, limit int) ([]domain.Proposal, error)
	// DeleteOlderThan removes proposals created before cutoff.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
