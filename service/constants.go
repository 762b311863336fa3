package service

import "time"

const (
	MaxOperationAmount  = 1_000_000_000.0 // 1 bilhão
	MaxClientNameLength = 200
	MaxBatchSize        = 500
	BatchConcurrency    = 8 // simultaneous pricings per batch

	DefaultProposalListLimit = 50
	MaxProposalListLimit     = 500

	purgeTimeout = 30 * time.Second
)
