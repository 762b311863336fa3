package repository

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"

	"credit-pricing/domain"
)

// Fingerprint derives a stable cache key for a quote request and the scoring
// strategy it is priced with.
func Fingerprint(strategy string, req domain.QuoteRequest) (string, error) {
	payload, err := msgpack.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode quote request: %w", err)
	}
	return "quote:" + strategy + ":" + strconv.FormatUint(xxhash.Sum64(payload), 16), nil
}

// EncodeQuote serializes a quote for a CacheRepository.
func EncodeQuote(q domain.Quote) (string, error) {
	b, err := msgpack.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("failed to encode quote: %w", err)
	}
	return string(b), nil
}

// DecodeQuote reverses EncodeQuote.
func DecodeQuote(s string) (domain.Quote, error) {
	var q domain.Quote
	if err := msgpack.Unmarshal([]byte(s), &q); err != nil {
		return domain.Quote{}, fmt.Errorf("failed to decode quote: %w", err)
	}
	return q, nil
}
