package storage

import (
	"context"

	"github.com/daehee-lim/fxview/model"
)

// QuoteLog interface describes the persistence
// layer that keeps an audit trail of every quote
// fetched from the upstream rate API
type QuoteLog interface {
	// Record stores one fetched quote
	Record(ctx context.Context, q model.RateQuote) error

	// Recent returns up to limit of the most recently
	// recorded quotes for the given pair, newest first
	Recent(ctx context.Context, pair model.Pair, limit int) ([]model.RateQuote, error)
}
