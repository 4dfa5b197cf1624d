package service

import (
	"context"

	"github.com/daehee-lim/fxview/model"
)

// RateSource interface describes
// methods for obtaining exchange rate quotes
type RateSource interface {
	// FetchQuote returns the live quote for the
	// given pair. A quote is fetched fresh on every
	// call; the source never serves cached data.
	FetchQuote(ctx context.Context, pair model.Pair) (model.RateQuote, error)
}
