package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daehee-lim/fxview/amount"
	"github.com/daehee-lim/fxview/model"
)

var (
	usdKRW = model.Pair{Source: model.USD, Destination: model.KRW}
	eurJPY = model.Pair{Source: model.EUR, Destination: model.JPY}
)

func readySession(t *testing.T, rate float64) *Session {
	t.Helper()

	s := newSession("test", usdKRW)

	gen, err := s.BeginLoad(usdKRW)
	require.NoError(t, err)

	applied := s.ApplyQuote(gen, model.RateQuote{
		Pair:      usdKRW,
		Rate:      rate,
		APISource: "USD",
		FetchedAt: 1700000000,
	}, nil)
	require.True(t, applied)

	return s
}

func TestSessionStartsIdle(t *testing.T) {
	s := newSession("test", usdKRW)

	view := s.View()
	assert.Equal(t, PhaseIdle, view.Phase)
	assert.Equal(t, "0", view.Amount)
	assert.Empty(t, view.Balance)
	assert.Empty(t, view.Result)
}

func TestBeginLoadResetsScreen(t *testing.T) {
	s := readySession(t, 1300.0)

	s.SetAmount("500")
	_, err := s.Convert()
	require.NoError(t, err)
	require.NotEmpty(t, s.View().Result)

	_, err = s.BeginLoad(eurJPY)
	require.NoError(t, err)

	view := s.View()
	assert.Equal(t, PhaseLoading, view.Phase)
	assert.Equal(t, eurJPY, view.Pair)
	assert.Equal(t, "0", view.Amount, "amount resets on pair change")
	assert.Empty(t, view.Result, "result cleared on pair change")
	assert.Empty(t, view.Balance, "prior quote discarded on pair change")
	assert.Empty(t, view.QuoteAt)
}

func TestBeginLoadRejectsInvalidPair(t *testing.T) {
	s := newSession("test", usdKRW)

	_, err := s.BeginLoad(model.Pair{Source: model.USD, Destination: model.USD})
	require.ErrorIs(t, err, model.ErrSamePair)

	assert.Equal(t, PhaseIdle, s.View().Phase)
}

func TestApplyQuoteReady(t *testing.T) {
	s := readySession(t, 1300.0)

	view := s.View()
	assert.Equal(t, PhaseReady, view.Phase)
	assert.Equal(t, "1300.00 KRW / USD", view.Balance)
	assert.Equal(t, "2023-11-14 / 22:13:20", view.QuoteAt)
	assert.Empty(t, view.Error)
}

func TestApplyQuoteFailure(t *testing.T) {
	s := newSession("test", usdKRW)

	gen, err := s.BeginLoad(usdKRW)
	require.NoError(t, err)

	applied := s.ApplyQuote(gen, model.RateQuote{}, errors.New("connection refused"))
	require.True(t, applied)

	view := s.View()
	assert.Equal(t, PhaseFailed, view.Phase)
	assert.Empty(t, view.Balance, "no quote stored on failure")
	assert.Equal(t, "connection refused", view.Error)
}

func TestApplyQuoteDiscardsStaleGeneration(t *testing.T) {
	s := newSession("test", usdKRW)

	staleGen, err := s.BeginLoad(usdKRW)
	require.NoError(t, err)

	// the user switches pairs before the first fetch lands
	freshGen, err := s.BeginLoad(eurJPY)
	require.NoError(t, err)
	require.NotEqual(t, staleGen, freshGen)

	applied := s.ApplyQuote(staleGen, model.RateQuote{Pair: usdKRW, Rate: 1300.0}, nil)
	assert.False(t, applied, "stale response must be dropped")
	assert.Equal(t, PhaseLoading, s.View().Phase)

	// a stale failure must not flip the screen into Failed either
	applied = s.ApplyQuote(staleGen, model.RateQuote{}, errors.New("timeout"))
	assert.False(t, applied)
	assert.Equal(t, PhaseLoading, s.View().Phase)

	applied = s.ApplyQuote(freshGen, model.RateQuote{Pair: eurJPY, Rate: 160.0, FetchedAt: 1700000000}, nil)
	require.True(t, applied)
	assert.Equal(t, PhaseReady, s.View().Phase)
}

func TestRetryOnlyFromFailed(t *testing.T) {
	s := newSession("test", usdKRW)

	_, _, err := s.Retry()
	require.ErrorIs(t, err, ErrNotRetryable)

	gen, err := s.BeginLoad(usdKRW)
	require.NoError(t, err)
	require.True(t, s.ApplyQuote(gen, model.RateQuote{}, errors.New("timeout")))

	retryGen, pair, err := s.Retry()
	require.NoError(t, err)
	assert.Equal(t, usdKRW, pair)
	assert.Greater(t, retryGen, gen)
	assert.Equal(t, PhaseLoading, s.View().Phase)
	assert.Empty(t, s.View().Error)
}

func TestSetAmountFiltersAndHidesResult(t *testing.T) {
	s := readySession(t, 1300.0)

	got := s.SetAmount("$1,2a3.4")
	assert.Equal(t, "123.4", got)
	assert.Equal(t, "123.4", s.View().Amount)

	_, err := s.Convert()
	require.NoError(t, err)
	require.NotEmpty(t, s.View().Result)

	s.SetAmount("124")
	assert.Empty(t, s.View().Result, "editing the amount hides the result")
}

func TestConvert(t *testing.T) {
	t.Run("requires a quote", func(t *testing.T) {
		s := newSession("test", usdKRW)
		s.SetAmount("100")

		_, err := s.Convert()
		require.ErrorIs(t, err, ErrQuoteNotReady)
	})

	t.Run("happy path", func(t *testing.T) {
		s := readySession(t, 1300.0)
		s.SetAmount("10000")

		result, err := s.Convert()
		require.NoError(t, err)
		assert.InDelta(t, 13000000.0, result, 1e-6)
		assert.Equal(t, "13,000,000.00", s.View().Result)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		s := readySession(t, 1300.0)
		s.SetAmount("0")

		_, err := s.Convert()
		require.ErrorIs(t, err, ErrAmountZero)
		assert.Empty(t, s.View().Result)
	})

	t.Run("ceiling exceeded", func(t *testing.T) {
		s := readySession(t, 1300.0)
		s.SetAmount("10000.01")

		_, err := s.Convert()
		require.ErrorIs(t, err, ErrAmountTooLarge)
		assert.Empty(t, s.View().Result)
	})

	t.Run("ceiling itself accepted", func(t *testing.T) {
		s := readySession(t, 1.0)
		s.SetAmount("10000")

		result, err := s.Convert()
		require.NoError(t, err)
		assert.InDelta(t, 10000.0, result, 1e-9)
	})

	t.Run("unparseable amount is a recoverable error", func(t *testing.T) {
		s := readySession(t, 1300.0)
		s.SetAmount("1.2.3")

		_, err := s.Convert()
		require.ErrorIs(t, err, amount.ErrNotNumeric)

		// the session stays usable afterwards
		s.SetAmount("2")
		result, err := s.Convert()
		require.NoError(t, err)
		assert.InDelta(t, 2600.0, result, 1e-9)
	})
}
