// Package session models one conversion screen instance:
// the selected currency pair, the fetched quote, the amount
// buffer and the derived result, driven through an explicit
// phase machine instead of free-form shared state.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/daehee-lim/fxview/amount"
	"github.com/daehee-lim/fxview/display"
	"github.com/daehee-lim/fxview/model"
)

// Phase is the screen lifecycle state
type Phase string

const (
	PhaseIdle    Phase = "idle"    // no quote requested yet
	PhaseLoading Phase = "loading" // fetch in flight
	PhaseReady   Phase = "ready"   // quote present, conversion enabled
	PhaseFailed  Phase = "failed"  // fetch failed, retryable
)

var (
	ErrQuoteNotReady  = errors.New("no rate quote available yet")
	ErrAmountZero     = errors.New("amount must be greater than zero")
	ErrAmountTooLarge = errors.New("amount exceeds the conversion ceiling")
	ErrNotRetryable   = errors.New("session is not in a failed state")
)

// Session is a single screen instance. All mutation goes
// through its methods; the mutex makes each transition
// atomic with respect to late fetch callbacks.
type Session struct {
	mu sync.Mutex

	id    string
	phase Phase
	pair  model.Pair

	// gen counts quote requests. A fetch result carries the
	// generation it was issued under and is discarded when a
	// newer request has been made since, so a logically stale
	// response can never overwrite a newer one.
	gen uint64

	quote         *model.RateQuote
	amountBuf     string
	resultText    string
	resultVisible bool
	fetchErr      string

	touchedAt time.Time
}

func newSession(id string, pair model.Pair) *Session {
	return &Session{
		id:        id,
		phase:     PhaseIdle,
		pair:      pair,
		amountBuf: "0",
		touchedAt: time.Now(),
	}
}

// BeginLoad moves the session to Loading for the given pair
// and returns the generation the resulting fetch must report
// back under. Any previous quote, amount and result are
// discarded: the amount buffer resets to "0".
func (s *Session) BeginLoad(pair model.Pair) (uint64, error) {
	if err := pair.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = pair
	s.phase = PhaseLoading
	s.quote = nil
	s.amountBuf = "0"
	s.resultText = ""
	s.resultVisible = false
	s.fetchErr = ""
	s.gen++
	s.touch()

	return s.gen, nil
}

// Retry re-enters Loading after a failed fetch, keeping the
// selected pair. It returns the new generation and the pair
// to fetch for.
func (s *Session) Retry() (uint64, model.Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseFailed {
		return 0, model.Pair{}, ErrNotRetryable
	}

	s.phase = PhaseLoading
	s.fetchErr = ""
	s.gen++
	s.touch()

	return s.gen, s.pair, nil
}

// ApplyQuote delivers a fetch outcome issued under gen.
// Outcomes from a superseded generation are dropped and
// reported as not applied.
func (s *Session) ApplyQuote(gen uint64, quote model.RateQuote, fetchErr error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}

	s.touch()

	if fetchErr != nil {
		s.phase = PhaseFailed
		s.quote = nil
		s.fetchErr = fetchErr.Error()
		return true
	}

	q := quote
	s.quote = &q
	s.phase = PhaseReady
	s.fetchErr = ""

	return true
}

// SetAmount filters raw input down to digits and periods and
// stores it. Any visible result is invalidated.
func (s *Session) SetAmount(raw string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.amountBuf = amount.Filter(raw)
	s.resultText = ""
	s.resultVisible = false
	s.touch()

	return s.amountBuf
}

// Convert parses the amount buffer, validates it against the
// conversion bounds and computes amount x rate. The result
// becomes visible only on success.
func (s *Session) Convert() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()

	if s.phase != PhaseReady || s.quote == nil {
		return 0, ErrQuoteNotReady
	}

	v, err := amount.Parse(s.amountBuf)
	if err != nil {
		return 0, err
	}

	if v == 0 {
		return 0, ErrAmountZero
	}

	if v > model.ConversionCeiling {
		return 0, ErrAmountTooLarge
	}

	result := v * s.quote.Rate

	text, err := display.GroupedFixed2(result)
	if err != nil {
		return 0, err
	}

	s.resultText = text
	s.resultVisible = true

	return result, nil
}

// View is an immutable snapshot of the screen
type View struct {
	ID      string     `json:"id"`
	Phase   Phase      `json:"phase"`
	Pair    model.Pair `json:"pair"`
	Amount  string     `json:"amount"`
	Balance string     `json:"balance,omitempty"`  // "1300.00 KRW / USD", empty until Ready
	QuoteAt string     `json:"quote_at,omitempty"` // "2023-11-14 / 22:13:20", empty until Ready
	Result  string     `json:"result,omitempty"`   // grouped result, empty while hidden
	Error   string     `json:"error,omitempty"`    // last fetch error while Failed
}

// View renders the current snapshot
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:     s.id,
		Phase:  s.phase,
		Pair:   s.pair,
		Amount: s.amountBuf,
		Error:  s.fetchErr,
	}

	if s.quote != nil {
		v.Balance = display.Balance(*s.quote)
		v.QuoteAt = display.Timestamp(s.quote.FetchedAt)
	}

	if s.resultVisible {
		v.Result = s.resultText
	}

	return v
}

// touch marks the session as recently used; callers hold s.mu
func (s *Session) touch() {
	s.touchedAt = time.Now()
}

func (s *Session) lastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.touchedAt
}
