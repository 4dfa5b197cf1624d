package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/daehee-lim/fxview/model"
	"github.com/daehee-lim/fxview/service"
	"github.com/daehee-lim/fxview/storage"
)

const (
	sweepInterval = time.Minute      // how often idle sessions are swept
	defaultTTL    = 30 * time.Minute // idle lifetime of a session
)

var ErrSessionNotFound = errors.New("session not found")

// DefaultPair is the selection a freshly created
// session starts with
var DefaultPair = model.Pair{Source: model.USD, Destination: model.KRW}

// Manager owns the live sessions, runs their quote fetches
// and evicts the ones nobody touched for a while.
type Manager struct {
	lock     sync.RWMutex        // rw lock guards sessions
	sessions map[string]*Session // live screen instances by id
	source   service.RateSource  // upstream quote provider
	quoteLog storage.QuoteLog    // optional fetched-quote audit trail
	ttl      time.Duration       // idle session lifetime
	ticker   *time.Ticker        // eviction ticker
	doneC    chan struct{}       // chan to signal ticker stoppage
}

func NewManager(source service.RateSource, quoteLog storage.QuoteLog, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	m := &Manager{
		sessions: make(map[string]*Session),
		source:   source,
		quoteLog: quoteLog,
		ttl:      ttl,
		ticker:   time.NewTicker(sweepInterval),
		doneC:    make(chan struct{}),
	}

	go m.sweep()

	return m
}

// Create registers a new session for the given pair and
// kicks off its first quote fetch.
func (m *Manager) Create(pair model.Pair) (View, error) {
	if err := pair.Validate(); err != nil {
		return View{}, err
	}

	s := newSession(uuid.NewString(), pair)

	gen, err := s.BeginLoad(pair)
	if err != nil {
		return View{}, err
	}

	m.lock.Lock()
	m.sessions[s.id] = s
	m.lock.Unlock()

	go m.fetch(s, gen, pair)

	return s.View(), nil
}

// Get returns the current snapshot of a session
func (m *Manager) Get(id string) (View, error) {
	s, err := m.session(id)
	if err != nil {
		return View{}, err
	}

	return s.View(), nil
}

// SelectPair switches a session to a new currency pair,
// resetting its amount and result, and fetches a fresh quote.
func (m *Manager) SelectPair(id string, pair model.Pair) (View, error) {
	s, err := m.session(id)
	if err != nil {
		return View{}, err
	}

	gen, err := s.BeginLoad(pair)
	if err != nil {
		return View{}, err
	}

	go m.fetch(s, gen, pair)

	return s.View(), nil
}

// SetAmount stores the filtered amount buffer
func (m *Manager) SetAmount(id, raw string) (View, error) {
	s, err := m.session(id)
	if err != nil {
		return View{}, err
	}

	s.SetAmount(raw)

	return s.View(), nil
}

// Convert runs the conversion on the current amount and quote
func (m *Manager) Convert(id string) (View, error) {
	s, err := m.session(id)
	if err != nil {
		return View{}, err
	}

	if _, err := s.Convert(); err != nil {
		return View{}, err
	}

	return s.View(), nil
}

// Retry re-runs the fetch after a failure
func (m *Manager) Retry(id string) (View, error) {
	s, err := m.session(id)
	if err != nil {
		return View{}, err
	}

	gen, pair, err := s.Retry()
	if err != nil {
		return View{}, err
	}

	go m.fetch(s, gen, pair)

	return s.View(), nil
}

// Close stops the eviction sweeper
func (m *Manager) Close() {
	m.ticker.Stop()
	close(m.doneC)
}

func (m *Manager) session(id string) (*Session, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return s, nil
}

// fetch runs one quote request and delivers its outcome
// under the generation it was issued for. Outcomes that
// lost the generation race are dropped here.
func (m *Manager) fetch(s *Session, gen uint64, pair model.Pair) {
	quote, err := m.source.FetchQuote(context.Background(), pair)

	applied := s.ApplyQuote(gen, quote, err)
	if !applied {
		log.Debug().Str("pair", pair.String()).Uint64("gen", gen).Msg("discarding stale quote response")
		return
	}

	if err != nil {
		log.Error().Err(err).Str("pair", pair.String()).Msg("quote fetch failed")
		return
	}

	log.Debug().Str("pair", pair.String()).Float64("rate", quote.Rate).Msg("quote applied")

	if m.quoteLog == nil {
		return
	}

	// the audit trail is best effort; a write failure never
	// reaches the screen
	ctx, cancelFn := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancelFn()

	if err := m.quoteLog.Record(ctx, quote); err != nil {
		log.Error().Err(err).Str("pair", pair.String()).Msg("unable to record quote history")
	}
}

func (m *Manager) sweep() {
	for {
		select {
		case <-m.doneC:
			return

		case <-m.ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) evictIdle() {
	cutoff := time.Now().Add(-m.ttl)

	m.lock.Lock()
	defer m.lock.Unlock()

	for id, s := range m.sessions {
		if s.lastTouched().Before(cutoff) {
			delete(m.sessions, id)
			log.Debug().Str("session", id).Msg("evicted idle session")
		}
	}
}
