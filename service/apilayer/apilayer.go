// Package apilayer implements service.RateSource on top of
// the apilayer currency_data HTTP API.
package apilayer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/daehee-lim/fxview/model"
	"github.com/daehee-lim/fxview/service"
)

const (
	baseURL = "https://api.apilayer.com/currency_data/" // base URL of the currency_data API

	// fetchTimeout bounds every quote request; there is no
	// retry, a slow upstream surfaces as a failed fetch
	fetchTimeout = 5 * time.Second

	maxInFlight = 4 // concurrent outbound requests across all sessions
)

var (
	ErrStatus      = errors.New("rate API returned a non-success status")
	ErrDecode      = errors.New("unable to decode rate API response")
	ErrNotLive     = errors.New("rate API reported an unsuccessful quote")
	ErrRateMissing = errors.New("rate for requested pair is missing in response")
)

// liveResponse mirrors GET /currency_data/live.
// The quotes mapping is keyed by the concatenated
// pair code, e.g. {"USDKRW": 1300.0}.
type liveResponse struct {
	Success   bool               `json:"success"`
	Source    string             `json:"source"`
	Quotes    map[string]float64 `json:"quotes"`
	Timestamp int64              `json:"timestamp"`
}

type client struct {
	baseURL     *url.URL            // Base URL for API requests
	httpClient  *http.Client        // HTTP client used to communicate with the API.
	rateLimiter *rate.Limiter       // Rate limiter for the quote API
	inFlight    *semaphore.Weighted // Bound on concurrent outbound requests
}

// New builds a currency_data client. The credential is
// injected as the apikey header on every request; it is
// supplied by the caller and never stored anywhere else.
func New(apiKey, rawBaseURL string) (service.RateSource, error) {
	if rawBaseURL == "" {
		rawBaseURL = baseURL
	}

	base, err := url.Parse(rawBaseURL)
	if err != nil {
		return nil, err
	}

	c := &client{
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 10),
		inFlight:    semaphore.NewWeighted(maxInFlight),
		httpClient: &http.Client{
			Timeout: fetchTimeout,
			Transport: roundTripperFn(
				func(req *http.Request) (*http.Response, error) {
					req.Header.Set("apikey", apiKey)
					req.Header.Set("Accept", "application/json")

					return http.DefaultTransport.RoundTrip(req)
				},
			),
		},
		baseURL: base,
	}

	return c, nil
}

func (c *client) do(ctx context.Context, req *http.Request, v interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	if err := c.inFlight.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.inFlight.Release(1)

	log.Debug().Str("url", req.URL.String()).Msg("fetching quote from API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: empty body", ErrDecode)
		}
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return nil
}

// FetchQuote implements service.RateSource.
// GET /currency_data/live?source=USD&currencies=KRW
func (c *client) FetchQuote(ctx context.Context, pair model.Pair) (model.RateQuote, error) {
	if err := pair.Validate(); err != nil {
		return model.RateQuote{}, err
	}

	u, err := c.baseURL.Parse("live")
	if err != nil {
		return model.RateQuote{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.RateQuote{}, err
	}

	query := req.URL.Query()
	query.Add("source", string(pair.Source))
	query.Add("currencies", string(pair.Destination))

	req.URL.RawQuery = query.Encode()

	r := &liveResponse{}

	if err := c.do(ctx, req, r); err != nil {
		return model.RateQuote{}, err
	}

	if !r.Success {
		return model.RateQuote{}, ErrNotLive
	}

	// look the rate up by the explicit pair key; the mapping
	// is expected to hold exactly one entry, but its iteration
	// order is no basis for picking one
	rateValue, ok := r.Quotes[pair.QuoteKey()]
	if !ok {
		return model.RateQuote{}, fmt.Errorf("%w: %s", ErrRateMissing, pair.QuoteKey())
	}

	return model.RateQuote{
		Pair:      pair,
		Rate:      rateValue,
		APISource: r.Source,
		FetchedAt: r.Timestamp,
	}, nil
}

type roundTripperFn func(*http.Request) (*http.Response, error)

func (fn roundTripperFn) RoundTrip(r *http.Request) (*http.Response, error) {
	return fn(r)
}
