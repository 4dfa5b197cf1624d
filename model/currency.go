package model

import (
	"errors"
	"fmt"
	"strings"
)

// Code is an ISO 4217 currency code
// from the fixed supported set
type Code string

const (
	USD Code = "USD" // United States dollar
	KRW Code = "KRW" // South Korean won
	JPY Code = "JPY" // Japanese yen
	EUR Code = "EUR" // Euro
)

// ConversionCeiling is the largest amount
// a single conversion request may carry
const ConversionCeiling float64 = 10000

var (
	ErrUnsupportedCode = errors.New("unsupported currency code")
	ErrSamePair        = errors.New("source and destination currencies must differ")
)

// SupportedCodes returns the supported currency
// codes in their display order
func SupportedCodes() []Code {
	return []Code{USD, KRW, JPY, EUR}
}

// ParseCode normalizes and validates a currency code
func ParseCode(s string) (Code, error) {
	code := Code(strings.ToUpper(strings.TrimSpace(s)))
	switch code {
	case USD, KRW, JPY, EUR:
		return code, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedCode, s)
}

// Pair is an ordered (source, destination)
// currency selection
type Pair struct {
	Source      Code // Source currency of the quote
	Destination Code // Destination currency of the quote
}

// NewPair builds a validated pair from raw codes
func NewPair(source, destination string) (Pair, error) {
	src, err := ParseCode(source)
	if err != nil {
		return Pair{}, err
	}

	dst, err := ParseCode(destination)
	if err != nil {
		return Pair{}, err
	}

	p := Pair{Source: src, Destination: dst}
	return p, p.Validate()
}

// Validate enforces the pair invariants:
// both codes supported, source != destination
func (p Pair) Validate() error {
	if _, err := ParseCode(string(p.Source)); err != nil {
		return err
	}

	if _, err := ParseCode(string(p.Destination)); err != nil {
		return err
	}

	if p.Source == p.Destination {
		return ErrSamePair
	}

	return nil
}

// QuoteKey is the concatenated pair code the
// upstream rate mapping is keyed by, e.g. "USDKRW"
func (p Pair) QuoteKey() string {
	return string(p.Source) + string(p.Destination)
}

func (p Pair) String() string {
	return string(p.Source) + "/" + string(p.Destination)
}

// RateQuote holds one fetched exchange rate
// together with its fetch timestamp.
// A quote is immutable once built and is
// replaced wholesale on every fetch.
type RateQuote struct {
	Pair      Pair    // Currency pair the rate applies to
	Rate      float64 // Units of destination currency per one source unit
	APISource string  // Source label reported by the rate API
	FetchedAt int64   // Unix seconds the upstream produced the quote at
}
