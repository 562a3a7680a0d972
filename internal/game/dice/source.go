// Package dice provides the randomness sources used by combat rolls.
package dice

import (
	"crypto/rand"
	"encoding/binary"
)

// Source yields uniform random numbers.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Float64 returns a uniform random number in [0, 1).
	Float64() float64
}

// cryptoSource implements Source using crypto/rand.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Float64 is in [0, 1).
func NewCryptoSource() Source {
	return cryptoSource{}
}

// Float64 returns a cryptographically secure random float in [0, 1) built
// from 53 random bits.
//
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (cryptoSource) Float64() float64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

// Fixed is a Source that always returns its own value. It is intended for
// tests and replays.
type Fixed float64

// Float64 returns f.
func (f Fixed) Float64() float64 { return float64(f) }
