// Package cache implements the tiered result cache consulted before any
// weather resolution or production estimation: a bounded in-memory tier, an
// on-disk columnar tier and a persistent store tier, all keyed by the same
// fingerprints.
package cache

import (
	"context"
	"errors"
)

// ErrMiss is the sentinel a tier returns when it holds no entry for a
// fingerprint. Any other error is treated by the stack as a miss too, but
// logged.
var ErrMiss = errors.New("cache: miss")

// Entry kinds.
const (
	KindWeather    = "weather"
	KindProduction = "production"
)

// Column is one named series channel. Entries keep channels ordered so the
// disk tier writes a stable layout.
type Column struct {
	Name   string
	Values []float64
}

// Entry is one cached result: columnar hourly series plus string metadata
// (provenance, model tier, advisory). Entries are never mutated after
// creation.
type Entry struct {
	Fingerprint string
	Kind        string
	Columns     []Column
	Meta        map[string]string

	// Request is the serialized location and system parameters, persisted
	// by the store tier alongside the series.
	Request []byte

	// AnnualYield is denormalized for the persistent store schema.
	AnnualYield float64

	// Origin names the tier a read was served from. Set by the stack,
	// never persisted.
	Origin string
}

// Column returns the named channel, or nil.
func (e *Entry) Column(name string) []float64 {
	for _, c := range e.Columns {
		if c.Name == name {
			return c.Values
		}
	}
	return nil
}

// Tier is one cache layer. Get returns ErrMiss when the fingerprint is
// unknown; Put overwrites idempotently, since identical fingerprints imply
// identical payloads.
type Tier interface {
	Name() string
	Get(ctx context.Context, fingerprint string) (*Entry, error)
	Put(ctx context.Context, e *Entry) error
}
