package cache

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/Blastoche/simu-solaire/pkg/models/store"
	"github.com/Blastoche/simu-solaire/pkg/store/duckdb/results"
)

// StoreTier adapts the persistent fingerprint store to the Tier interface.
// It is the slowest and most durable layer of the stack.
type StoreTier struct {
	store results.Store
}

func NewStoreTier(s results.Store) *StoreTier {
	return &StoreTier{store: s}
}

func (t *StoreTier) Name() string { return "store" }

func (t *StoreTier) Get(ctx context.Context, fingerprint string) (*Entry, error) {
	rec, err := t.store.Get(ctx, fingerprint)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return recordToEntry(rec), nil
}

func (t *StoreTier) Put(ctx context.Context, e *Entry) error {
	return t.store.Put(ctx, entryToRecord(e))
}

func recordToEntry(rec *store.CacheRecord) *Entry {
	names := make([]string, 0, len(rec.Series))
	for name := range rec.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	e := &Entry{
		Fingerprint: rec.Fingerprint,
		Kind:        rec.Kind,
		Meta:        rec.Meta,
		Request:     rec.Request,
		AnnualYield: rec.AnnualYield,
	}
	for _, name := range names {
		e.Columns = append(e.Columns, Column{Name: name, Values: rec.Series[name]})
	}
	return e
}

func entryToRecord(e *Entry) *store.CacheRecord {
	series := make(map[string][]float64, len(e.Columns))
	for _, c := range e.Columns {
		series[c.Name] = c.Values
	}
	return &store.CacheRecord{
		Fingerprint: e.Fingerprint,
		Kind:        e.Kind,
		Request:     e.Request,
		Series:      series,
		AnnualYield: e.AnnualYield,
		Meta:        e.Meta,
	}
}
