// Package results persists cache records in the simulation_cache table,
// keyed solely by fingerprint.
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/Blastoche/simu-solaire/pkg/models/store"
)

// Store reads and writes fingerprint-keyed cache rows.
type Store interface {
	Get(ctx context.Context, fingerprint string) (*store.CacheRecord, error)
	Put(ctx context.Context, rec *store.CacheRecord) error
}

// ErrNotFound is returned when no row matches the fingerprint.
var ErrNotFound = sql.ErrNoRows

type resultStore struct {
	db    *sql.DB
	clock clockwork.Clock
}

// NewStore builds a store over an open database.
func NewStore(db *sql.DB) (Store, error) {
	return NewStoreWithClock(db, clockwork.NewRealClock())
}

// NewStoreWithClock lets tests control the created_at timestamps.
func NewStoreWithClock(db *sql.DB, clock clockwork.Clock) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &resultStore{db: db, clock: clock}, nil
}

func (s *resultStore) Get(ctx context.Context, fingerprint string) (*store.CacheRecord, error) {
	query := `
		SELECT fingerprint, kind, request, series, annual_yield, meta, created_at
		FROM simulation_cache
		WHERE fingerprint = ?
	`
	rec := &store.CacheRecord{}
	var (
		request   []byte
		seriesRaw []byte
		metaRaw   []byte
		yield     sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, query, fingerprint).Scan(
		&rec.Fingerprint, &rec.Kind, &request, &seriesRaw, &yield, &metaRaw, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Request = request
	rec.AnnualYield = yield.Float64
	if err := json.Unmarshal(seriesRaw, &rec.Series); err != nil {
		return nil, fmt.Errorf("unmarshal series for %s: %w", fingerprint, err)
	}
	rec.Meta = map[string]string{}
	if len(metaRaw) > 0 {
		// Metadata is advisory; a corrupt blob does not invalidate the row.
		_ = json.Unmarshal(metaRaw, &rec.Meta)
	}
	return rec, nil
}

func (s *resultStore) Put(ctx context.Context, rec *store.CacheRecord) error {
	series, err := json.Marshal(rec.Series)
	if err != nil {
		return fmt.Errorf("marshal series: %w", err)
	}
	meta, err := json.Marshal(rec.Meta)
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	// Duplicate writes for the same fingerprint are harmless overwrites.
	query := `
		INSERT OR REPLACE INTO simulation_cache
			(fingerprint, kind, request, series, annual_yield, meta, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		rec.Fingerprint,
		rec.Kind,
		string(rec.Request),
		string(series),
		rec.AnnualYield,
		string(meta),
		s.clock.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert cache row: %w", err)
	}
	return nil
}
