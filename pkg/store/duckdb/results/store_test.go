package results

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/Blastoche/simu-solaire/pkg/models/store"
	"github.com/Blastoche/simu-solaire/pkg/store/duckdb"
)

func setupStore(t *testing.T) Store {
	t.Helper()

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewStoreWithClock(db, clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	rec := &store.CacheRecord{
		Fingerprint: "deadbeef",
		Kind:        "production",
		Request:     []byte(`{"power_kw": 3}`),
		Series:      map[string][]float64{"power_kw": {0.0, 1.5, 2.0}},
		AnnualYield: 3456.7,
		Meta:        map[string]string{"tier": "physical"},
	}
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, "deadbeef")
	require.NoError(t, err)
	require.Equal(t, "production", got.Kind)
	require.Equal(t, rec.Series, got.Series)
	require.InDelta(t, 3456.7, got.AnnualYield, 1e-9)
	require.Equal(t, "physical", got.Meta["tier"])
	require.Equal(t, 2026, got.CreatedAt.Year())
}

func TestPutOverwritesSameFingerprint(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	first := &store.CacheRecord{
		Fingerprint: "fp",
		Kind:        "weather",
		Series:      map[string][]float64{"ghi": {100}},
	}
	require.NoError(t, s.Put(ctx, first))

	second := &store.CacheRecord{
		Fingerprint: "fp",
		Kind:        "weather",
		Series:      map[string][]float64{"ghi": {200}},
	}
	require.NoError(t, s.Put(ctx, second))

	got, err := s.Get(ctx, "fp")
	require.NoError(t, err)
	require.Equal(t, []float64{200}, got.Series["ghi"])
}

func TestGetMissingFingerprint(t *testing.T) {
	s := setupStore(t)

	_, err := s.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPutPropagatesExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec("INSERT OR REPLACE INTO simulation_cache").
		WillReturnError(context.DeadlineExceeded)

	s, err := NewStore(db)
	require.NoError(t, err)

	err = s.Put(context.Background(), &store.CacheRecord{Fingerprint: "fp", Kind: "weather"})
	require.Error(t, err)
}
