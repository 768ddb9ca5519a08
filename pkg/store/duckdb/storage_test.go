package duckdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDBCreatesCacheTable(t *testing.T) {
	dir, err := os.MkdirTemp("", "simu-solaire-duckdb")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	db, err := NewDB(Settings{DbPath: filepath.Join(dir, "cache.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		INSERT INTO simulation_cache (fingerprint, kind, request, series, annual_yield, meta, created_at)
		VALUES ('abc', 'production', '{}', '{"power_kw": [0.1, 0.2]}', 1234.5, '{}', now())
	`)
	require.NoError(t, err)

	var count int
	err = db.QueryRow(`SELECT count(*) FROM simulation_cache`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestNewDBIsIdempotent(t *testing.T) {
	dir, err := os.MkdirTemp("", "simu-solaire-duckdb")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "cache.db")

	db, err := NewDB(Settings{DbPath: path})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDB(Settings{DbPath: path})
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
