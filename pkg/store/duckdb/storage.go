// Package duckdb bootstraps the embedded database backing the persistent
// cache tier.
package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const cacheTableSchema = `
	CREATE TABLE IF NOT EXISTS simulation_cache (
		fingerprint VARCHAR NOT NULL,
		kind VARCHAR NOT NULL,
		request JSON,
		series JSON NOT NULL,
		annual_yield DOUBLE,
		meta JSON,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (fingerprint)
	);
`

var bootQueries = []string{
	cacheTableSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens (or creates) the database and runs the boot queries.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
