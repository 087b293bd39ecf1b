package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Pool tuning for the run-history store. The pipeline writes a single report
// per scheduled run and the scheduler reads one row before each tick, so the
// pool stays small and idle connections are released between runs.
const (
	runStoreMaxOpenConns    = 5
	runStoreMaxIdleConns    = 2
	runStoreConnMaxLifetime = 30 * time.Minute
	runStoreConnMaxIdleTime = 5 * time.Minute
)

// NewRunStoreConnection opens the PostgreSQL connection backing the
// pipeline-runs repository and pings it to ensure connectivity.
func NewRunStoreConnection(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open run store connection: %w", err)
	}

	db.SetMaxOpenConns(runStoreMaxOpenConns)
	db.SetMaxIdleConns(runStoreMaxIdleConns)
	db.SetConnMaxLifetime(runStoreConnMaxLifetime)
	db.SetConnMaxIdleTime(runStoreConnMaxIdleTime)

	if err = db.Ping(); err != nil {
		db.Close() // Close the connection if ping fails
		return nil, fmt.Errorf("failed to ping run store: %w", err)
	}

	return db, nil
}
