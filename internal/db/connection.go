// Package db holds the dial-then-ping-then-pool-size connection
// bootstrap internal/report/pgsink.go builds its optional persistence
// sink on, generalised from env-var-only dial (PGHOST/
// PGPORT/...) to accept the single DSN internal/config resolves
// (LINKAGE_DATABASEURL), since the engine is no longer tied to one
// fixed Postgres instance.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Connection holds an open, pooled database connection.
type Connection struct {
	DB *sql.DB
}

// Connect opens and pings a Postgres connection at databaseURL,
// applying pool-size defaults (20 open, 10 idle).
func Connect(databaseURL string) (*Connection, error) {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db: pinging database: %w", err)
	}

	conn.SetMaxOpenConns(20)
	conn.SetMaxIdleConns(10)

	return &Connection{DB: conn}, nil
}

// Close closes the database connection.
func (c *Connection) Close() error {
	return c.DB.Close()
}
