package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // Postgres driver
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"tubebrief/internal/config"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know a bind type for.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Store wraps the database connection. All queries are written with `?`
// bindvars and rebound for the active driver, so Postgres and SQLite share
// one set of statements.
type Store struct {
	db *sqlx.DB
}

// New connects to the backend selected by the configuration: Postgres when
// DATABASE_URL is a postgres:// URL, SQLite on local disk otherwise. The
// schema is created on first use.
func New(cfg *config.Config) (*Store, error) {
	var (
		d   *sqlx.DB
		err error
	)
	if cfg.UsePostgres() {
		d, err = sqlx.Connect("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		log.Println("Using Postgres database")
	} else {
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		d, err = sqlx.Connect("sqlite", cfg.SQLitePath+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// The orchestrator and the listener may write concurrently.
		d.SetMaxOpenConns(1)
		log.Printf("Using SQLite database at %s", cfg.SQLitePath)
	}

	s := &Store{db: d}
	if err := s.initSchema(cfg.UsePostgres()); err != nil {
		d.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing connection. Used by tests with sqlmock.
func NewWithDB(d *sqlx.DB) *Store {
	return &Store{db: d}
}

func (s *Store) initSchema(postgres bool) error {
	stmts := sqliteSchema
	if postgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// Ping reports connectivity, for health checks.
func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// rebind translates `?` bindvars into the driver's placeholder style.
func (s *Store) rebind(query string) string {
	return s.db.Rebind(query)
}
