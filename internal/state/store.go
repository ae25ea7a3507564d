// Package state persists shops, products, overrides and feed snapshots.
// One SQLStore implementation serves both backends: embedded SQLite for
// single-node installs and PostgreSQL for hosted ones.
package state

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/feedlift/feedlift/pkg/core"
)

const (
	dialectSQLite   = "sqlite"
	dialectPostgres = "postgres"
)

// NotFoundError reports a lookup that matched no row.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// SQLStore implements core.Store on database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect string
	logger  *slog.Logger
}

// NewSQLiteStore creates a store backed by an embedded SQLite database.
func NewSQLiteStore(logger *slog.Logger) *SQLStore {
	return newStore(dialectSQLite, logger)
}

// NewPostgresStore creates a store backed by PostgreSQL via pgx.
func NewPostgresStore(logger *slog.Logger) *SQLStore {
	return newStore(dialectPostgres, logger)
}

func newStore(dialect string, logger *slog.Logger) *SQLStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLStore{dialect: dialect, logger: logger}
}

// Open opens a connection to the database. For SQLite, target is a file
// path or ":memory:"; for Postgres it is a connection string.
func (s *SQLStore) Open(target string) error {
	var driver, dsn string
	switch s.dialect {
	case dialectSQLite:
		driver = "sqlite"
		dsn = target + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
		if target != ":memory:" {
			dsn += "&_pragma=journal_mode(WAL)"
		}
	case dialectPostgres:
		driver = "pgx"
		dsn = target
	default:
		return fmt.Errorf("unknown dialect: %s", s.dialect)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", s.dialect, err)
	}
	if s.dialect == dialectSQLite && target == ":memory:" {
		// A second pool connection would see a fresh empty database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping %s database: %w", s.dialect, err)
	}

	s.db = db
	s.logger.Debug("opened state store", slog.String("dialect", s.dialect))
	return nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// rebind rewrites ? placeholders to the $N form Postgres expects.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// Ensure SQLStore implements the core.Store interface
var _ core.Store = (*SQLStore)(nil)
