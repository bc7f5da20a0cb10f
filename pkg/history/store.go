package history

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"

	// SQLite driver
	_ "modernc.org/sqlite"

	"github.com/piwi3910/kubeact/pkg/pipeline"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store implements the pipeline.Recorder interface on SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a journal store backed by the SQLite file at path.
// Use ":memory:" for an ephemeral journal.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	return &Store{path: path}, nil
}

// Init opens the database and enables WAL mode.
func (s *Store) Init(ctx context.Context) error {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", s.path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping journal database: %w", err)
	}

	s.db = db
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate runs the embedded schema migrations.
func (s *Store) Migrate(_ context.Context) error {
	if s.db == nil {
		return fmt.Errorf("journal database not initialized")
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := sqlite3.WithInstance(s.db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Record appends one invocation row. Implements pipeline.Recorder.
func (s *Store) Record(ctx context.Context, rec pipeline.Record) error {
	argv, err := json.Marshal(rec.Argv)
	if err != nil {
		return fmt.Errorf("failed to encode argv: %w", err)
	}

	query := `
		INSERT INTO invocations (id, argv, rc, changed, failed, facts, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		uuid.NewString(),
		string(argv),
		rec.RC,
		rec.Changed,
		rec.Failed,
		rec.Facts,
		rec.Duration.Milliseconds(),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}

	return nil
}

// List returns the most recent invocations, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]*Invocation, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, argv, rc, changed, failed, facts, duration_ms, created_at
		FROM invocations
		ORDER BY created_at DESC, id
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list invocations: %w", err)
	}
	defer rows.Close()

	invocations := []*Invocation{}
	for rows.Next() {
		inv := &Invocation{}
		var argvJSON string
		var durationMS int64
		err := rows.Scan(
			&inv.ID,
			&argvJSON,
			&inv.RC,
			&inv.Changed,
			&inv.Failed,
			&inv.Facts,
			&durationMS,
			&inv.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invocation: %w", err)
		}
		if err := json.Unmarshal([]byte(argvJSON), &inv.Argv); err != nil {
			return nil, fmt.Errorf("failed to decode argv: %w", err)
		}
		inv.Duration = time.Duration(durationMS) * time.Millisecond
		invocations = append(invocations, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invocations: %w", err)
	}

	return invocations, nil
}

// HealthCheck verifies the database connection is healthy.
func (s *Store) HealthCheck(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("journal database not initialized")
	}
	return s.db.PingContext(ctx)
}
