// Package sqlite persists export job records in a local SQLite database.
//
// This store uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. The schema is managed through versioned migrations
// embedded from the migrations/ directory. By default the database lives
// at ~/.watermap/data/jobs.db.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/openhydro/watermap-cli/internal/domain"
	"github.com/openhydro/watermap-cli/internal/store/sqlite/migrations"
)

// Store is a SQLite-backed export job ledger.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a job store at the specified data directory.
// If dataDir is empty, defaults to ~/.watermap/data/jobs.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".watermap", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "jobs.db")

	// WAL mode for better concurrency between status and fetch runs
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_jobs.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveJob stores or updates an export job record.
func (s *Store) SaveJob(ctx context.Context, job *domain.ExportJob) error {
	if job == nil || job.ID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, operation, kind, description, state, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			operation = excluded.operation,
			kind = excluded.kind,
			description = excluded.description,
			state = excluded.state,
			error = excluded.error,
			updated_at = excluded.updated_at
	`, job.ID, job.Operation, string(job.Kind), job.Description,
		string(job.State), nullString(job.Error), job.CreatedAt, job.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving job: %w", err)
	}
	return nil
}

// GetJob retrieves a job by ID.
func (s *Store) GetJob(ctx context.Context, id string) (*domain.ExportJob, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, operation, kind, description, state, error, created_at, updated_at
		FROM jobs WHERE id = ?
	`, id)

	return scanJob(row)
}

// ListJobs returns all recorded jobs, newest first.
func (s *Store) ListJobs(ctx context.Context) ([]domain.ExportJob, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, operation, kind, description, state, error, created_at, updated_at
		FROM jobs ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.ExportJob //nolint:prealloc // size unknown from query
	for rows.Next() {
		job, err := scanJobRows(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}

	return jobs, nil
}

// UpdateJobState records a state transition reported by the service.
func (s *Store) UpdateJobState(ctx context.Context, id string, state domain.JobState, jobErr string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE jobs SET state = ?, error = ?, updated_at = ? WHERE id = ?
	`, string(state), nullString(jobErr), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating job state: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating job state: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteJob removes a job record.
func (s *Store) DeleteJob(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	return nil
}

// scanJob scans a single job row.
func scanJob(row *sql.Row) (*domain.ExportJob, error) {
	var job domain.ExportJob
	var kind, state string
	var jobErr sql.NullString

	if err := row.Scan(&job.ID, &job.Operation, &kind, &job.Description,
		&state, &jobErr, &job.CreatedAt, &job.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning job: %w", err)
	}

	job.Kind = domain.JobKind(kind)
	job.State = domain.JobState(state)
	job.Error = jobErr.String
	return &job, nil
}

// scanJobRows scans a job from *sql.Rows.
func scanJobRows(rows *sql.Rows) (*domain.ExportJob, error) {
	var job domain.ExportJob
	var kind, state string
	var jobErr sql.NullString

	if err := rows.Scan(&job.ID, &job.Operation, &kind, &job.Description,
		&state, &jobErr, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning job: %w", err)
	}

	job.Kind = domain.JobKind(kind)
	job.State = domain.JobState(state)
	job.Error = jobErr.String
	return &job, nil
}

// nullString converts empty strings to NULL for storage.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
