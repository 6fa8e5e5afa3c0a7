// Package store persists extraction run audit records to PostgreSQL.
// The store is optional: the pipeline runs entirely in memory and only
// writes an audit trail when a database is configured.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// ErrTransactionFailed is returned when an audit transaction cannot be
// completed.
var ErrTransactionFailed = errors.New("transaction failed")

// RunRecord is the audit summary of one extraction run.
type RunRecord struct {
	RunID      uuid.UUID
	Year       string
	StartedAt  time.Time
	FinishedAt time.Time
	Messages   int64
	Awards     int64
	Hosts      []string
}

// CandidateRecord is one ranked candidate kept for audit.
type CandidateRecord struct {
	Category      string
	Role          string
	Name          string
	Frequency     int
	TotalRetweets int
	MaxRetweets   int
	AvgRetweets   float64
	Selected      bool
}

// RunRepository persists run audit records.
type RunRepository interface {
	// SaveRun atomically writes the run row and its candidate rows.
	SaveRun(ctx context.Context, run RunRecord, candidates []CandidateRecord) error
}

// PostgresRunRepository implements RunRepository using PostgreSQL with full
// transaction support.
type PostgresRunRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresRunRepository creates a new PostgresRunRepository.
func NewPostgresRunRepository(db *sql.DB, logger *slog.Logger) *PostgresRunRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRunRepository{
		db:     db,
		logger: logger,
	}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// SaveRun writes the run summary and all candidate rows in one transaction.
func (r *PostgresRunRepository) SaveRun(ctx context.Context, run RunRecord, candidates []CandidateRecord) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		r.logger.Error("failed to begin transaction",
			slog.String("error", err.Error()),
			slog.String("run_id", run.RunID.String()))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Always attempt rollback on function exit (no-op after successful commit)
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			r.logger.Warn("failed to rollback transaction",
				slog.String("error", err.Error()))
		}
	}()

	insertRun := `
		INSERT INTO extraction_runs (id, year, started_at, finished_at, messages, awards, hosts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	hosts := ""
	for i, h := range run.Hosts {
		if i > 0 {
			hosts += ", "
		}
		hosts += h
	}
	if _, err := tx.ExecContext(ctx, insertRun,
		run.RunID, run.Year, run.StartedAt, run.FinishedAt,
		run.Messages, run.Awards, hosts); err != nil {
		return fmt.Errorf("%w: insert run: %v", ErrTransactionFailed, err)
	}

	insertCandidate := `
		INSERT INTO extraction_candidates
			(run_id, category, role, name, frequency, total_retweets, max_retweets, avg_retweets, selected)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, c := range candidates {
		if _, err := tx.ExecContext(ctx, insertCandidate,
			run.RunID, c.Category, c.Role, c.Name,
			c.Frequency, c.TotalRetweets, c.MaxRetweets, c.AvgRetweets, c.Selected); err != nil {
			return fmt.Errorf("%w: insert candidate: %v", ErrTransactionFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit audit transaction",
			slog.String("error", err.Error()),
			slog.String("run_id", run.RunID.String()))
		return fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.Info("audit record saved",
		"run_id", run.RunID.String(),
		"candidates", len(candidates))
	return nil
}
