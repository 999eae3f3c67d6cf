package primary

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"alchemy/internal/models"
	"alchemy/internal/store"
)

// StoreImpl implements store.ResultStore using PostgreSQL.
type StoreImpl struct {
	db *pgxpool.Pool
}

var _ store.ResultStore = (*StoreImpl)(nil)

// NewPrimaryStore creates a new PostgreSQL store and checks the connection.
func NewPrimaryStore(ctx context.Context, dsn string) (*StoreImpl, error) {
	if dsn == "" {
		return nil, errors.New("database DSN cannot be empty")
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database DSN: %w", err)
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &StoreImpl{db: dbpool}, nil
}

// Ping checks the database connection.
func (s *StoreImpl) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection pool.
func (s *StoreImpl) Close() error {
	s.db.Close()
	return nil
}

var schema = []string{`
CREATE TABLE IF NOT EXISTS analyses (
	id            UUID PRIMARY KEY,
	capability    TEXT NOT NULL,
	input         TEXT NOT NULL,
	status        TEXT NOT NULL,
	result        JSONB,
	error_kind    TEXT,
	error_code    INTEGER,
	error_message TEXT,
	transactions  INTEGER NOT NULL DEFAULT 0,
	duration_ms   BIGINT NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS analyses_capability_created_idx ON analyses (capability, created_at DESC)`,
}

// Migrate creates the analyses table if it does not exist.
func (s *StoreImpl) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate analyses schema: %w", err)
		}
	}
	return nil
}

// --- Analysis history ---

func (s *StoreImpl) RecordAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	query := `
		INSERT INTO analyses (id, capability, input, status, result, error_kind, error_code, error_message, transactions, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var result []byte
	if len(rec.Result) > 0 {
		result = rec.Result
	}
	_, err := s.db.Exec(ctx, query,
		rec.ID, string(rec.Capability), rec.Input, rec.Status, result,
		rec.ErrorKind, rec.ErrorCode, rec.ErrorMessage,
		rec.Transactions, rec.DurationMs, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis %s: %w", rec.ID, err)
	}
	return nil
}

const selectColumns = `id, capability, input, status, result, error_kind, error_code, error_message, transactions, duration_ms, created_at`

// scanAnalysis expects the columns in selectColumns order.
func scanAnalysis(row pgx.Row) (*models.AnalysisRecord, error) {
	rec := &models.AnalysisRecord{}
	var capability string
	var result []byte
	err := row.Scan(
		&rec.ID,
		&capability,
		&rec.Input,
		&rec.Status,
		&result,
		&rec.ErrorKind,
		&rec.ErrorCode,
		&rec.ErrorMessage,
		&rec.Transactions,
		&rec.DurationMs,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Capability = models.Capability(capability)
	if len(result) > 0 {
		rec.Result = result
	}
	return rec, nil
}

func (s *StoreImpl) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM analyses WHERE id = $1`
	rec, err := scanAnalysis(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	return rec, nil
}

func (s *StoreImpl) ListAnalyses(ctx context.Context, filter models.ListFilter) ([]*models.AnalysisRecord, error) {
	filter = filter.Normalize()
	query := `SELECT ` + selectColumns + ` FROM analyses
		WHERE ($1::text = '' OR capability = $1::text)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.db.Query(ctx, query, string(filter.Capability), filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []*models.AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis rows: %w", err)
	}
	return records, nil
}

func (s *StoreImpl) UsageSummary(ctx context.Context) ([]models.UsageSummary, error) {
	query := `
		SELECT capability,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE status = $1),
		       COALESCE(SUM(transactions), 0)
		FROM analyses
		GROUP BY capability
		ORDER BY capability`

	rows, err := s.db.Query(ctx, query, models.AnalysisStatusFailed)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize usage: %w", err)
	}
	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.UsageSummary, error) {
		var u models.UsageSummary
		var capability string
		if err := row.Scan(&capability, &u.Calls, &u.Failures, &u.Transactions); err != nil {
			return u, err
		}
		u.Capability = models.Capability(capability)
		return u, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan usage rows: %w", err)
	}
	return summaries, nil
}
