// Package local keeps analysis history in a SQLite file, for single-user CLI use.
package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"alchemy/internal/models"
	"alchemy/internal/store"
)

// StoreImpl implements store.ResultStore on SQLite.
type StoreImpl struct {
	db *sql.DB
}

var _ store.ResultStore = (*StoreImpl)(nil)

// NewLocalStore opens (creating if needed) the SQLite database at path.
// Use ":memory:" for a throwaway store.
func NewLocalStore(ctx context.Context, path string) (*StoreImpl, error) {
	if path == "" {
		return nil, errors.New("database path cannot be empty")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database %s: %w", path, err)
	}
	// SQLite allows one writer; a single connection also keeps :memory: databases alive.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping sqlite database: %w", err)
	}
	return &StoreImpl{db: db}, nil
}

func (s *StoreImpl) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *StoreImpl) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id            TEXT PRIMARY KEY,
	capability    TEXT NOT NULL,
	input         TEXT NOT NULL,
	status        TEXT NOT NULL,
	result        TEXT,
	error_kind    TEXT,
	error_code    INTEGER,
	error_message TEXT,
	transactions  INTEGER NOT NULL DEFAULT 0,
	duration_ms   INTEGER NOT NULL DEFAULT 0,
	created_at    DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS analyses_capability_created_idx ON analyses (capability, created_at);`

func (s *StoreImpl) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate analyses schema: %w", err)
	}
	return nil
}

func (s *StoreImpl) RecordAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	query := `
		INSERT INTO analyses (id, capability, input, status, result, error_kind, error_code, error_message, transactions, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var result sql.NullString
	if len(rec.Result) > 0 {
		result = sql.NullString{String: string(rec.Result), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, query,
		rec.ID.String(), string(rec.Capability), rec.Input, rec.Status, result,
		rec.ErrorKind, rec.ErrorCode, rec.ErrorMessage,
		rec.Transactions, rec.DurationMs, rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis %s: %w", rec.ID, err)
	}
	return nil
}

const selectColumns = `id, capability, input, status, result, error_kind, error_code, error_message, transactions, duration_ms, created_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(row scanner) (*models.AnalysisRecord, error) {
	rec := &models.AnalysisRecord{}
	var (
		id         string
		capability string
		result     sql.NullString
	)
	err := row.Scan(
		&id,
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
	if rec.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid analysis id %q: %w", id, err)
	}
	rec.Capability = models.Capability(capability)
	if result.Valid && result.String != "" {
		rec.Result = json.RawMessage(result.String)
	}
	return rec, nil
}

func (s *StoreImpl) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM analyses WHERE id = ?`
	rec, err := scanAnalysis(s.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	return rec, nil
}

func (s *StoreImpl) ListAnalyses(ctx context.Context, filter models.ListFilter) ([]*models.AnalysisRecord, error) {
	filter = filter.Normalize()
	query := `SELECT ` + selectColumns + ` FROM analyses
		WHERE (? = '' OR capability = ?)
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?`

	capability := string(filter.Capability)
	rows, err := s.db.QueryContext(ctx, query, capability, capability, filter.Limit, filter.Offset)
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
		       SUM(CASE WHEN status = ? THEN 1 ELSE 0 END),
		       COALESCE(SUM(transactions), 0)
		FROM analyses
		GROUP BY capability
		ORDER BY capability`

	rows, err := s.db.QueryContext(ctx, query, models.AnalysisStatusFailed)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize usage: %w", err)
	}
	defer rows.Close()

	var summaries []models.UsageSummary
	for rows.Next() {
		var u models.UsageSummary
		var capability string
		if err := rows.Scan(&capability, &u.Calls, &u.Failures, &u.Transactions); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		u.Capability = models.Capability(capability)
		summaries = append(summaries, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating usage rows: %w", err)
	}
	return summaries, nil
}
