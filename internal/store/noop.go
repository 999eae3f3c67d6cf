package store

import (
	"context"

	"github.com/google/uuid"

	"alchemy/internal/models"
)

// NoopStore is used when no database is configured: records are dropped and
// lookups report ErrDisabled.
type NoopStore struct{}

var _ ResultStore = NoopStore{}

func (NoopStore) RecordAnalysis(context.Context, *models.AnalysisRecord) error { return nil }

func (NoopStore) GetAnalysis(context.Context, uuid.UUID) (*models.AnalysisRecord, error) {
	return nil, ErrDisabled
}

func (NoopStore) ListAnalyses(context.Context, models.ListFilter) ([]*models.AnalysisRecord, error) {
	return nil, ErrDisabled
}

func (NoopStore) UsageSummary(context.Context) ([]models.UsageSummary, error) {
	return nil, ErrDisabled
}

func (NoopStore) Migrate(context.Context) error { return nil }
func (NoopStore) Ping(context.Context) error    { return nil }
func (NoopStore) Close() error                  { return nil }
