package store

import (
	"context"

	"github.com/google/uuid"

	"alchemy/internal/models"
)

// --- Job Client ---

type JobClient interface {
	// EnqueueAnalysis queues req and returns the task ID.
	EnqueueAnalysis(ctx context.Context, req models.AnalysisRequest) (string, error)
	Close() error
}

// --- Result Store ---

// ResultStore keeps the history of analysis calls.
type ResultStore interface {
	RecordAnalysis(ctx context.Context, rec *models.AnalysisRecord) error
	GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error)
	ListAnalyses(ctx context.Context, filter models.ListFilter) ([]*models.AnalysisRecord, error)
	UsageSummary(ctx context.Context) ([]models.UsageSummary, error)

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
