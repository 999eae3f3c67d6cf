package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"alchemy/internal/models"
)

// Defines the task types and queues used with Asynq.

const (
	// TypeAnalysisJob runs one URL capability and records the outcome.
	TypeAnalysisJob = "analysis:run"

	// QueueAnalysis is the queue analysis jobs are enqueued on.
	QueueAnalysis = "analysis"
)

// NewAnalysisTask wraps req in a task. Analysis jobs are not retried: a
// failed call is recorded in history like any other outcome.
func NewAnalysisTask(req models.AnalysisRequest) (*asynq.Task, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis payload: %w", err)
	}
	return asynq.NewTask(TypeAnalysisJob, payload, asynq.MaxRetry(0), asynq.Queue(QueueAnalysis)), nil
}

// ParseAnalysisTask reads the request back out of a task.
func ParseAnalysisTask(t *asynq.Task) (models.AnalysisRequest, error) {
	var req models.AnalysisRequest
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		return models.AnalysisRequest{}, fmt.Errorf("unmarshal analysis payload: %w", err)
	}
	return req, nil
}
