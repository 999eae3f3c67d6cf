package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"alchemy/internal/models"
	"alchemy/internal/tasks"
)

// Analyzer runs one analysis request. services.AnalysisService satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisRecord, error)
}

// RegisterHandlers wires every job type onto mux.
func RegisterHandlers(mux *asynq.ServeMux, a Analyzer) {
	mux.HandleFunc(tasks.TypeAnalysisJob, HandleAnalysisJob(a))
	log.WithField("type", tasks.TypeAnalysisJob).Info("Registered job handler")
}

// HandleAnalysisJob runs a queued analysis. A call that reached the gateway
// and was recorded counts as handled even when the gateway reported an
// error; only failures before a record exists are returned to asynq.
func HandleAnalysisJob(a Analyzer) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		req, err := tasks.ParseAnalysisTask(t)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		logger := log.WithFields(log.Fields{
			"capability": req.Capability,
			"input":      req.Input(),
		})
		logger.Info("Processing analysis job")

		rec, err := a.Analyze(ctx, req)
		if rec != nil {
			entry := logger.WithFields(log.Fields{"analysis_id": rec.ID, "status": rec.Status})
			if err != nil {
				entry.WithError(err).Warn("Analysis job completed with a failed call")
			} else {
				entry.Info("Analysis job completed")
			}
			return nil
		}
		if errors.Is(err, models.ErrValidation) || errors.Is(err, models.ErrUnknownCapability) {
			return fmt.Errorf("invalid analysis job: %v: %w", err, asynq.SkipRetry)
		}
		if err != nil {
			return fmt.Errorf("analysis job %s: %w", req.Capability, err)
		}
		return nil
	}
}
