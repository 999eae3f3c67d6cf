package store

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"alchemy/internal/models"
	"alchemy/internal/tasks"
)

// AsynqJobClient enqueues analysis jobs on Redis through asynq.
var _ JobClient = (*AsynqJobClient)(nil)

type AsynqJobClient struct {
	client *asynq.Client
}

func NewAsynqJobClient(opt asynq.RedisClientOpt) *AsynqJobClient {
	return &AsynqJobClient{client: asynq.NewClient(opt)}
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

// EnqueueAnalysis validates req before queueing it so bad requests fail fast.
func (jc *AsynqJobClient) EnqueueAnalysis(ctx context.Context, req models.AnalysisRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	task, err := tasks.NewAnalysisTask(req)
	if err != nil {
		return "", err
	}
	info, err := jc.client.EnqueueContext(ctx, task)
	if err != nil {
		return "", fmt.Errorf("enqueue %s analysis: %w", req.Capability, err)
	}
	log.WithFields(log.Fields{
		"task_id":    info.ID,
		"queue":      info.Queue,
		"capability": req.Capability,
	}).Debug("Enqueued analysis job")
	return info.ID, nil
}
