package store

import (
	"context"
	"encoding/json"
	"fmt"

	"tasnif/internal/models"
	"tasnif/internal/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// AsynqJobClient is a concrete JobClient. It enqueues classification tasks
// and records them to the JobStore.
var _ JobClient = (*AsynqJobClient)(nil)

type AsynqJobClient struct {
	client   *asynq.Client
	jobStore JobStore
}

func NewAsynqJobClient(redisAddr string, js JobStore) (*AsynqJobClient, error) {
	if js == nil {
		return nil, fmt.Errorf("JobStore cannot be nil for AsynqJobClient")
	}
	cli := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})
	return &AsynqJobClient{client: cli, jobStore: js}, nil
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

// Enqueue enqueues a task and records the event to the JobStore.
func (jc *AsynqJobClient) Enqueue(ctx context.Context, task *asynq.Task, relatedEntityType string, relatedEntityID int64, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if jc.client == nil {
		return nil, fmt.Errorf("AsynqJobClient internal client is not initialized")
	}
	info, err := jc.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return nil, err
	}

	jobUUID, err := uuid.Parse(info.ID)
	if err != nil {
		// The job is already enqueued; record what we can.
		log.WithError(err).Warnf("failed to parse asynq task ID %q to UUID, job record may be incomplete", info.ID)
	}

	recordParams := JobRecordParams{
		JobID:             jobUUID,
		TaskType:          task.Type(),
		Queue:             info.Queue,
		Status:            models.JobStatusEnqueued,
		RelatedEntityType: relatedEntityType,
		RelatedEntityID:   relatedEntityID,
	}
	if err := jc.jobStore.RecordJobEnqueue(ctx, recordParams); err != nil {
		log.WithError(err).Errorf("failed to record job enqueue event for task ID %s", info.ID)
	}

	return info, nil
}

func (jc *AsynqJobClient) EnqueueReclassifyJob(ctx context.Context, topicID int64) error {
	payload, _ := json.Marshal(tasks.ReclassifyPayload{TopicID: topicID})
	task := asynq.NewTask(tasks.TypeTopicReclassify, payload)
	_, err := jc.Enqueue(ctx, task, "topic", topicID, asynq.Queue(tasks.QueueClassification))
	if err != nil {
		return fmt.Errorf("enqueue reclassify job for topic %d: %w", topicID, err)
	}
	return nil
}
