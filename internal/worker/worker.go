// Package worker implements the Asynq task handlers for background
// classification jobs.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"tasnif/internal/models"
	"tasnif/internal/services"
	"tasnif/internal/store"
	"tasnif/internal/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// ReclassifyDeps bundles the dependencies of the reclassification handler.
type ReclassifyDeps struct {
	TopicService *services.TopicService
	JobStore     store.JobStore // may be nil; job status updates are then skipped
}

// RegisterHandlers wires the classification task handlers onto the mux.
func RegisterHandlers(mux *asynq.ServeMux, deps ReclassifyDeps) {
	mux.HandleFunc(tasks.TypeTopicReclassify, HandleTopicReclassifyJob(deps))
}

// HandleTaskError logs a failed task for the asynq server's ErrorHandler.
// asynq invokes the error handler with tasks that carry no ResultWriter, so
// only the type and payload may be read here.
func HandleTaskError(_ context.Context, task *asynq.Task, err error) {
	log.WithFields(log.Fields{
		"type":    task.Type(),
		"payload": string(task.Payload()),
	}).WithError(err).Error("task failed")
}

// HandleTopicReclassifyJob returns the handler for topic:reclassify tasks.
func HandleTopicReclassifyJob(deps ReclassifyDeps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload tasks.ReclassifyPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			// Malformed payloads never succeed; skip retries.
			return fmt.Errorf("failed to unmarshal reclassify payload: %v: %w", err, asynq.SkipRetry)
		}
		if payload.TopicID == 0 {
			return fmt.Errorf("reclassify payload has no topic_id: %w", asynq.SkipRetry)
		}

		markJob(ctx, deps.JobStore, task, models.JobStatusRunning)

		outcome, err := deps.TopicService.Reclassify(ctx, payload.TopicID)
		if err != nil {
			markJob(ctx, deps.JobStore, task, models.JobStatusFailed)
			return fmt.Errorf("reclassify topic %d: %w", payload.TopicID, err)
		}

		log.WithFields(log.Fields{
			"topic_id":    payload.TopicID,
			"category":    outcome.CategoryName,
			"subcategory": outcome.SubcategoryName,
		}).Info("reclassification job completed")
		markJob(ctx, deps.JobStore, task, models.JobStatusCompleted)
		return nil
	}
}

// markJob best-effort updates the recorded job status. A failed update is
// logged, never propagated: the task result is what matters.
func markJob(ctx context.Context, jobStore store.JobStore, task *asynq.Task, status string) {
	if jobStore == nil || task.ResultWriter() == nil {
		return
	}
	jobID, err := uuid.Parse(task.ResultWriter().TaskID())
	if err != nil {
		return
	}
	if err := jobStore.UpdateJobStatus(ctx, jobID, status); err != nil {
		log.WithError(err).Debugf("failed to update job %s status to %s", jobID, status)
	}
}
