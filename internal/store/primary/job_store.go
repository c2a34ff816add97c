package primary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tasnif/internal/models"
	"tasnif/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// --- Job Store Implementation ---

// RecordJobEnqueue inserts a record into the background_jobs table.
func (s *StoreImpl) RecordJobEnqueue(ctx context.Context, params store.JobRecordParams) error {
	query := `
		INSERT INTO background_jobs (job_id, task_type, queue, status, related_entity_type, related_entity_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (job_id) DO NOTHING
		RETURNING id`

	now := time.Now()
	var insertedID int64

	var relatedID sql.NullInt64
	if params.RelatedEntityID != 0 {
		relatedID = sql.NullInt64{Int64: params.RelatedEntityID, Valid: true}
	}

	err := s.db.QueryRow(ctx, query,
		params.JobID,
		params.TaskType,
		params.Queue,
		params.Status,
		params.RelatedEntityType,
		relatedID,
		now,
		now,
	).Scan(&insertedID)

	if err != nil {
		// ON CONFLICT DO NOTHING surfaces as pgx.ErrNoRows when the job was
		// already recorded; that is not an error here.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to record job enqueue event for JobID %s: %w", params.JobID, err)
	}
	return nil
}

// UpdateJobStatus updates the status of a job given its Asynq Task UUID.
func (s *StoreImpl) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string) error {
	query := `UPDATE background_jobs SET status = $1, updated_at = $2 WHERE job_id = $3`
	now := time.Now()
	cmdTag, err := s.db.Exec(ctx, query, status, now, jobID)
	if err != nil {
		return fmt.Errorf("failed to update job status for job %s: %w", jobID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("job %s not found to update status: %w", jobID, store.ErrNotFound)
	}
	return nil
}

// ListJobs retrieves recorded background jobs, newest first.
func (s *StoreImpl) ListJobs(ctx context.Context, limit, offset int) ([]*models.BackgroundJob, error) {
	query := `
		SELECT id, job_id, task_type, queue, status, related_entity_type, related_entity_id, created_at, updated_at
		FROM background_jobs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query background jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.BackgroundJob
	for rows.Next() {
		job := &models.BackgroundJob{}
		err := rows.Scan(
			&job.ID, &job.JobID, &job.TaskType, &job.Queue, &job.Status,
			&job.RelatedEntityType, &job.RelatedEntityID,
			&job.CreatedAt, &job.UpdatedAt,
		)
		if err != nil {
			return jobs, fmt.Errorf("failed to scan background job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return jobs, fmt.Errorf("error iterating background job rows: %w", err)
	}
	return jobs, nil
}

// Ensure StoreImpl satisfies the JobStore interface
var _ store.JobStore = (*StoreImpl)(nil)
