package primary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tasnif/internal/models"
	"tasnif/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- Topic Management ---

func (s *StoreImpl) CreateTopic(ctx context.Context, topic *models.Topic) error {
	query := `
		INSERT INTO topics (title, body, category_id, subcategory_id, status, classified_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	if topic.Status == "" {
		topic.Status = models.TopicStatusPending
	}

	err := s.db.QueryRow(ctx, query,
		topic.Title, topic.Body, topic.CategoryID, topic.SubcategoryID,
		topic.Status, topic.ClassifiedAt, now, now,
	).Scan(&topic.ID, &topic.CreatedAt, &topic.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("referenced category or subcategory does not exist: %w", store.ErrForeignKeyViolation)
		}
		return fmt.Errorf("failed to insert topic: %w", err)
	}
	return nil
}

func (s *StoreImpl) GetTopic(ctx context.Context, id int64) (*models.Topic, error) {
	query := `
		SELECT id, title, body, category_id, subcategory_id, status, classified_at, created_at, updated_at
		FROM topics WHERE id = $1`
	topic := &models.Topic{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&topic.ID, &topic.Title, &topic.Body, &topic.CategoryID, &topic.SubcategoryID,
		&topic.Status, &topic.ClassifiedAt, &topic.CreatedAt, &topic.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get topic by id %d: %w", id, err)
	}
	return topic, nil
}

func (s *StoreImpl) UpdateTopicClassification(ctx context.Context, topicID int64, categoryID, subcategoryID int64) error {
	query := `
		UPDATE topics
		SET category_id = $1, subcategory_id = $2, status = $3, classified_at = $4, updated_at = $4
		WHERE id = $5`
	now := time.Now()
	cmdTag, err := s.db.Exec(ctx, query, categoryID, subcategoryID, models.TopicStatusClassified, now, topicID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("referenced category or subcategory does not exist: %w", store.ErrForeignKeyViolation)
		}
		return fmt.Errorf("failed to update classification for topic %d: %w", topicID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("topic %d not found to update classification: %w", topicID, store.ErrNotFound)
	}
	return nil
}

func (s *StoreImpl) ListTopics(ctx context.Context, limit, offset int) ([]*models.Topic, error) {
	query := `
		SELECT id, title, body, category_id, subcategory_id, status, classified_at, created_at, updated_at
		FROM topics
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
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	return collectTopics(rows)
}

func (s *StoreImpl) ListUnclassifiedTopics(ctx context.Context, limit int) ([]*models.Topic, error) {
	query := `
		SELECT id, title, body, category_id, subcategory_id, status, classified_at, created_at, updated_at
		FROM topics
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2`
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, query, models.TopicStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unclassified topics: %w", err)
	}
	defer rows.Close()

	return collectTopics(rows)
}

func collectTopics(rows pgx.Rows) ([]*models.Topic, error) {
	var topics []*models.Topic
	for rows.Next() {
		topic := &models.Topic{}
		if err := scanTopic(rows, topic); err != nil {
			return nil, fmt.Errorf("failed to scan topic row: %w", err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating topic rows: %w", err)
	}
	return topics, nil
}

// Ensure StoreImpl satisfies the TopicStore interface
var _ store.TopicStore = (*StoreImpl)(nil)
