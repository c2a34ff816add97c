package store

import (
	"context"
	"tasnif/internal/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// --- Job Client ---

type JobClient interface {
	// Enqueue includes related entity info for recording purposes
	Enqueue(ctx context.Context, task *asynq.Task, relatedEntityType string, relatedEntityID int64, opts ...asynq.Option) (*asynq.TaskInfo, error)
	EnqueueReclassifyJob(ctx context.Context, topicID int64) error
	Close() error
}

// --- Taxonomy Store ---

type TaxonomyStore interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateSubcategory(ctx context.Context, sub *models.Subcategory) error
	ListSubcategories(ctx context.Context, categoryID int64) ([]*models.Subcategory, error)
	ListAllSubcategories(ctx context.Context) ([]*models.Subcategory, error)

	Ping(ctx context.Context) error
}

// --- Topic Store ---

type TopicStore interface {
	CreateTopic(ctx context.Context, topic *models.Topic) error
	GetTopic(ctx context.Context, id int64) (*models.Topic, error)
	UpdateTopicClassification(ctx context.Context, topicID int64, categoryID, subcategoryID int64) error
	ListTopics(ctx context.Context, limit, offset int) ([]*models.Topic, error)
	ListUnclassifiedTopics(ctx context.Context, limit int) ([]*models.Topic, error)
}

// --- Session Store ---

type SessionStore interface {
	CreateSession(ctx context.Context, session *models.ClassificationSession) error
	GetSession(ctx context.Context, id uuid.UUID) (*models.ClassificationSession, error)
	CloseSession(ctx context.Context, id uuid.UUID, categoryID, subcategoryID int64) error
	AppendMessage(ctx context.Context, msg *models.SessionMessage) error
	ListMessages(ctx context.Context, sessionID uuid.UUID) ([]*models.SessionMessage, error)
}

// --- Job Store ---

// JobRecordParams holds parameters for recording a job event.
type JobRecordParams struct {
	JobID             uuid.UUID
	TaskType          string
	Queue             string
	Status            string
	RelatedEntityType string // Optional: e.g., "topic"
	RelatedEntityID   int64  // Optional: e.g., topic.ID
}

type JobStore interface {
	RecordJobEnqueue(ctx context.Context, params JobRecordParams) error
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string) error
	ListJobs(ctx context.Context, limit, offset int) ([]*models.BackgroundJob, error)
}
