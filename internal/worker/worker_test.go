package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"tasnif/internal/models"
	"tasnif/internal/services"
	"tasnif/internal/store"
	"tasnif/internal/tasks"
	"tasnif/internal/worker"
	"tasnif/pkg/classifier"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTaxonomyStore struct{}

func (memTaxonomyStore) CreateCategory(context.Context, *models.Category) error    { return nil }
func (memTaxonomyStore) GetCategory(context.Context, int64) (*models.Category, error) {
	return nil, store.ErrNotFound
}
func (memTaxonomyStore) GetCategoryByName(context.Context, string) (*models.Category, error) {
	return nil, store.ErrNotFound
}
func (memTaxonomyStore) ListCategories(context.Context) ([]*models.Category, error) {
	return []*models.Category{
		{ID: 1, Name: "Genel"},
		{ID: 2, Name: "Yazılım Dünyası"},
	}, nil
}
func (memTaxonomyStore) CreateSubcategory(context.Context, *models.Subcategory) error { return nil }
func (memTaxonomyStore) ListSubcategories(context.Context, int64) ([]*models.Subcategory, error) {
	return nil, nil
}
func (memTaxonomyStore) ListAllSubcategories(context.Context) ([]*models.Subcategory, error) {
	return []*models.Subcategory{
		{ID: 10, CategoryID: 1, Name: "Genel"},
		{ID: 20, CategoryID: 2, Name: "Frontend Geliştirme"},
	}, nil
}
func (memTaxonomyStore) Ping(context.Context) error { return nil }

type memTopicStore struct {
	mu     sync.Mutex
	topics map[int64]*models.Topic
}

func (m *memTopicStore) CreateTopic(_ context.Context, t *models.Topic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics[t.ID] = t
	return nil
}
func (m *memTopicStore) GetTopic(_ context.Context, id int64) (*models.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.topics[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return t, nil
}
func (m *memTopicStore) UpdateTopicClassification(_ context.Context, id int64, catID, subID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.topics[id]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now()
	t.CategoryID = &catID
	t.SubcategoryID = &subID
	t.Status = models.TopicStatusClassified
	t.ClassifiedAt = &now
	return nil
}
func (m *memTopicStore) ListTopics(context.Context, int, int) ([]*models.Topic, error) {
	return nil, nil
}
func (m *memTopicStore) ListUnclassifiedTopics(context.Context, int) ([]*models.Topic, error) {
	return nil, nil
}

func newDeps(topics *memTopicStore) worker.ReclassifyDeps {
	taxonomy := services.NewTaxonomyService(memTaxonomyStore{})
	svc := services.NewTopicService(topics, taxonomy, classifier.NewRuleEngine(nil), nil)
	return worker.ReclassifyDeps{TopicService: svc}
}

func reclassifyTask(t *testing.T, topicID int64) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(tasks.ReclassifyPayload{TopicID: topicID})
	require.NoError(t, err)
	return asynq.NewTask(tasks.TypeTopicReclassify, payload)
}

func TestHandleTopicReclassifyJob(t *testing.T) {
	topics := &memTopicStore{topics: map[int64]*models.Topic{
		42: {ID: 42, Title: "Yardım", Body: "react ile frontend geliştirme yapıyorum", Status: models.TopicStatusPending},
	}}
	handler := worker.HandleTopicReclassifyJob(newDeps(topics))

	err := handler(context.Background(), reclassifyTask(t, 42))
	require.NoError(t, err)

	topic, err := topics.GetTopic(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, models.TopicStatusClassified, topic.Status)
	require.NotNil(t, topic.CategoryID)
	assert.Equal(t, int64(2), *topic.CategoryID)
	assert.Equal(t, int64(20), *topic.SubcategoryID)
}

func TestHandleTopicReclassifyJob_UnknownTopic(t *testing.T) {
	topics := &memTopicStore{topics: map[int64]*models.Topic{}}
	handler := worker.HandleTopicReclassifyJob(newDeps(topics))

	err := handler(context.Background(), reclassifyTask(t, 999))
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry), "missing topics should stay retryable")
}

func TestHandleTaskError_TaskWithoutResultWriter(t *testing.T) {
	// The asynq server hands the error handler a bare task; reading its
	// ResultWriter would dereference nil.
	task := asynq.NewTask(tasks.TypeTopicReclassify, []byte(`{"topic_id":1}`))
	require.Nil(t, task.ResultWriter())

	require.NotPanics(t, func() {
		worker.HandleTaskError(context.Background(), task, errors.New("redis connection lost"))
	})
}

func TestHandleTopicReclassifyJob_MalformedPayload(t *testing.T) {
	handler := worker.HandleTopicReclassifyJob(newDeps(&memTopicStore{topics: map[int64]*models.Topic{}}))

	err := handler(context.Background(), asynq.NewTask(tasks.TypeTopicReclassify, []byte("not json")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = handler(context.Background(), asynq.NewTask(tasks.TypeTopicReclassify, []byte("{}")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
