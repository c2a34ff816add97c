package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tasnif/internal/models"
	"tasnif/internal/store"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// In-memory store fakes shared by the service tests.

type fakeTaxonomyStore struct {
	categories []*models.Category
	subs       []*models.Subcategory
	nextCatID  int64
	nextSubID  int64
}

func newFakeTaxonomyStore() *fakeTaxonomyStore {
	return &fakeTaxonomyStore{nextCatID: 1, nextSubID: 1}
}

// seed inserts a category with subcategories, bypassing duplicate checks.
func (f *fakeTaxonomyStore) seed(name string, subNames ...string) {
	cat := &models.Category{ID: f.nextCatID, Name: name, Position: len(f.categories)}
	f.nextCatID++
	f.categories = append(f.categories, cat)
	for i, subName := range subNames {
		f.subs = append(f.subs, &models.Subcategory{
			ID: f.nextSubID, CategoryID: cat.ID, Name: subName, Position: i,
		})
		f.nextSubID++
	}
}

func (f *fakeTaxonomyStore) CreateCategory(_ context.Context, category *models.Category) error {
	for _, c := range f.categories {
		if c.Name == category.Name {
			return store.ErrDuplicate
		}
	}
	category.ID = f.nextCatID
	f.nextCatID++
	f.categories = append(f.categories, category)
	return nil
}

func (f *fakeTaxonomyStore) GetCategory(_ context.Context, id int64) (*models.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeTaxonomyStore) GetCategoryByName(_ context.Context, name string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeTaxonomyStore) ListCategories(_ context.Context) ([]*models.Category, error) {
	return f.categories, nil
}

func (f *fakeTaxonomyStore) CreateSubcategory(_ context.Context, sub *models.Subcategory) error {
	for _, s := range f.subs {
		if s.CategoryID == sub.CategoryID && s.Name == sub.Name {
			return store.ErrDuplicate
		}
	}
	sub.ID = f.nextSubID
	f.nextSubID++
	f.subs = append(f.subs, sub)
	return nil
}

func (f *fakeTaxonomyStore) ListSubcategories(_ context.Context, categoryID int64) ([]*models.Subcategory, error) {
	var out []*models.Subcategory
	for _, s := range f.subs {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeTaxonomyStore) ListAllSubcategories(_ context.Context) ([]*models.Subcategory, error) {
	return f.subs, nil
}

func (f *fakeTaxonomyStore) Ping(_ context.Context) error { return nil }

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.ClassificationSession
	messages map[uuid.UUID][]*models.SessionMessage
	nextMsg  int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: make(map[uuid.UUID]*models.ClassificationSession),
		messages: make(map[uuid.UUID][]*models.SessionMessage),
		nextMsg:  1,
	}
}

func (f *fakeSessionStore) CreateSession(_ context.Context, session *models.ClassificationSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.Status == "" {
		session.Status = models.SessionStatusOpen
	}
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) GetSession(_ context.Context, id uuid.UUID) (*models.ClassificationSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return session, nil
}

func (f *fakeSessionStore) CloseSession(_ context.Context, id uuid.UUID, categoryID, subcategoryID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return store.ErrNotFound
	}
	if session.Status != models.SessionStatusOpen {
		return store.ErrConflict
	}
	session.Status = models.SessionStatusClosed
	session.CategoryID = &categoryID
	session.SubcategoryID = &subcategoryID
	return nil
}

func (f *fakeSessionStore) AppendMessage(_ context.Context, msg *models.SessionMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = f.nextMsg
	f.nextMsg++
	msg.CreatedAt = time.Now()
	f.messages[msg.SessionID] = append(f.messages[msg.SessionID], msg)
	return nil
}

func (f *fakeSessionStore) ListMessages(_ context.Context, sessionID uuid.UUID) ([]*models.SessionMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[sessionID], nil
}

type fakeTopicStore struct {
	mu     sync.Mutex
	topics map[int64]*models.Topic
	nextID int64
}

func newFakeTopicStore() *fakeTopicStore {
	return &fakeTopicStore{topics: make(map[int64]*models.Topic), nextID: 1}
}

func (f *fakeTopicStore) CreateTopic(_ context.Context, topic *models.Topic) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	topic.ID = f.nextID
	f.nextID++
	topic.CreatedAt = time.Now()
	topic.UpdatedAt = topic.CreatedAt
	f.topics[topic.ID] = topic
	return nil
}

func (f *fakeTopicStore) GetTopic(_ context.Context, id int64) (*models.Topic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	topic, ok := f.topics[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return topic, nil
}

func (f *fakeTopicStore) UpdateTopicClassification(_ context.Context, topicID int64, categoryID, subcategoryID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	topic, ok := f.topics[topicID]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now()
	topic.CategoryID = &categoryID
	topic.SubcategoryID = &subcategoryID
	topic.Status = models.TopicStatusClassified
	topic.ClassifiedAt = &now
	return nil
}

func (f *fakeTopicStore) ListTopics(_ context.Context, limit, offset int) ([]*models.Topic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Topic
	for _, t := range f.topics {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTopicStore) ListUnclassifiedTopics(_ context.Context, limit int) ([]*models.Topic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Topic
	for _, t := range f.topics {
		if t.Status == models.TopicStatusPending {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeJobClient struct {
	enqueued []int64
	err      error
}

func (f *fakeJobClient) Enqueue(_ context.Context, _ *asynq.Task, _ string, _ int64, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	return nil, fmt.Errorf("not used in tests")
}

func (f *fakeJobClient) EnqueueReclassifyJob(_ context.Context, topicID int64) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, topicID)
	return nil
}

func (f *fakeJobClient) Close() error { return nil }

var (
	_ store.TaxonomyStore = (*fakeTaxonomyStore)(nil)
	_ store.SessionStore  = (*fakeSessionStore)(nil)
	_ store.TopicStore    = (*fakeTopicStore)(nil)
	_ store.JobClient     = (*fakeJobClient)(nil)
)
