package services

import (
	"context"
	"fmt"
	"strings"

	"tasnif/internal/htmltext"
	"tasnif/internal/models"
	"tasnif/internal/store"
	"tasnif/internal/util"
	"tasnif/pkg/classifier"

	log "github.com/sirupsen/logrus"
)

// TopicService manages forum topics and their (re)classification.
type TopicService struct {
	topics    store.TopicStore
	taxonomy  *TaxonomyService
	engine    classifier.Engine
	jobClient store.JobClient // may be nil when no worker is configured
}

func NewTopicService(topics store.TopicStore, taxonomy *TaxonomyService, engine classifier.Engine, jobClient store.JobClient) *TopicService {
	return &TopicService{
		topics:    topics,
		taxonomy:  taxonomy,
		engine:    engine,
		jobClient: jobClient,
	}
}

// CreateTopic stores a new pending topic. The body is reduced to plain text
// before storage: editor HTML is stripped and smart punctuation normalized.
func (s *TopicService) CreateTopic(ctx context.Context, title, body string) (*models.Topic, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("topic title cannot be empty: %w", models.ErrValidation)
	}
	body = util.CleanText(htmltext.Extract(body))
	if body == "" {
		return nil, fmt.Errorf("topic body cannot be empty: %w", models.ErrValidation)
	}

	topic := &models.Topic{Title: title, Body: body, Status: models.TopicStatusPending}
	if err := s.topics.CreateTopic(ctx, topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}
	return topic, nil
}

func (s *TopicService) GetTopic(ctx context.Context, id int64) (*models.Topic, error) {
	return s.topics.GetTopic(ctx, id)
}

func (s *TopicService) ListTopics(ctx context.Context, limit, offset int) ([]*models.Topic, error) {
	return s.topics.ListTopics(ctx, limit, offset)
}

// SuggestCategory runs a single forced-decision classification over the
// topic's title and body. There is no user to ask, so the engine is pushed
// past the clarification phase.
func (s *TopicService) SuggestCategory(ctx context.Context, topic *models.Topic) (*ClassificationOutcome, error) {
	taxonomy, err := s.taxonomy.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(topic.Title + " " + topic.Body)
	result, err := s.engine.Classify(ctx, classifier.Request{
		Input:    text,
		Taxonomy: taxonomy,
		History:  []classifier.Message{{Role: classifier.RoleUser, Text: text}},
		Phase:    classifier.PhaseClarificationAnswer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to classify topic %d: %w", topic.ID, err)
	}
	if result.Kind != classifier.KindClassified {
		return nil, fmt.Errorf("engine did not commit to a category for topic %d", topic.ID)
	}

	catID, subID, ok := classifier.FindPair(taxonomy, result.CategoryName, result.SubcategoryName)
	if !ok {
		return nil, fmt.Errorf("engine returned unknown pair %q > %q for topic %d",
			result.CategoryName, result.SubcategoryName, topic.ID)
	}
	return &ClassificationOutcome{
		Kind:            result.Kind,
		CategoryID:      catID,
		CategoryName:    result.CategoryName,
		SubcategoryID:   subID,
		SubcategoryName: result.SubcategoryName,
	}, nil
}

// Reclassify recomputes and persists the classification of a stored topic.
func (s *TopicService) Reclassify(ctx context.Context, topicID int64) (*ClassificationOutcome, error) {
	topic, err := s.topics.GetTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to load topic %d: %w", topicID, err)
	}

	outcome, err := s.SuggestCategory(ctx, topic)
	if err != nil {
		return nil, err
	}

	if err := s.topics.UpdateTopicClassification(ctx, topicID, outcome.CategoryID, outcome.SubcategoryID); err != nil {
		return nil, fmt.Errorf("failed to persist classification for topic %d: %w", topicID, err)
	}
	log.WithFields(log.Fields{
		"topic_id":    topicID,
		"category":    outcome.CategoryName,
		"subcategory": outcome.SubcategoryName,
	}).Info("topic reclassified")
	return outcome, nil
}

// EnqueueReclassify hands the topic to the background worker.
func (s *TopicService) EnqueueReclassify(ctx context.Context, topicID int64) error {
	if s.jobClient == nil {
		return fmt.Errorf("no job client configured, cannot enqueue reclassification")
	}
	if _, err := s.topics.GetTopic(ctx, topicID); err != nil {
		return fmt.Errorf("failed to load topic %d: %w", topicID, err)
	}
	return s.jobClient.EnqueueReclassifyJob(ctx, topicID)
}

// EnqueueReclassifyPending enqueues a reclassification job for every topic
// still in the pending state, up to limit. Returns the number enqueued.
func (s *TopicService) EnqueueReclassifyPending(ctx context.Context, limit int) (int, error) {
	if s.jobClient == nil {
		return 0, fmt.Errorf("no job client configured, cannot enqueue reclassification")
	}

	topics, err := s.topics.ListUnclassifiedTopics(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending topics: %w", err)
	}

	enqueued := 0
	for _, topic := range topics {
		if err := s.jobClient.EnqueueReclassifyJob(ctx, topic.ID); err != nil {
			log.WithError(err).WithField("topic_id", topic.ID).Warn("failed to enqueue reclassification")
			continue
		}
		enqueued++
	}
	return enqueued, nil
}
