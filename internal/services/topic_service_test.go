package services_test

import (
	"context"
	"testing"

	"tasnif/internal/models"
	"tasnif/internal/services"
	"tasnif/pkg/classifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTopicService(topics *fakeTopicStore, jobs *fakeJobClient) *services.TopicService {
	taxonomy := services.NewTaxonomyService(seedTaxonomy())
	engine := classifier.NewRuleEngine(nil)
	// A typed nil would not compare equal to nil inside the service.
	if jobs == nil {
		return services.NewTopicService(topics, taxonomy, engine, nil)
	}
	return services.NewTopicService(topics, taxonomy, engine, jobs)
}

func TestTopicService_CreateTopicCleansBody(t *testing.T) {
	topics := newFakeTopicStore()
	svc := newTopicService(topics, nil)

	topic, err := svc.CreateTopic(context.Background(), "Frontend sorusu",
		"<p>React projemde <strong>state</strong> sorunu var</p>")
	require.NoError(t, err)
	assert.Equal(t, "React projemde state sorunu var", topic.Body)
	assert.Equal(t, models.TopicStatusPending, topic.Status)
}

func TestTopicService_CreateTopicValidation(t *testing.T) {
	svc := newTopicService(newFakeTopicStore(), nil)

	_, err := svc.CreateTopic(context.Background(), "", "gövde metni")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.CreateTopic(context.Background(), "başlık", "<script>x</script>")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestTopicService_Reclassify(t *testing.T) {
	topics := newFakeTopicStore()
	svc := newTopicService(topics, nil)
	ctx := context.Background()

	topic, err := svc.CreateTopic(ctx, "Yardım",
		"React ve TypeScript ile frontend geliştirme yapıyorum yardım istiyorum")
	require.NoError(t, err)

	outcome, err := svc.Reclassify(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yazılım Dünyası", outcome.CategoryName)
	assert.Equal(t, "Frontend Geliştirme", outcome.SubcategoryName)

	stored, err := topics.GetTopic(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TopicStatusClassified, stored.Status)
	require.NotNil(t, stored.CategoryID)
	assert.Equal(t, outcome.CategoryID, *stored.CategoryID)
	assert.NotNil(t, stored.ClassifiedAt)
}

func TestTopicService_SuggestCategoryForcesDecision(t *testing.T) {
	svc := newTopicService(newFakeTopicStore(), nil)

	// Two tokens would trigger the clarification gate in a dialogue; a topic
	// suggestion has nobody to ask and must still commit.
	outcome, err := svc.SuggestCategory(context.Background(), &models.Topic{
		ID: 1, Title: "merhaba", Body: "selamlar",
	})
	require.NoError(t, err)
	assert.Equal(t, classifier.KindClassified, outcome.Kind)
	assert.Equal(t, "Genel", outcome.CategoryName)
}

func TestTopicService_EnqueueReclassify(t *testing.T) {
	topics := newFakeTopicStore()
	jobs := &fakeJobClient{}
	svc := newTopicService(topics, jobs)
	ctx := context.Background()

	topic, err := svc.CreateTopic(ctx, "başlık", "uzun bir gövde metni burada")
	require.NoError(t, err)

	require.NoError(t, svc.EnqueueReclassify(ctx, topic.ID))
	assert.Equal(t, []int64{topic.ID}, jobs.enqueued)

	// Unknown topics are rejected before anything is enqueued.
	err = svc.EnqueueReclassify(ctx, 9999)
	require.Error(t, err)
	assert.Len(t, jobs.enqueued, 1)
}

func TestTopicService_EnqueueReclassifyPending(t *testing.T) {
	topics := newFakeTopicStore()
	jobs := &fakeJobClient{}
	svc := newTopicService(topics, jobs)
	ctx := context.Background()

	first, err := svc.CreateTopic(ctx, "birinci", "flutter ile mobil uygulama yapıyorum")
	require.NoError(t, err)
	second, err := svc.CreateTopic(ctx, "ikinci", "laravel ile backend geliştirme yapıyorum")
	require.NoError(t, err)

	// Already-classified topics are not re-enqueued.
	_, err = svc.Reclassify(ctx, second.ID)
	require.NoError(t, err)

	enqueued, err := svc.EnqueueReclassifyPending(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, enqueued)
	assert.Equal(t, []int64{first.ID}, jobs.enqueued)
}

func TestTopicService_EnqueueWithoutJobClient(t *testing.T) {
	topics := newFakeTopicStore()
	svc := newTopicService(topics, nil)

	err := svc.EnqueueReclassify(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no job client")
}
