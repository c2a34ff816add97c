package services_test

import (
	"context"
	"errors"
	"testing"

	"tasnif/internal/models"
	"tasnif/internal/services"
	"tasnif/pkg/classifier"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTaxonomy() *fakeTaxonomyStore {
	ts := newFakeTaxonomyStore()
	ts.seed("Genel", "Genel")
	ts.seed("Yazılım Dünyası", "Frontend Geliştirme", "Backend Geliştirme", "Eğitim İçerikleri")
	ts.seed("Freelancer", "Hizmet Verme", "Hizmet Alma")
	return ts
}

func newClassificationService(sessions *fakeSessionStore) *services.ClassificationService {
	taxonomy := services.NewTaxonomyService(seedTaxonomy())
	engine := classifier.NewRuleEngine(nil)
	return services.NewClassificationService(sessions, taxonomy, engine, nil)
}

func TestClassificationService_FullDialogue(t *testing.T) {
	sessions := newFakeSessionStore()
	svc := newClassificationService(sessions)
	ctx := context.Background()

	// Turn 1: ambiguous tutoring offer opens a session and asks back.
	outcome, err := svc.HandleMessage(ctx, nil, "özel ders veriyorum")
	require.NoError(t, err)
	assert.Equal(t, classifier.KindNeedsClarification, outcome.Kind)
	assert.NotEmpty(t, outcome.Question)
	require.NotEqual(t, uuid.Nil, outcome.SessionID)

	// Both the user message and the question are on the transcript.
	msgs, err := sessions.ListMessages(ctx, outcome.SessionID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, classifier.RoleUser, msgs[0].Role)
	assert.Equal(t, classifier.RoleAssistant, msgs[1].Role)

	// Turn 2: the answer commits and closes the session.
	sessionID := outcome.SessionID
	outcome, err = svc.HandleMessage(ctx, &sessionID, "evet bir ilan bu hizmet veriyorum")
	require.NoError(t, err)
	assert.Equal(t, classifier.KindClassified, outcome.Kind)
	assert.Equal(t, "Freelancer", outcome.CategoryName)
	assert.Equal(t, "Hizmet Verme", outcome.SubcategoryName)
	assert.NotZero(t, outcome.CategoryID)
	assert.NotZero(t, outcome.SubcategoryID)

	session, err := sessions.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusClosed, session.Status)
	require.NotNil(t, session.CategoryID)
	assert.Equal(t, outcome.CategoryID, *session.CategoryID)
}

func TestClassificationService_SingleTurnClassification(t *testing.T) {
	svc := newClassificationService(newFakeSessionStore())

	outcome, err := svc.HandleMessage(context.Background(), nil,
		"React ve TypeScript ile frontend geliştirme yapıyorum yardım istiyorum")
	require.NoError(t, err)
	assert.Equal(t, classifier.KindClassified, outcome.Kind)
	assert.Equal(t, "Yazılım Dünyası", outcome.CategoryName)
	assert.Equal(t, "Frontend Geliştirme", outcome.SubcategoryName)
}

func TestClassificationService_ClosedSessionRejected(t *testing.T) {
	sessions := newFakeSessionStore()
	svc := newClassificationService(sessions)
	ctx := context.Background()

	outcome, err := svc.HandleMessage(ctx, nil,
		"React ve TypeScript ile frontend geliştirme yapıyorum yardım istiyorum")
	require.NoError(t, err)
	require.Equal(t, classifier.KindClassified, outcome.Kind)

	sessionID := outcome.SessionID
	_, err = svc.HandleMessage(ctx, &sessionID, "bir şey daha var")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrSessionClosed)
}

func TestClassificationService_UnknownSession(t *testing.T) {
	svc := newClassificationService(newFakeSessionStore())

	missing := uuid.New()
	_, err := svc.HandleMessage(context.Background(), &missing, "merhaba arkadaşlar nasılsınız")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestClassificationService_EmptyMessage(t *testing.T) {
	svc := newClassificationService(newFakeSessionStore())

	_, err := svc.HandleMessage(context.Background(), nil, "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

type failingEngine struct{}

func (failingEngine) Classify(context.Context, classifier.Request) (classifier.Result, error) {
	return classifier.Result{}, errors.New("api unavailable")
}

func TestClassificationService_FallbackEngine(t *testing.T) {
	sessions := newFakeSessionStore()
	taxonomy := services.NewTaxonomyService(seedTaxonomy())
	svc := services.NewClassificationService(sessions, taxonomy, failingEngine{}, classifier.NewRuleEngine(nil))

	outcome, err := svc.HandleMessage(context.Background(), nil,
		"React ve TypeScript ile frontend geliştirme yapıyorum yardım istiyorum")
	require.NoError(t, err)
	assert.Equal(t, classifier.KindClassified, outcome.Kind)
	assert.Equal(t, "Frontend Geliştirme", outcome.SubcategoryName)
}

func TestClassificationService_NoFallbackPropagatesError(t *testing.T) {
	sessions := newFakeSessionStore()
	taxonomy := services.NewTaxonomyService(seedTaxonomy())
	svc := services.NewClassificationService(sessions, taxonomy, failingEngine{}, nil)

	_, err := svc.HandleMessage(context.Background(), nil, "merhaba arkadaşlar nasılsınız")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classification failed")
}
