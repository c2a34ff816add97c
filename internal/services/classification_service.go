package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tasnif/internal/models"
	"tasnif/internal/store"
	"tasnif/pkg/classifier"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ClassificationOutcome is what a single dialogue turn produced: either a
// follow-up question to relay to the user or a committed category pair.
type ClassificationOutcome struct {
	SessionID uuid.UUID
	Kind      classifier.ResultKind
	Question  string
	Options   []string

	CategoryID      int64
	CategoryName    string
	SubcategoryID   int64
	SubcategoryName string
}

// ClassificationService orchestrates the clarification dialogue: it owns the
// session lifecycle and transcript, feeds the engine, and persists the
// outcome of each turn.
type ClassificationService struct {
	sessions store.SessionStore
	taxonomy *TaxonomyService
	engine   classifier.Engine
	fallback classifier.Engine // used when the primary engine errors; may be nil
}

func NewClassificationService(sessions store.SessionStore, taxonomy *TaxonomyService, engine classifier.Engine, fallback classifier.Engine) *ClassificationService {
	return &ClassificationService{
		sessions: sessions,
		taxonomy: taxonomy,
		engine:   engine,
		fallback: fallback,
	}
}

// HandleMessage advances a dialogue by one user turn. A nil sessionID opens
// a new session. The returned outcome carries the session ID either way so
// callers can continue the dialogue.
func (s *ClassificationService) HandleMessage(ctx context.Context, sessionID *uuid.UUID, message string) (*ClassificationOutcome, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("message cannot be empty: %w", models.ErrValidation)
	}

	session, err := s.loadOrCreateSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusOpen {
		return nil, fmt.Errorf("session %s: %w", session.ID, models.ErrSessionClosed)
	}

	userMsg := &models.SessionMessage{SessionID: session.ID, Role: classifier.RoleUser, Text: message}
	if err := s.sessions.AppendMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to record user message: %w", err)
	}

	stored, err := s.sessions.ListMessages(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session transcript: %w", err)
	}
	history := make([]classifier.Message, 0, len(stored))
	userTurns := 0
	for _, m := range stored {
		history = append(history, classifier.Message{Role: m.Role, Text: m.Text})
		if m.Role == classifier.RoleUser {
			userTurns++
		}
	}

	taxonomy, err := s.taxonomy.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	// Every turn after the first answers a clarification question and must
	// end in a decision.
	phase := classifier.PhaseFirstInput
	if userTurns > 1 {
		phase = classifier.PhaseClarificationAnswer
	}

	result, err := s.classify(ctx, classifier.Request{
		Input:    message,
		Taxonomy: taxonomy,
		History:  history,
		Phase:    phase,
	})
	if err != nil {
		return nil, err
	}

	if result.Kind == classifier.KindNeedsClarification {
		assistantMsg := &models.SessionMessage{
			SessionID: session.ID,
			Role:      classifier.RoleAssistant,
			Text:      result.Question,
		}
		if err := s.sessions.AppendMessage(ctx, assistantMsg); err != nil {
			return nil, fmt.Errorf("failed to record clarification question: %w", err)
		}
		return &ClassificationOutcome{
			SessionID: session.ID,
			Kind:      result.Kind,
			Question:  result.Question,
			Options:   result.Options,
		}, nil
	}

	catID, subID, ok := classifier.FindPair(taxonomy, result.CategoryName, result.SubcategoryName)
	if !ok {
		// The engine contract guarantees the pair exists; treat a breach as
		// an internal error rather than guessing.
		return nil, fmt.Errorf("engine returned unknown pair %q > %q", result.CategoryName, result.SubcategoryName)
	}
	if err := s.sessions.CloseSession(ctx, session.ID, catID, subID); err != nil {
		return nil, fmt.Errorf("failed to close session: %w", err)
	}

	return &ClassificationOutcome{
		SessionID:       session.ID,
		Kind:            result.Kind,
		CategoryID:      catID,
		CategoryName:    result.CategoryName,
		SubcategoryID:   subID,
		SubcategoryName: result.SubcategoryName,
	}, nil
}

func (s *ClassificationService) loadOrCreateSession(ctx context.Context, sessionID *uuid.UUID) (*models.ClassificationSession, error) {
	if sessionID == nil || *sessionID == uuid.Nil {
		session := &models.ClassificationSession{}
		if err := s.sessions.CreateSession(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to create classification session: %w", err)
		}
		return session, nil
	}
	session, err := s.sessions.GetSession(ctx, *sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("session %s: %w", *sessionID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load session %s: %w", *sessionID, err)
	}
	return session, nil
}

func (s *ClassificationService) classify(ctx context.Context, req classifier.Request) (classifier.Result, error) {
	result, err := s.engine.Classify(ctx, req)
	if err == nil {
		return result, nil
	}
	if s.fallback == nil {
		return classifier.Result{}, fmt.Errorf("classification failed: %w", err)
	}
	log.WithError(err).Warn("primary engine failed, falling back to rule engine")
	result, fbErr := s.fallback.Classify(ctx, req)
	if fbErr != nil {
		return classifier.Result{}, fmt.Errorf("classification failed (fallback also failed: %v): %w", fbErr, err)
	}
	return result, nil
}
