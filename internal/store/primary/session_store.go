package primary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tasnif/internal/models"
	"tasnif/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// --- Classification Session Management ---

func (s *StoreImpl) CreateSession(ctx context.Context, session *models.ClassificationSession) error {
	query := `
		INSERT INTO classification_sessions (id, status, category_id, subcategory_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	now := time.Now()
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.Status == "" {
		session.Status = models.SessionStatusOpen
	}

	err := s.db.QueryRow(ctx, query,
		session.ID, session.Status, session.CategoryID, session.SubcategoryID, now, now,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert classification session: %w", err)
	}
	return nil
}

func (s *StoreImpl) GetSession(ctx context.Context, id uuid.UUID) (*models.ClassificationSession, error) {
	query := `
		SELECT id, status, category_id, subcategory_id, created_at, updated_at
		FROM classification_sessions WHERE id = $1`
	session := &models.ClassificationSession{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&session.ID, &session.Status, &session.CategoryID, &session.SubcategoryID,
		&session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}
	return session, nil
}

// CloseSession commits a session to its final category pair. Closing an
// already closed session is a conflict.
func (s *StoreImpl) CloseSession(ctx context.Context, id uuid.UUID, categoryID, subcategoryID int64) error {
	query := `
		UPDATE classification_sessions
		SET status = $1, category_id = $2, subcategory_id = $3, updated_at = $4
		WHERE id = $5 AND status = $6`
	now := time.Now()
	cmdTag, err := s.db.Exec(ctx, query,
		models.SessionStatusClosed, categoryID, subcategoryID, now, id, models.SessionStatusOpen,
	)
	if err != nil {
		return fmt.Errorf("failed to close session %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, getErr := s.GetSession(ctx, id); errors.Is(getErr, store.ErrNotFound) {
			return fmt.Errorf("session %s not found to close: %w", id, store.ErrNotFound)
		}
		return fmt.Errorf("session %s is not open: %w", id, store.ErrConflict)
	}
	return nil
}

func (s *StoreImpl) AppendMessage(ctx context.Context, msg *models.SessionMessage) error {
	query := `
		INSERT INTO session_messages (session_id, role, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := s.db.QueryRow(ctx, query,
		msg.SessionID, msg.Role, msg.Text, time.Now(),
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append message to session %s: %w", msg.SessionID, err)
	}
	return nil
}

func (s *StoreImpl) ListMessages(ctx context.Context, sessionID uuid.UUID) ([]*models.SessionMessage, error) {
	query := `
		SELECT id, session_id, role, text, created_at
		FROM session_messages
		WHERE session_id = $1
		ORDER BY id ASC`
	rows, err := s.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var messages []*models.SessionMessage
	for rows.Next() {
		msg := &models.SessionMessage{}
		err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Text, &msg.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session message row: %w", err)
		}
		messages = append(messages, msg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session message rows: %w", err)
	}
	return messages, nil
}

// Ensure StoreImpl satisfies the SessionStore interface
var _ store.SessionStore = (*StoreImpl)(nil)
