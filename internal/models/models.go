package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Subcategory struct {
	ID         int64     `db:"id"`
	CategoryID int64     `db:"category_id"`
	Name       string    `db:"name"`
	Slug       string    `db:"slug"`
	Position   int       `db:"position"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type Topic struct {
	ID            int64      `db:"id"`
	Title         string     `db:"title"`
	Body          string     `db:"body"`
	CategoryID    *int64     `db:"category_id"`    // nullable until classified
	SubcategoryID *int64     `db:"subcategory_id"` // nullable until classified
	Status        string     `db:"status"`
	ClassifiedAt  *time.Time `db:"classified_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// ClassificationSession is one clarification dialogue. A session opens with
// the user's first message and closes on the turn the engine commits to a
// category pair.
type ClassificationSession struct {
	ID            uuid.UUID `db:"id"`
	Status        string    `db:"status"`
	CategoryID    *int64    `db:"category_id"`
	SubcategoryID *int64    `db:"subcategory_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type SessionMessage struct {
	ID        int64     `db:"id"`
	SessionID uuid.UUID `db:"session_id"`
	Role      string    `db:"role"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

// BackgroundJob mirrors the background_jobs table schema.
type BackgroundJob struct {
	ID                int64     `db:"id"`
	JobID             uuid.UUID `db:"job_id"` // Asynq Task ID
	TaskType          string    `db:"task_type"`
	Queue             string    `db:"queue"`
	Status            string    `db:"status"`
	RelatedEntityType *string   `db:"related_entity_type"` // Use pointer for NULLable
	RelatedEntityID   *int64    `db:"related_entity_id"`   // Use pointer for NULLable
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}
