package models

/*
Status constants for sessions, topics and background jobs. Centralizing
these avoids magic strings and improves maintainability.
*/

// Session status constants
const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

// Topic status constants
const (
	TopicStatusPending    = "pending"
	TopicStatusClassified = "classified"
)

// Job status constants
const (
	JobStatusEnqueued  = "enqueued"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
)

// Task type constants
const (
	TaskTypeReclassification = "reclassification"
)
