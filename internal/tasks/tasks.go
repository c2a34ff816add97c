package tasks

// Defines constants and payloads for task types used in Asynq.

const (
	// TypeTopicReclassify is the task type for re-running classification on
	// an existing topic.
	TypeTopicReclassify = "topic:reclassify"

	// QueueClassification is the queue classification tasks run on.
	QueueClassification = "classification"
)

// ReclassifyPayload is the JSON payload of a TypeTopicReclassify task.
type ReclassifyPayload struct {
	TopicID int64 `json:"topic_id"`
}
