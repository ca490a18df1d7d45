// Package notifications fans committed mutations out to websocket clients.
package notifications

// Activity feed event types.
const (
	EventStoryCreated   = "story.created"
	EventStoryUpdated   = "story.updated"
	EventStoryDeleted   = "story.deleted"
	EventCommentCreated = "comment.created"
	EventCommentDeleted = "comment.deleted"
	EventStoryLiked     = "story.liked"
	EventStoryUnliked   = "story.unliked"
)

// Event is the envelope written to feed subscribers.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}
