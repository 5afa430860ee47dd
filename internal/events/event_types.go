package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated EventType = "user_created"
	EventBlogCreated EventType = "blog_created"
	EventBlogUpdated EventType = "blog_updated"
	EventBlogDeleted EventType = "blog_deleted"
)

// Actor identifies the user that caused an event. Empty for anonymous requests.
type Actor struct {
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps a new event with an id and the current time.
func NewEvent(eventType EventType, subjectID string, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// BlogPayload is carried by blog created and updated events.
type BlogPayload struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// BlogDeletedPayload payload.
type BlogDeletedPayload struct {
	OwnerID string `json:"owner_id,omitempty"`
}
