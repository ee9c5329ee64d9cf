package models

import "time"

// Notification kinds. NEW_POST is the only kind generated today; the field
// stays a string so future kinds do not change the persisted shape.
const NotificationNewPost = "NEW_POST"

type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipientId"`
	ActorID     string    `json:"actorId"`
	Kind        string    `json:"kind"`
	PostID      string    `json:"postId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Read        bool      `json:"read"`
}
