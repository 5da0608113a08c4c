package model

import "time"

// Notification is a persisted event message addressed to a user. The read flag
// only ever flips unread to read.
type Notification struct {
	ID        int64
	UserID    int64
	Message   string
	Read      bool
	CreatedAt time.Time
}
