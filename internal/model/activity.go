package model

import "time"

// Thread activity actions recorded by the async persist worker.
const (
	ActivityThreadCreated = "thread_created"
	ActivityThreadUpdated = "thread_updated"
	ActivityThreadLiked   = "thread_liked"
	ActivityThreadUnliked = "thread_unliked"
	ActivityThreadDeleted = "thread_deleted"
)

type ThreadActivity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ThreadID  uint      `gorm:"not null;index" json:"thread_id"`
	Action    string    `gorm:"size:32;not null;index" json:"action"`
	Actor     string    `gorm:"size:64" json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}
