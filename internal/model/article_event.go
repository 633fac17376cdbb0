package model

import "time"

// Audit trail of confirmed article writes, persisted asynchronously
// by the event worker.
type ArticleEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ArticleID  string    `gorm:"type:char(36);not null;index" json:"article_id"`
	AuthorID   string    `gorm:"type:char(36);not null;index" json:"author_id"`
	Action     string    `gorm:"size:16;not null" json:"action"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}
