package model

import (
	"time"

	"gorm.io/gorm"
)

type PostModel struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64          `gorm:"not null;index" json:"user_id"`
	IGAccountID   int64          `gorm:"not null;index" json:"ig_account_id"`
	Caption       string         `gorm:"type:text" json:"caption"`
	MediaURL      string         `gorm:"type:varchar(500);not null" json:"media_url"`
	ScheduledTime time.Time      `gorm:"not null;index:idx_posts_due,priority:2" json:"scheduled_time"`
	Status        string         `gorm:"type:varchar(20);default:'pending';index:idx_posts_due,priority:1" json:"status"`
	ErrorMessage  *string        `gorm:"type:text" json:"error_message"`
	PostedAt      *time.Time     `json:"posted_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PostModel) TableName() string {
	return "posts"
}

// DuePostRow is the scan target for the due-post query: a pending post joined
// with its account's publish credentials.
type DuePostRow struct {
	ID              int64
	UserID          int64
	IGAccountID     int64
	Caption         string
	MediaURL        string
	ScheduledTime   time.Time
	Status          string
	IGUserID        string
	PageAccessToken string
}
