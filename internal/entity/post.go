package entity

import "time"

type PostStatus string

const (
	StatusPending   PostStatus = "pending"
	StatusPublished PostStatus = "published"
	StatusFailed    PostStatus = "failed"
)

// Post is one unit of scheduled work. Status starts at pending and only ever
// moves to published or failed; terminal rows are never touched again.
type Post struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	IGAccountID   int64      `json:"ig_account_id"`
	Caption       string     `json:"caption"`
	MediaURL      string     `json:"media_url"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	Status        PostStatus `json:"status"`
	ErrorMessage  *string    `json:"error_message"`
	PostedAt      *time.Time `json:"posted_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Display fields joined from ig_accounts for listings
	PageName string `json:"page_name,omitempty"`
	IGUserID string `json:"ig_user_id,omitempty"`
}

// DuePost is a pending post joined with the credentials needed to publish it.
// This is the unit the scheduler tick works on.
type DuePost struct {
	Post
	PageAccessToken string `json:"-"`
}
