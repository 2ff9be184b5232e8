package entity

import "time"

// IGAccount links a Facebook Page to its Instagram business account for one
// user. The page access token is what the publish protocol authenticates with.
type IGAccount struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	PageID          string    `json:"page_id"`
	PageName        string    `json:"page_name"`
	PageAccessToken string    `json:"-"`
	IGUserID        string    `json:"ig_user_id"`
	IGUsername      string    `json:"ig_username"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
