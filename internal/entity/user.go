package entity

import "time"

type User struct {
	ID                 int64      `json:"id"`
	FBUserID           string     `json:"fb_user_id"`
	Name               string     `json:"name"`
	UserToken          string     `json:"-"`
	UserTokenExpiresAt *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
