package model

import (
	"time"

	"gorm.io/gorm"
)

type UserModel struct {
	ID                 int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	FBUserID           string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"fb_user_id"`
	Name               string         `gorm:"type:varchar(255)" json:"name"`
	UserToken          string         `gorm:"type:text" json:"-"`
	UserTokenExpiresAt *time.Time     `json:"-"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}
