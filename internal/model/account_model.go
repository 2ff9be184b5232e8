package model

import (
	"time"

	"gorm.io/gorm"
)

type IGAccountModel struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64          `gorm:"not null;uniqueIndex:idx_ig_accounts_user_page,priority:1" json:"user_id"`
	PageID          string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_ig_accounts_user_page,priority:2" json:"page_id"`
	PageName        string         `gorm:"type:varchar(255)" json:"page_name"`
	PageAccessToken string         `gorm:"type:text" json:"-"`
	IGUserID        string         `gorm:"type:varchar(64);index" json:"ig_user_id"`
	IGUsername      string         `gorm:"type:varchar(255)" json:"ig_username"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (IGAccountModel) TableName() string {
	return "ig_accounts"
}
