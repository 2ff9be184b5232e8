package persistent

import (
	"insta-scheduler/internal/entity"
	"insta-scheduler/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:            m.ID,
		UserID:        m.UserID,
		IGAccountID:   m.IGAccountID,
		Caption:       m.Caption,
		MediaURL:      m.MediaURL,
		ScheduledTime: m.ScheduledTime,
		Status:        entity.PostStatus(m.Status),
		ErrorMessage:  m.ErrorMessage,
		PostedAt:      m.PostedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:            e.ID,
		UserID:        e.UserID,
		IGAccountID:   e.IGAccountID,
		Caption:       e.Caption,
		MediaURL:      e.MediaURL,
		ScheduledTime: e.ScheduledTime,
		Status:        string(e.Status),
		ErrorMessage:  e.ErrorMessage,
		PostedAt:      e.PostedAt,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToDuePostEntity(r *model.DuePostRow) *entity.DuePost {
	if r == nil {
		return nil
	}

	return &entity.DuePost{
		Post: entity.Post{
			ID:            r.ID,
			UserID:        r.UserID,
			IGAccountID:   r.IGAccountID,
			Caption:       r.Caption,
			MediaURL:      r.MediaURL,
			ScheduledTime: r.ScheduledTime,
			Status:        entity.PostStatus(r.Status),
			IGUserID:      r.IGUserID,
		},
		PageAccessToken: r.PageAccessToken,
	}
}

func ToIGAccountEntity(m *model.IGAccountModel) *entity.IGAccount {
	if m == nil {
		return nil
	}

	return &entity.IGAccount{
		ID:              m.ID,
		UserID:          m.UserID,
		PageID:          m.PageID,
		PageName:        m.PageName,
		PageAccessToken: m.PageAccessToken,
		IGUserID:        m.IGUserID,
		IGUsername:      m.IGUsername,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func ToIGAccountModel(e *entity.IGAccount) *model.IGAccountModel {
	if e == nil {
		return nil
	}

	return &model.IGAccountModel{
		ID:              e.ID,
		UserID:          e.UserID,
		PageID:          e.PageID,
		PageName:        e.PageName,
		PageAccessToken: e.PageAccessToken,
		IGUserID:        e.IGUserID,
		IGUsername:      e.IGUsername,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:                 m.ID,
		FBUserID:           m.FBUserID,
		Name:               m.Name,
		UserToken:          m.UserToken,
		UserTokenExpiresAt: m.UserTokenExpiresAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:                 e.ID,
		FBUserID:           e.FBUserID,
		Name:               e.Name,
		UserToken:          e.UserToken,
		UserTokenExpiresAt: e.UserTokenExpiresAt,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
