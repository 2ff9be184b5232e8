package persistent

import (
	"errors"

	"insta-scheduler/internal/entity"
	"insta-scheduler/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(id int64) (*entity.User, error)
	GetByFBUserID(fbUserID string) (*entity.User, error)
	UpsertByFBUserID(user *entity.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(id int64) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByFBUserID(fbUserID string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("fb_user_id = ?", fbUserID).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

// UpsertByFBUserID creates the user on first login and refreshes the stored
// long-lived token on every login after that.
func (r *userRepository) UpsertByFBUserID(user *entity.User) error {
	var existing model.UserModel
	err := r.db.Where("fb_user_id = ?", user.FBUserID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		userModel := ToUserModel(user)
		if err := r.db.Create(userModel).Error; err != nil {
			return err
		}
		*user = *ToUserEntity(userModel)
		return nil
	}

	updates := map[string]interface{}{
		"name":                  user.Name,
		"user_token":            user.UserToken,
		"user_token_expires_at": user.UserTokenExpiresAt,
	}
	if err := r.db.Model(&existing).Updates(updates).Error; err != nil {
		return err
	}

	*user = *ToUserEntity(&existing)
	return nil
}
