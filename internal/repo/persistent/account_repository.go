package persistent

import (
	"errors"

	"insta-scheduler/internal/entity"
	"insta-scheduler/internal/model"

	"gorm.io/gorm"
)

type AccountRepository interface {
	Upsert(account *entity.IGAccount) error
	ListByUser(userID int64) ([]*entity.IGAccount, error)
	GetByIGUserID(userID int64, igUserID string) (*entity.IGAccount, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Upsert inserts the account on first discovery and refreshes the page token,
// name and Instagram ids on every subsequent sync.
func (r *accountRepository) Upsert(account *entity.IGAccount) error {
	var existing model.IGAccountModel
	err := r.db.Where("user_id = ? AND page_id = ?", account.UserID, account.PageID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		accountModel := ToIGAccountModel(account)
		if err := r.db.Create(accountModel).Error; err != nil {
			return err
		}
		*account = *ToIGAccountEntity(accountModel)
		return nil
	}

	updates := map[string]interface{}{
		"page_name":         account.PageName,
		"page_access_token": account.PageAccessToken,
		"ig_user_id":        account.IGUserID,
		"ig_username":       account.IGUsername,
	}
	if err := r.db.Model(&existing).Updates(updates).Error; err != nil {
		return err
	}

	*account = *ToIGAccountEntity(&existing)
	return nil
}

func (r *accountRepository) ListByUser(userID int64) ([]*entity.IGAccount, error) {
	var accountModels []model.IGAccountModel
	if err := r.db.Where("user_id = ?", userID).Order("page_name ASC").Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]*entity.IGAccount, len(accountModels))
	for i := range accountModels {
		accounts[i] = ToIGAccountEntity(&accountModels[i])
	}
	return accounts, nil
}

func (r *accountRepository) GetByIGUserID(userID int64, igUserID string) (*entity.IGAccount, error) {
	var accountModel model.IGAccountModel
	if err := r.db.Where("user_id = ? AND ig_user_id = ?", userID, igUserID).First(&accountModel).Error; err != nil {
		return nil, err
	}
	return ToIGAccountEntity(&accountModel), nil
}
