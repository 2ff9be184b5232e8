package persistent

import (
	"time"

	"insta-scheduler/internal/entity"
	"insta-scheduler/internal/model"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id, userID int64) (*entity.Post, error)
	ListByUser(userID int64, limit, offset int) ([]*entity.Post, error)
	Delete(id, userID int64) (bool, error)

	ListDuePending(now time.Time) ([]*entity.DuePost, error)
	MarkPublished(id int64, postedAt time.Time) (bool, error)
	MarkFailed(id int64, errorMessage string) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(id, userID int64) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&postModel).Error; err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

type postListRow struct {
	ID            int64
	UserID        int64
	IGAccountID   int64
	Caption       string
	MediaURL      string
	ScheduledTime time.Time
	Status        string
	ErrorMessage  *string
	PostedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PageName      string
	IGUserID      string
}

func (r *postRepository) ListByUser(userID int64, limit, offset int) ([]*entity.Post, error) {
	var rows []postListRow
	query := r.db.Table("posts").
		Select("posts.id, posts.user_id, posts.ig_account_id, posts.caption, posts.media_url, posts.scheduled_time, posts.status, posts.error_message, posts.posted_at, posts.created_at, posts.updated_at, ig_accounts.page_name, ig_accounts.ig_user_id").
		Joins("JOIN ig_accounts ON ig_accounts.id = posts.ig_account_id").
		Where("posts.user_id = ? AND posts.deleted_at IS NULL", userID).
		Order("posts.scheduled_time DESC")

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(rows))
	for i, row := range rows {
		posts[i] = &entity.Post{
			ID:            row.ID,
			UserID:        row.UserID,
			IGAccountID:   row.IGAccountID,
			Caption:       row.Caption,
			MediaURL:      row.MediaURL,
			ScheduledTime: row.ScheduledTime,
			Status:        entity.PostStatus(row.Status),
			ErrorMessage:  row.ErrorMessage,
			PostedAt:      row.PostedAt,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
			PageName:      row.PageName,
			IGUserID:      row.IGUserID,
		}
	}
	return posts, nil
}

// Delete removes a post that has not been picked up by the publisher yet.
// Published and failed rows are kept as history.
func (r *postRepository) Delete(id, userID int64) (bool, error) {
	tx := r.db.Where("id = ? AND user_id = ? AND status = ?", id, userID, string(entity.StatusPending)).
		Delete(&model.PostModel{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// ListDuePending returns every pending post whose scheduled time has passed,
// joined with the owning account's Instagram user id and page access token.
func (r *postRepository) ListDuePending(now time.Time) ([]*entity.DuePost, error) {
	var rows []model.DuePostRow
	err := r.db.Table("posts").
		Select("posts.id, posts.user_id, posts.ig_account_id, posts.caption, posts.media_url, posts.scheduled_time, posts.status, ig_accounts.ig_user_id, ig_accounts.page_access_token").
		Joins("JOIN ig_accounts ON ig_accounts.id = posts.ig_account_id").
		Where("posts.status = ? AND posts.scheduled_time <= ? AND posts.deleted_at IS NULL", string(entity.StatusPending), now).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	due := make([]*entity.DuePost, len(rows))
	for i := range rows {
		due[i] = ToDuePostEntity(&rows[i])
	}
	return due, nil
}

// MarkPublished transitions a post to published, guarded on the row still
// being pending. A false return means another writer already resolved it.
func (r *postRepository) MarkPublished(id int64, postedAt time.Time) (bool, error) {
	tx := r.db.Model(&model.PostModel{}).
		Where("id = ? AND status = ?", id, string(entity.StatusPending)).
		Updates(map[string]interface{}{
			"status":        string(entity.StatusPublished),
			"posted_at":     postedAt,
			"error_message": nil,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// MarkFailed transitions a post to failed with the publish diagnostic,
// guarded the same way. posted_at stays null on this path.
func (r *postRepository) MarkFailed(id int64, errorMessage string) (bool, error) {
	tx := r.db.Model(&model.PostModel{}).
		Where("id = ? AND status = ?", id, string(entity.StatusPending)).
		Updates(map[string]interface{}{
			"status":        string(entity.StatusFailed),
			"error_message": errorMessage,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
