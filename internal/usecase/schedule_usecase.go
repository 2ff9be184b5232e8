package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"insta-scheduler/internal/entity"
	"insta-scheduler/internal/repo/persistent"
	"insta-scheduler/pkg/logger"
	"insta-scheduler/pkg/s3"
)

const postListCacheTTL = time.Minute

// ErrAccountNotFound is returned when a post targets an Instagram account the
// user has not linked.
var ErrAccountNotFound = errors.New("Instagram account not found")

// MediaStore abstracts the object storage used for uploaded media.
type MediaStore interface {
	UploadImage(key string, body io.Reader, contentType string) (string, error)
}

type ScheduleUseCase interface {
	SchedulePost(userID int64, igUserID, caption, mediaURL string, scheduledTime time.Time) (*entity.Post, error)
	ListPosts(ctx context.Context, userID int64, limit, offset int) ([]*entity.Post, error)
	DeletePost(userID, postID int64) error
	UploadMedia(userID int64, body io.Reader, filename, contentType string) (string, error)
}

type scheduleUseCase struct {
	postRepo    persistent.PostRepository
	accountRepo persistent.AccountRepository
	mediaStore  MediaStore
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewScheduleUseCase(
	postRepo persistent.PostRepository,
	accountRepo persistent.AccountRepository,
	mediaStore MediaStore,
	redisClient *redis.Client,
	logger *logger.Logger,
) ScheduleUseCase {
	return &scheduleUseCase{
		postRepo:    postRepo,
		accountRepo: accountRepo,
		mediaStore:  mediaStore,
		redisClient: redisClient,
		logger:      logger,
	}
}

// SchedulePost stores a pending post for an Instagram account the user owns.
// The scheduled time is normalized to UTC before it is persisted.
func (uc *scheduleUseCase) SchedulePost(userID int64, igUserID, caption, mediaURL string, scheduledTime time.Time) (*entity.Post, error) {
	account, err := uc.accountRepo.GetByIGUserID(userID, igUserID)
	if err != nil {
		return nil, ErrAccountNotFound
	}

	post := &entity.Post{
		UserID:        userID,
		IGAccountID:   account.ID,
		Caption:       caption,
		MediaURL:      mediaURL,
		ScheduledTime: scheduledTime.UTC(),
		Status:        entity.StatusPending,
	}
	if err := uc.postRepo.Create(post); err != nil {
		uc.logger.Error("Failed to create post for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to schedule post")
	}

	post.PageName = account.PageName
	post.IGUserID = account.IGUserID
	uc.invalidatePostCache(userID)

	return post, nil
}

// ListPosts returns the user's posts, newest scheduled first. The first page
// is served from Redis when available.
func (uc *scheduleUseCase) ListPosts(ctx context.Context, userID int64, limit, offset int) ([]*entity.Post, error) {
	cacheable := uc.redisClient != nil && offset == 0
	cacheKey := fmt.Sprintf("posts:user:%d", userID)

	if cacheable {
		if cached, err := uc.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var posts []*entity.Post
			if err := json.Unmarshal([]byte(cached), &posts); err == nil {
				return posts, nil
			}
		}
	}

	posts, err := uc.postRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if data, err := json.Marshal(posts); err == nil {
			if err := uc.redisClient.Set(ctx, cacheKey, data, postListCacheTTL).Err(); err != nil {
				uc.logger.Warn("Failed to cache posts for user %d: %v", userID, err)
			}
		}
	}

	return posts, nil
}

// DeletePost removes a pending post. Posts that already reached a terminal
// state are kept as history and cannot be deleted.
func (uc *scheduleUseCase) DeletePost(userID, postID int64) error {
	deleted, err := uc.postRepo.Delete(postID, userID)
	if err != nil {
		uc.logger.Error("Failed to delete post %d: %v", postID, err)
		return fmt.Errorf("failed to delete post")
	}
	if !deleted {
		return fmt.Errorf("post not found or already processed")
	}

	uc.invalidatePostCache(userID)
	return nil
}

// UploadMedia stores an uploaded image and returns its public URL, which the
// Graph API fetches at publish time.
func (uc *scheduleUseCase) UploadMedia(userID int64, body io.Reader, filename, contentType string) (string, error) {
	if uc.mediaStore == nil {
		return "", fmt.Errorf("media uploads are not configured")
	}

	key := fmt.Sprintf("media/%d/%s%s", userID, uuid.New().String(), filepath.Ext(filename))
	url, err := uc.mediaStore.UploadImage(key, body, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload media for user %d: %v", userID, err)
		return "", fmt.Errorf("failed to upload media")
	}
	return url, nil
}

func (uc *scheduleUseCase) invalidatePostCache(userID int64) {
	if uc.redisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := uc.redisClient.Del(ctx, fmt.Sprintf("posts:user:%d", userID)).Err(); err != nil {
		uc.logger.Warn("Failed to invalidate post cache for user %d: %v", userID, err)
	}
}

var _ MediaStore = (*s3.Client)(nil)
