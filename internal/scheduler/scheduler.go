package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"insta-scheduler/internal/entity"
	"insta-scheduler/pkg/logger"
)

// Clock supplies the current time so ticks can be driven deterministically in
// tests. The production clock returns UTC.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Publisher is the two-step Instagram publish protocol.
type Publisher interface {
	CreateMediaContainer(ctx context.Context, igUserID, accessToken, imageURL, caption string) (string, error)
	PublishMedia(ctx context.Context, igUserID, accessToken, creationID string) (string, error)
}

// PostStore is the slice of the post repository the scheduler needs.
type PostStore interface {
	ListDuePending(now time.Time) ([]*entity.DuePost, error)
	MarkPublished(id int64, postedAt time.Time) (bool, error)
	MarkFailed(id int64, errorMessage string) (bool, error)
}

type Scheduler struct {
	store     PostStore
	publisher Publisher
	clock     Clock
	logger    *logger.Logger

	interval       time.Duration
	publishTimeout time.Duration

	cron   *cron.Cron
	tickMu sync.Mutex
}

func New(store PostStore, publisher Publisher, logger *logger.Logger, interval, publishTimeout time.Duration) *Scheduler {
	return &Scheduler{
		store:          store,
		publisher:      publisher,
		clock:          systemClock{},
		logger:         logger,
		interval:       interval,
		publishTimeout: publishTimeout,
	}
}

// WithClock replaces the scheduler's time source.
func (s *Scheduler) WithClock(clock Clock) *Scheduler {
	s.clock = clock
	return s
}

// Start begins the periodic scan. Each tick runs in the cron goroutine; if a
// tick is still running when the next one fires, the new one is skipped.
func (s *Scheduler) Start() {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		if !s.tickMu.TryLock() {
			s.logger.Warn("Previous scheduler tick still running, skipping")
			return
		}
		defer s.tickMu.Unlock()

		if err := s.RunTick(context.Background()); err != nil {
			s.logger.Error("Scheduler tick failed: %v", err)
		}
	})
	if err != nil {
		s.logger.Error("Failed to register scheduler job: %v", err)
		return
	}

	s.cron.Start()
	s.logger.Info("Scheduler started, scanning every %s", s.interval)
}

// Stop halts the periodic scan and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunTick scans for due pending posts and attempts to publish each one. Every
// post resolves independently: a failure marks that post failed and the tick
// moves on. The returned error covers only the scan itself.
func (s *Scheduler) RunTick(ctx context.Context) error {
	now := s.clock.Now()

	due, err := s.store.ListDuePending(now)
	if err != nil {
		return fmt.Errorf("failed to query due posts: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	s.logger.Info("Found %d post(s) due for publishing", len(due))
	for _, post := range due {
		s.processPost(ctx, post)
	}
	return nil
}

func (s *Scheduler) processPost(ctx context.Context, post *entity.DuePost) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic while publishing post %d: %v", post.ID, r)
			s.markFailed(post.ID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if post.IGUserID == "" || post.PageAccessToken == "" {
		s.markFailed(post.ID, "Missing Instagram account credentials")
		return
	}

	mediaID, err := s.publish(ctx, post)
	if err != nil {
		s.logger.Warn("Failed to publish post %d: %v", post.ID, err)
		s.markFailed(post.ID, err.Error())
		return
	}

	updated, err := s.store.MarkPublished(post.ID, s.clock.Now())
	if err != nil {
		s.logger.Error("Failed to mark post %d published: %v", post.ID, err)
		return
	}
	if !updated {
		s.logger.Warn("Post %d was already resolved, skipping status update", post.ID)
		return
	}
	s.logger.Info("Published post %d as media %s", post.ID, mediaID)
}

// publish runs the two-step protocol under a per-post deadline.
func (s *Scheduler) publish(ctx context.Context, post *entity.DuePost) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	creationID, err := s.publisher.CreateMediaContainer(ctx, post.IGUserID, post.PageAccessToken, post.MediaURL, post.Caption)
	if err != nil {
		return "", err
	}

	mediaID, err := s.publisher.PublishMedia(ctx, post.IGUserID, post.PageAccessToken, creationID)
	if err != nil {
		return "", err
	}
	return mediaID, nil
}

func (s *Scheduler) markFailed(id int64, message string) {
	updated, err := s.store.MarkFailed(id, message)
	if err != nil {
		s.logger.Error("Failed to mark post %d failed: %v", id, err)
		return
	}
	if !updated {
		s.logger.Warn("Post %d was already resolved, skipping status update", id)
	}
}
