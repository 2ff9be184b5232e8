package usecase

import (
	"context"
	"fmt"

	"insta-scheduler/internal/entity"
	"insta-scheduler/internal/repo/persistent"
	"insta-scheduler/pkg/graph"
	"insta-scheduler/pkg/logger"
)

// GraphPages is the slice of the Graph client account discovery needs.
type GraphPages interface {
	ListPages(ctx context.Context, userToken string) ([]graph.Page, error)
}

type AccountUseCase interface {
	SyncAccounts(ctx context.Context, userID int64) ([]*entity.IGAccount, error)
	ListAccounts(userID int64) ([]*entity.IGAccount, error)
}

type accountUseCase struct {
	userRepo    persistent.UserRepository
	accountRepo persistent.AccountRepository
	graphClient GraphPages
	logger      *logger.Logger
}

func NewAccountUseCase(
	userRepo persistent.UserRepository,
	accountRepo persistent.AccountRepository,
	graphClient GraphPages,
	logger *logger.Logger,
) AccountUseCase {
	return &accountUseCase{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		graphClient: graphClient,
		logger:      logger,
	}
}

// SyncAccounts fetches the user's Facebook Pages, keeps the ones with a linked
// Instagram business account and refreshes the stored credentials for each.
func (uc *accountUseCase) SyncAccounts(ctx context.Context, userID int64) ([]*entity.IGAccount, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if user.UserToken == "" {
		return nil, fmt.Errorf("no valid token")
	}

	pages, err := uc.graphClient.ListPages(ctx, user.UserToken)
	if err != nil {
		uc.logger.Error("Failed to list pages for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch accounts")
	}

	accounts := make([]*entity.IGAccount, 0, len(pages))
	for _, page := range pages {
		if page.InstagramBusinessAccount == nil {
			continue
		}

		account := &entity.IGAccount{
			UserID:          userID,
			PageID:          page.ID,
			PageName:        page.Name,
			PageAccessToken: page.AccessToken,
			IGUserID:        page.InstagramBusinessAccount.ID,
			IGUsername:      page.InstagramBusinessAccount.Username,
		}
		if err := uc.accountRepo.Upsert(account); err != nil {
			uc.logger.Error("Failed to upsert account %s for user %d: %v", page.ID, userID, err)
			continue
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func (uc *accountUseCase) ListAccounts(userID int64) ([]*entity.IGAccount, error) {
	return uc.accountRepo.ListByUser(userID)
}
