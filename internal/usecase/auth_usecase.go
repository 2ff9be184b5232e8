package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"insta-scheduler/internal/entity"
	"insta-scheduler/internal/repo/persistent"
	"insta-scheduler/pkg/config"
	"insta-scheduler/pkg/graph"
	"insta-scheduler/pkg/jwt"
	"insta-scheduler/pkg/logger"
)

const oauthScope = "pages_show_list,instagram_basic,instagram_content_publish,pages_read_engagement"

// GraphOAuth is the slice of the Graph client the auth flow needs.
type GraphOAuth interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (*graph.Token, error)
	ExchangeLongLivedToken(ctx context.Context, shortToken string) (*graph.Token, error)
	GetProfile(ctx context.Context, accessToken string) (*graph.Profile, error)
}

type AuthUseCase interface {
	LoginURL(state string) string
	HandleCallback(ctx context.Context, code string) (*entity.User, string, error)
	GetUser(userID int64) (*entity.User, error)
}

type authUseCase struct {
	userRepo    persistent.UserRepository
	graphClient GraphOAuth
	jwtService  *jwt.Service
	cfg         *config.Config
	logger      *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	graphClient GraphOAuth,
	jwtService *jwt.Service,
	cfg *config.Config,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:    userRepo,
		graphClient: graphClient,
		jwtService:  jwtService,
		cfg:         cfg,
		logger:      logger,
	}
}

// LoginURL builds the Facebook OAuth dialog URL for the given state nonce.
func (uc *authUseCase) LoginURL(state string) string {
	params := url.Values{}
	params.Set("client_id", uc.cfg.FBAppID)
	params.Set("redirect_uri", uc.cfg.FBRedirectURI)
	params.Set("state", state)
	params.Set("scope", oauthScope)
	params.Set("response_type", "code")

	return fmt.Sprintf("https://www.facebook.com/%s/dialog/oauth?%s", uc.cfg.FBGraphVersion, params.Encode())
}

// HandleCallback completes the OAuth flow: code to short-lived token, then to
// a long-lived token, profile fetch, user upsert and session token issue.
func (uc *authUseCase) HandleCallback(ctx context.Context, code string) (*entity.User, string, error) {
	shortToken, err := uc.graphClient.ExchangeCode(ctx, code, uc.cfg.FBRedirectURI)
	if err != nil {
		uc.logger.Error("Code exchange failed: %v", err)
		return nil, "", fmt.Errorf("failed to exchange authorization code")
	}

	longToken, err := uc.graphClient.ExchangeLongLivedToken(ctx, shortToken.AccessToken)
	if err != nil {
		uc.logger.Error("Long-lived token exchange failed: %v", err)
		return nil, "", fmt.Errorf("failed to obtain long-lived token")
	}

	profile, err := uc.graphClient.GetProfile(ctx, longToken.AccessToken)
	if err != nil {
		uc.logger.Error("Profile fetch failed: %v", err)
		return nil, "", fmt.Errorf("failed to fetch user profile")
	}

	user := &entity.User{
		FBUserID:  profile.ID,
		Name:      profile.Name,
		UserToken: longToken.AccessToken,
	}
	if longToken.ExpiresIn > 0 {
		expiresAt := time.Now().UTC().Add(time.Duration(longToken.ExpiresIn) * time.Second)
		user.UserTokenExpiresAt = &expiresAt
	}

	if err := uc.userRepo.UpsertByFBUserID(user); err != nil {
		uc.logger.Error("Failed to upsert user %s: %v", profile.ID, err)
		return nil, "", fmt.Errorf("failed to store user")
	}

	token, err := uc.jwtService.GenerateToken(strconv.FormatInt(user.ID, 10), "user")
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate session token")
	}

	return user, token, nil
}

func (uc *authUseCase) GetUser(userID int64) (*entity.User, error) {
	return uc.userRepo.GetByID(userID)
}
