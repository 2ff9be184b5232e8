package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"insta-scheduler/internal/entity"
	"insta-scheduler/pkg/config"
	"insta-scheduler/pkg/graph"
	"insta-scheduler/pkg/jwt"
	"insta-scheduler/pkg/logger"
)

// MockUserRepository is a mock implementation of persistent.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(id int64) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByFBUserID(fbUserID string) (*entity.User, error) {
	args := m.Called(fbUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpsertByFBUserID(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockGraphOAuth is a mock implementation of GraphOAuth
type MockGraphOAuth struct {
	mock.Mock
}

func (m *MockGraphOAuth) ExchangeCode(ctx context.Context, code, redirectURI string) (*graph.Token, error) {
	args := m.Called(code, redirectURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*graph.Token), args.Error(1)
}

func (m *MockGraphOAuth) ExchangeLongLivedToken(ctx context.Context, shortToken string) (*graph.Token, error) {
	args := m.Called(shortToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*graph.Token), args.Error(1)
}

func (m *MockGraphOAuth) GetProfile(ctx context.Context, accessToken string) (*graph.Profile, error) {
	args := m.Called(accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*graph.Profile), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		FBAppID:        "app-id",
		FBAppSecret:    "app-secret",
		FBRedirectURI:  "http://localhost:8080/auth/facebook/callback",
		FBGraphVersion: "v21.0",
	}
}

func TestLoginURL_ContainsStateAndScope(t *testing.T) {
	uc := NewAuthUseCase(new(MockUserRepository), new(MockGraphOAuth), jwt.NewService("test-secret"), testConfig(), logger.New())

	url := uc.LoginURL("nonce-123")

	assert.Contains(t, url, "https://www.facebook.com/v21.0/dialog/oauth")
	assert.Contains(t, url, "state=nonce-123")
	assert.Contains(t, url, "client_id=app-id")
	assert.Contains(t, url, "instagram_content_publish")
}

func TestHandleCallback_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	graphClient := new(MockGraphOAuth)
	jwtService := jwt.NewService("test-secret")
	uc := NewAuthUseCase(userRepo, graphClient, jwtService, testConfig(), logger.New())

	graphClient.On("ExchangeCode", "auth-code", "http://localhost:8080/auth/facebook/callback").
		Return(&graph.Token{AccessToken: "short-token"}, nil)
	graphClient.On("ExchangeLongLivedToken", "short-token").
		Return(&graph.Token{AccessToken: "long-token", ExpiresIn: 5184000}, nil)
	graphClient.On("GetProfile", "long-token").
		Return(&graph.Profile{ID: "fb-123", Name: "Jamie"}, nil)

	userRepo.On("UpsertByFBUserID", mock.MatchedBy(func(u *entity.User) bool {
		return u.FBUserID == "fb-123" && u.UserToken == "long-token" && u.UserTokenExpiresAt != nil
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.User).ID = 7
	}).Return(nil)

	user, token, err := uc.HandleCallback(context.Background(), "auth-code")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(user.ID, 10), claims.UserID)
	userRepo.AssertExpectations(t)
	graphClient.AssertExpectations(t)
}

func TestHandleCallback_ExchangeFails(t *testing.T) {
	userRepo := new(MockUserRepository)
	graphClient := new(MockGraphOAuth)
	uc := NewAuthUseCase(userRepo, graphClient, jwt.NewService("test-secret"), testConfig(), logger.New())

	graphClient.On("ExchangeCode", "bad-code", mock.Anything).
		Return(nil, errors.New("Invalid verification code format."))

	user, token, err := uc.HandleCallback(context.Background(), "bad-code")

	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.EqualError(t, err, "failed to exchange authorization code")
	userRepo.AssertNotCalled(t, "UpsertByFBUserID", mock.Anything)
}
