package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"insta-scheduler/internal/usecase"
	"insta-scheduler/pkg/config"
	"insta-scheduler/pkg/jwt"
	"insta-scheduler/pkg/logger"
)

const (
	sessionCookie = "session_token"
	stateTTL      = 10 * time.Minute
	sessionMaxAge = 24 * 60 * 60
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	redisClient *redis.Client
	jwtService  *jwt.Service
	cfg         *config.Config
	logger      *logger.Logger
}

func NewAuthHandler(
	authUseCase usecase.AuthUseCase,
	redisClient *redis.Client,
	jwtService *jwt.Service,
	cfg *config.Config,
	logger *logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		redisClient: redisClient,
		jwtService:  jwtService,
		cfg:         cfg,
		logger:      logger,
	}
}

// FacebookLogin godoc
// @Summary      Start Facebook login
// @Description  Redirect to the Facebook OAuth dialog with a one-time state nonce.
// @Tags         auth
// @Produce      json
// @Success      302
// @Router       /auth/facebook [get]
func (h *AuthHandler) FacebookLogin(c *gin.Context) {
	state := uuid.New().String()

	if err := h.redisClient.Set(c.Request.Context(), "oauth_state:"+state, "1", stateTTL).Err(); err != nil {
		h.logger.Error("Failed to store OAuth state: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start login"})
		return
	}

	c.Redirect(http.StatusFound, h.authUseCase.LoginURL(state))
}

// FacebookCallback godoc
// @Summary      Complete Facebook login
// @Description  Exchange the OAuth code for a long-lived token, store the user and set the session cookie.
// @Tags         auth
// @Produce      json
// @Param        code query string true "OAuth authorization code"
// @Param        state query string true "State nonce from the login redirect"
// @Success      302
// @Failure      400  {object}  map[string]string
// @Router       /auth/facebook/callback [get]
func (h *AuthHandler) FacebookCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code or state"})
		return
	}

	// GetDel makes the nonce single-use.
	if err := h.redisClient.GetDel(c.Request.Context(), "oauth_state:"+state).Err(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}

	user, token, err := h.authUseCase.HandleCallback(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	secure := strings.HasPrefix(h.cfg.FrontendURL, "https://")
	c.SetCookie(sessionCookie, token, sessionMaxAge, "/", "", secure, true)

	h.logger.Info("User %d logged in", user.ID)
	c.Redirect(http.StatusFound, h.cfg.FrontendURL)
}

// Status godoc
// @Summary      Session status
// @Description  Report whether the request carries a valid session and for whom.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/status [get]
func (h *AuthHandler) Status(c *gin.Context) {
	token := h.sessionToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	user, err := h.authUseCase.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user_id": user.ID, "name": user.Name})
}

// Logout godoc
// @Summary      Log out
// @Description  Clear the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) sessionToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie
	}
	return ""
}
