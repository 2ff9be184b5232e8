package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"insta-scheduler/internal/usecase"
	"insta-scheduler/pkg/logger"
)

type AccountHandler struct {
	accountUseCase usecase.AccountUseCase
	logger         *logger.Logger
}

func NewAccountHandler(accountUseCase usecase.AccountUseCase, logger *logger.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// SyncAccounts godoc
// @Summary      Sync Instagram accounts
// @Description  Fetch the user's Facebook Pages from the Graph API and store the ones with a linked Instagram business account.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/accounts/sync [post]
func (h *AccountHandler) SyncAccounts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	accounts, err := h.accountUseCase.SyncAccounts(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to sync accounts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts, "count": len(accounts)})
}

// ListAccounts godoc
// @Summary      List Instagram accounts
// @Description  Get the Instagram accounts already linked to the user.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	accounts, err := h.accountUseCase.ListAccounts(userID)
	if err != nil {
		h.logger.Error("Failed to list accounts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts, "count": len(accounts)})
}
