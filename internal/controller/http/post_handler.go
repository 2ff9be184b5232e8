package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"insta-scheduler/internal/usecase"
	"insta-scheduler/pkg/logger"
)

type PostHandler struct {
	scheduleUseCase usecase.ScheduleUseCase
	logger          *logger.Logger
}

func NewPostHandler(scheduleUseCase usecase.ScheduleUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		scheduleUseCase: scheduleUseCase,
		logger:          logger,
	}
}

func currentUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.GetString("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return id, true
}

type SchedulePostRequest struct {
	IGUserID      string    `json:"ig_user_id" binding:"required"`
	Caption       string    `json:"caption" binding:"required"`
	MediaURL      string    `json:"media_url" binding:"required,url"`
	ScheduledTime time.Time `json:"scheduled_time" binding:"required"`
}

// SchedulePost godoc
// @Summary      Schedule a post
// @Description  Schedule an Instagram post for a future time. The image must already be reachable at a public URL.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SchedulePostRequest true "Post to schedule"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/posts [post]
func (h *PostHandler) SchedulePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SchedulePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.scheduleUseCase.SchedulePost(userID, req.IGUserID, req.Caption, req.MediaURL, req.ScheduledTime)
	if err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to schedule post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListPosts godoc
// @Summary      List scheduled posts
// @Description  Get the user's posts, newest scheduled first, including published and failed history.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	posts, err := h.scheduleUseCase.ListPosts(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// DeletePost godoc
// @Summary      Delete a scheduled post
// @Description  Delete a post that is still pending. Published and failed posts are kept as history.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	if err := h.scheduleUseCase.DeletePost(userID, postID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UploadMedia godoc
// @Summary      Upload media
// @Description  Upload an image and get back the public URL to use as media_url when scheduling.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        media formData file true "Image file (jpg/jpeg/png)"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/media [post]
func (h *PostHandler) UploadMedia(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("media")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Media file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read media file"})
		return
	}
	defer file.Close()

	url, err := h.scheduleUseCase.UploadMedia(userID, file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("Failed to upload media: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"media_url": url})
}
