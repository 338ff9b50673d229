package http

import (
	"net/http"
	"strconv"

	"focushive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PostHandler serves the social feed.
type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type CreatePostRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreatePost: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: content is required")
		return
	}

	post, err := h.postService.Create(c.Request.Context(), userID, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "post_id": post.ID}).
		Info("Handler.CreatePost: post created")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Post created successfully", "post": post})
}

// List returns all posts, or only those of ?author=<username>.
func (h *PostHandler) List(c *gin.Context) {
	author := c.Query("author")

	posts, err := h.postService.List(c.Request.Context(), author)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"posts": posts})
}

type UpdatePostRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

func (h *PostHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdatePost: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: content is required")
		return
	}

	post, err := h.postService.Update(c.Request.Context(), userID, postID, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Post updated successfully", "post": post})
}

func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.postService.Delete(c.Request.Context(), userID, postID); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// parseIDParam reads a numeric path parameter. Writes the error response on
// failure, so callers just return.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		logrus.WithField(name, raw).Warn("Handler: invalid numeric path parameter")
		ErrorResponse(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		if err == nil {
			err = strconv.ErrRange
		}
		return 0, err
	}
	return uint(id), nil
}
