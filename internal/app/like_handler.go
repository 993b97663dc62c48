package app

import (
	"net/http"

	"socialbook/internal/service"
	"socialbook/internal/util"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// LikePost likes a post; liking twice is a no-op
// POST /api/v1/posts/:id/like
func (h *LikeHandler) LikePost(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		util.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.likeService.LikePost(userID.(string), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Post liked", nil)
}

// UnlikePost removes the caller's like; absence is a no-op success
// DELETE /api/v1/posts/:id/like
func (h *LikeHandler) UnlikePost(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		util.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.likeService.UnlikePost(userID.(string), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Post unliked", nil)
}

// ListLikes lists all likers of a post
// GET /api/v1/posts/:id/like
func (h *LikeHandler) ListLikes(c *gin.Context) {
	likes, err := h.likeService.ListLikes(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Likes retrieved successfully", gin.H{"likes": likes})
}
