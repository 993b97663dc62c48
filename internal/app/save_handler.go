package app

import (
	"net/http"

	"socialbook/internal/service"
	"socialbook/internal/util"

	"github.com/gin-gonic/gin"
)

type SaveHandler struct {
	saveService service.SaveService
}

func NewSaveHandler(saveService service.SaveService) *SaveHandler {
	return &SaveHandler{saveService: saveService}
}

// SavePost bookmarks a post for the caller
// POST /api/v1/posts/:id/save
func (h *SaveHandler) SavePost(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		util.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.saveService.SavePost(userID.(string), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Post saved", nil)
}

// UnsavePost removes the caller's saves of a post
// DELETE /api/v1/posts/:id/save
func (h *SaveHandler) UnsavePost(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		util.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.saveService.UnsavePost(userID.(string), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Post unsaved", nil)
}

// ListSavedPosts resolves every post the caller has saved
// GET /api/v1/saved-posts
func (h *SaveHandler) ListSavedPosts(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		util.Unauthorized(c, "User not authenticated")
		return
	}

	posts, err := h.saveService.ListSavedPosts(userID.(string))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Saved posts retrieved successfully", gin.H{"posts": posts})
}
