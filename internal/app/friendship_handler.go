package app

import (
	"net/http"

	"socialbook/internal/service"
	"socialbook/internal/util"

	"github.com/gin-gonic/gin"
)

type FriendshipHandler struct {
	friendshipService service.FriendshipService
}

func NewFriendshipHandler(friendshipService service.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendshipService: friendshipService}
}

// SendFriendRequest handles sending a friend request
// POST /api/v1/send-friend-request
func (h *FriendshipHandler) SendFriendRequest(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		util.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		ToUserID string `json:"to_user_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	request, err := h.friendshipService.SendFriendRequest(userID.(string), req.ToUserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Friend request sent successfully", gin.H{"friend_request": request})
}

// AcceptFriendRequest handles accepting a friend request
// POST /api/v1/accept-friend-request
func (h *FriendshipHandler) AcceptFriendRequest(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		util.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		FriendRequestID string `json:"friend_request_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	request, err := h.friendshipService.AcceptFriendRequest(req.FriendRequestID, userID.(string))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friend request accepted", gin.H{"friend_request": request})
}

// RejectFriendRequest handles rejecting a friend request
// POST /api/v1/reject-friend-request
func (h *FriendshipHandler) RejectFriendRequest(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		util.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		FriendRequestID string `json:"friend_request_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := h.friendshipService.RejectFriendRequest(req.FriendRequestID, userID.(string)); err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friend request rejected", nil)
}

// ListFriendRequests lists incoming requests that are not yet accepted
// GET /api/v1/friend-requests
func (h *FriendshipHandler) ListFriendRequests(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		util.Unauthorized(c, "User not authenticated")
		return
	}

	requests, err := h.friendshipService.ListIncomingRequests(userID.(string))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friend requests retrieved successfully", gin.H{"friend_requests": requests})
}

// ListFriends lists the caller's friends
// GET /api/v1/friends
func (h *FriendshipHandler) ListFriends(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		util.Unauthorized(c, "User not authenticated")
		return
	}

	friends, err := h.friendshipService.ListFriends(userID.(string))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friends retrieved successfully", gin.H{"friends": friends})
}

// RemoveFriend removes a friendship by friend user id
// DELETE /api/v1/friends/:id
func (h *FriendshipHandler) RemoveFriend(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		util.Unauthorized(c, "User not authenticated")
		return
	}

	friendID := c.Param("id")
	if friendID == "" {
		util.BadRequest(c, "Friend ID is required")
		return
	}

	if err := h.friendshipService.RemoveFriend(userID.(string), friendID); err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friend removed successfully", nil)
}
