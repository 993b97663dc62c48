package service

import (
	"fmt"
	"time"

	"socialbook/internal/model"
	"socialbook/internal/repository"
)

type FriendshipService interface {
	SendFriendRequest(fromUserID, toUserID string) (*model.FriendRequestResponse, error)
	AcceptFriendRequest(requestID, userID string) (*model.FriendRequestResponse, error)
	RejectFriendRequest(requestID, userID string) error
	ListIncomingRequests(userID string) ([]model.FriendRequestResponse, error)
	ListFriends(userID string) ([]model.UserResponse, error)
	RemoveFriend(userID, friendID string) error
}

type friendshipService struct {
	requestRepo    repository.FriendRequestRepository
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
	counter        repository.CounterStore
	notifService   NotificationService

	requestLimit  int64
	requestWindow time.Duration
}

const requestCounterKeyPrefix = "friend_request_count:"

func NewFriendshipService(
	requestRepo repository.FriendRequestRepository,
	friendshipRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
	counter repository.CounterStore,
	notifService NotificationService,
	requestLimit int,
	requestWindow time.Duration,
) FriendshipService {
	return &friendshipService{
		requestRepo:    requestRepo,
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		counter:        counter,
		notifService:   notifService,
		requestLimit:   int64(requestLimit),
		requestWindow:  requestWindow,
	}
}

// SendFriendRequest validates the edge and creates a directed request.
// Sends are capped per sender within a rolling window; the counter
// increment is intentionally non-transactional.
func (s *friendshipService) SendFriendRequest(fromUserID, toUserID string) (*model.FriendRequestResponse, error) {
	if fromUserID == toUserID {
		return nil, validationError("you cannot send a friend request to yourself")
	}

	fromUser, err := s.userRepo.FindByID(fromUserID)
	if err != nil {
		return nil, notFoundError("sender not found")
	}

	if _, err := s.userRepo.FindByID(toUserID); err != nil {
		return nil, notFoundError("user not found")
	}

	// Duplicate check covers the exact direction only
	exists, err := s.requestRepo.ExistsFromTo(fromUserID, toUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing requests: %w", err)
	}
	if exists {
		return nil, conflictError("friend request already sent")
	}

	friends, err := s.friendshipRepo.ExistsBetween(fromUserID, toUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if friends {
		return nil, conflictError("you are already friends")
	}

	if s.counter != nil {
		count, err := s.counter.Count(requestCounterKeyPrefix + fromUserID)
		if err == nil && count >= s.requestLimit {
			return nil, rateLimitError(fmt.Sprintf("you cannot send more than %d friend requests within a minute", s.requestLimit))
		}
	}

	request := &model.FriendRequest{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
	}

	if err := s.requestRepo.Create(request); err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	if s.counter != nil {
		s.counter.Increment(requestCounterKeyPrefix+fromUserID, s.requestWindow)
	}

	// Fan out to the receiver (async, non-blocking)
	if s.notifService != nil {
		go s.notifService.FriendRequestReceived(toUserID, fromUser, request.ID)
	}

	// Reload with both endpoints preloaded
	request, err = s.requestRepo.FindByID(request.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload friend request: %w", err)
	}

	resp := model.ToFriendRequestResponse(request)
	return &resp, nil
}

// AcceptFriendRequest flips the request to accepted and creates the
// friendship row. Only the addressed user may accept.
func (s *friendshipService) AcceptFriendRequest(requestID, userID string) (*model.FriendRequestResponse, error) {
	request, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		return nil, notFoundError("friend request not found")
	}

	if request.ToUserID != userID {
		return nil, forbiddenError("you cannot accept this friend request")
	}

	if request.Accepted {
		resp := model.ToFriendRequestResponse(request)
		return &resp, nil
	}
	if request.Rejected {
		return nil, conflictError("friend request was already rejected")
	}

	request.Accepted = true
	if err := s.requestRepo.Update(request); err != nil {
		return nil, fmt.Errorf("failed to accept friend request: %w", err)
	}

	friendship := &model.Friendship{
		User1ID: request.FromUserID,
		User2ID: request.ToUserID,
	}
	if err := s.friendshipRepo.Create(friendship); err != nil {
		return nil, fmt.Errorf("failed to create friendship: %w", err)
	}

	if s.notifService != nil {
		go s.notifService.FriendRequestAccepted(request.FromUserID, &request.ToUser, request.ID)
	}

	resp := model.ToFriendRequestResponse(request)
	return &resp, nil
}

// RejectFriendRequest marks the request rejected. Only the addressed user
// may reject; a rejected request is never also accepted.
func (s *friendshipService) RejectFriendRequest(requestID, userID string) error {
	request, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		return notFoundError("friend request not found")
	}

	if request.ToUserID != userID {
		return forbiddenError("you cannot reject this friend request")
	}

	if request.Accepted {
		return conflictError("friend request was already accepted")
	}

	request.Rejected = true
	if err := s.requestRepo.Update(request); err != nil {
		return fmt.Errorf("failed to reject friend request: %w", err)
	}

	if s.notifService != nil {
		go s.notifService.FriendRequestRejected(request.FromUserID, &request.ToUser, request.ID)
	}

	return nil
}

// ListIncomingRequests returns requests addressed to the caller that are
// not accepted. Rejected ones remain listed, matching the stored filter.
func (s *friendshipService) ListIncomingRequests(userID string) ([]model.FriendRequestResponse, error) {
	requests, err := s.requestRepo.FindIncoming(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	return model.ToFriendRequestResponses(requests), nil
}

// ListFriends resolves whichever side of each friendship is not the caller.
func (s *friendshipService) ListFriends(userID string) ([]model.UserResponse, error) {
	friendships, err := s.friendshipRepo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}

	friends := make([]model.UserResponse, 0, len(friendships))
	for _, f := range friendships {
		if f.User2ID == userID {
			friends = append(friends, model.ToUserResponse(&f.User1))
		} else {
			friends = append(friends, model.ToUserResponse(&f.User2))
		}
	}

	return friends, nil
}

// RemoveFriend deletes the friendship row in whichever orientation it was
// stored.
func (s *friendshipService) RemoveFriend(userID, friendID string) error {
	caller, err := s.userRepo.FindByID(userID)
	if err != nil {
		return notFoundError("user not found")
	}

	if _, err := s.userRepo.FindByID(friendID); err != nil {
		return notFoundError("friend not found")
	}

	deleted, err := s.friendshipRepo.DeleteBetween(userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	if deleted == 0 {
		return notFoundError("friendship does not exist")
	}

	if s.notifService != nil {
		go s.notifService.FriendRemoved(friendID, caller)
	}

	return nil
}
