package service

import (
	"encoding/json"
	"log"
	"time"

	"socialbook/internal/model"
	"socialbook/internal/util"
)

// NotificationService fans friend-graph events out to the message broker
// and to the recipient's live websocket connections. Events are transient:
// nothing is persisted here, and a down broker never fails the request
// that triggered the event.
type NotificationService interface {
	FriendRequestReceived(toUserID string, fromUser *model.User, requestID string)
	FriendRequestAccepted(toUserID string, byUser *model.User, requestID string)
	FriendRequestRejected(toUserID string, byUser *model.User, requestID string)
	FriendRemoved(toUserID string, byUser *model.User)
	SetWSHub(hub interface {
		BroadcastToUser(string, map[string]interface{})
	})
}

type notificationService struct {
	rabbitMQ *util.RabbitMQClient
	wsHub    interface {
		BroadcastToUser(string, map[string]interface{})
	}
}

// FriendEvent is the message shape published to RabbitMQ.
type FriendEvent struct {
	UserID    string                 `json:"user_id"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

const (
	FriendEventsExchange   = "friend_events"
	FriendEventsQueue      = "friend_events_queue"
	FriendEventsRoutingKey = "friend"

	EventFriendRequest  = "friend_request"
	EventFriendAccepted = "friend_accepted"
	EventFriendRejected = "friend_rejected"
	EventFriendRemoved  = "friend_removed"
)

func NewNotificationService(rabbitMQ *util.RabbitMQClient) NotificationService {
	if rabbitMQ != nil {
		if err := rabbitMQ.DeclareExchange(FriendEventsExchange); err != nil {
			log.Printf("Warning: failed to declare %s exchange: %v", FriendEventsExchange, err)
		} else if err := rabbitMQ.DeclareQueue(FriendEventsQueue, FriendEventsExchange, FriendEventsRoutingKey); err != nil {
			log.Printf("Warning: failed to declare %s queue: %v", FriendEventsQueue, err)
		}
	}

	return &notificationService{
		rabbitMQ: rabbitMQ,
	}
}

// SetWSHub sets the WebSocket hub for realtime pushes
func (s *notificationService) SetWSHub(hub interface {
	BroadcastToUser(string, map[string]interface{})
}) {
	s.wsHub = hub
}

func (s *notificationService) FriendRequestReceived(toUserID string, fromUser *model.User, requestID string) {
	s.publish(toUserID, EventFriendRequest, fromUser.Name+" sent you a friend request", map[string]interface{}{
		"sender_id":         fromUser.ID,
		"sender_name":       fromUser.Name,
		"friend_request_id": requestID,
	})
}

func (s *notificationService) FriendRequestAccepted(toUserID string, byUser *model.User, requestID string) {
	s.publish(toUserID, EventFriendAccepted, byUser.Name+" accepted your friend request", map[string]interface{}{
		"sender_id":         byUser.ID,
		"sender_name":       byUser.Name,
		"friend_request_id": requestID,
	})
}

func (s *notificationService) FriendRequestRejected(toUserID string, byUser *model.User, requestID string) {
	s.publish(toUserID, EventFriendRejected, byUser.Name+" rejected your friend request", map[string]interface{}{
		"sender_id":         byUser.ID,
		"sender_name":       byUser.Name,
		"friend_request_id": requestID,
	})
}

func (s *notificationService) FriendRemoved(toUserID string, byUser *model.User) {
	s.publish(toUserID, EventFriendRemoved, byUser.Name+" removed you as a friend", map[string]interface{}{
		"sender_id":   byUser.ID,
		"sender_name": byUser.Name,
	})
}

func (s *notificationService) publish(userID, eventType, message string, data map[string]interface{}) {
	event := FriendEvent{
		UserID:    userID,
		Type:      eventType,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}

	if s.rabbitMQ != nil {
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal friend event: %v", err)
		} else if err := s.rabbitMQ.Publish(FriendEventsExchange, FriendEventsRoutingKey, body); err != nil {
			// Fire-and-forget: the request that triggered the event
			// already succeeded.
			log.Printf("Failed to publish friend event to RabbitMQ: %v", err)
		}
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastToUser(userID, map[string]interface{}{
			"type":      event.Type,
			"message":   event.Message,
			"data":      event.Data,
			"timestamp": event.Timestamp.Unix(),
		})
	}
}
