package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"socialbook/internal/model"
	"socialbook/internal/util"

	"gorm.io/gorm"
)

type FriendRequestRepository interface {
	Create(request *model.FriendRequest) error
	FindByID(id string) (*model.FriendRequest, error)
	ExistsFromTo(fromUserID, toUserID string) (bool, error)
	FindIncoming(toUserID string) ([]*model.FriendRequest, error)
	Update(request *model.FriendRequest) error
}

type friendRequestRepository struct {
	db    *gorm.DB
	redis *util.RedisClient
}

const (
	requestIncomingCachePrefix = "friendreq:incoming:"
	requestCacheExpiration     = 15 * time.Minute
)

func NewFriendRequestRepository(db *gorm.DB, redis *util.RedisClient) FriendRequestRepository {
	return &friendRequestRepository{
		db:    db,
		redis: redis,
	}
}

func (r *friendRequestRepository) Create(request *model.FriendRequest) error {
	if err := r.db.Create(request).Error; err != nil {
		return err
	}

	if r.redis != nil {
		r.invalidateIncomingCache(request.ToUserID)
	}

	return nil
}

func (r *friendRequestRepository) FindByID(id string) (*model.FriendRequest, error) {
	var request model.FriendRequest
	err := r.db.Preload("FromUser").Preload("ToUser").
		Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ExistsFromTo checks for a request in the exact (from, to) direction only.
func (r *friendRequestRepository) ExistsFromTo(fromUserID, toUserID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.FriendRequest{}).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindIncoming returns requests addressed to the user that have not been
// accepted. Rejected requests stay in the list since the filter only
// excludes accepted ones.
func (r *friendRequestRepository) FindIncoming(toUserID string) ([]*model.FriendRequest, error) {
	// Try cache first
	if r.redis != nil {
		cached, err := r.getListFromCache(requestIncomingCachePrefix + toUserID)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	var requests []*model.FriendRequest
	err := r.db.Preload("FromUser").Preload("ToUser").
		Where("to_user_id = ? AND accepted = ?", toUserID, false).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	// Cache the result
	if r.redis != nil {
		r.cacheList(requestIncomingCachePrefix+toUserID, requests)
	}

	return requests, nil
}

func (r *friendRequestRepository) Update(request *model.FriendRequest) error {
	if err := r.db.Save(request).Error; err != nil {
		return err
	}

	if r.redis != nil {
		r.invalidateIncomingCache(request.ToUserID)
	}

	return nil
}

// Cache helpers
func (r *friendRequestRepository) cacheList(key string, requests []*model.FriendRequest) {
	requestsJSON, err := json.Marshal(requests)
	if err != nil {
		return
	}
	r.redis.Set(key, string(requestsJSON), requestCacheExpiration)
}

func (r *friendRequestRepository) getListFromCache(key string) ([]*model.FriendRequest, error) {
	if r.redis == nil {
		return nil, fmt.Errorf("redis not available")
	}

	cached, err := r.redis.Get(key)
	if err != nil {
		return nil, err
	}

	var requests []*model.FriendRequest
	if err := json.Unmarshal([]byte(cached), &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *friendRequestRepository) invalidateIncomingCache(userID string) {
	r.redis.Delete(requestIncomingCachePrefix + userID)
}
