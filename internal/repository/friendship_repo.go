package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"socialbook/internal/model"
	"socialbook/internal/util"

	"gorm.io/gorm"
)

type FriendshipRepository interface {
	Create(friendship *model.Friendship) error
	ExistsBetween(userID1, userID2 string) (bool, error)
	FindByUserID(userID string) ([]*model.Friendship, error)
	DeleteBetween(userID1, userID2 string) (int64, error)
}

type friendshipRepository struct {
	db    *gorm.DB
	redis *util.RedisClient
}

const (
	friendshipByUserCachePrefix = "friendship:user:"
	friendshipCacheExpiration   = 15 * time.Minute
)

func NewFriendshipRepository(db *gorm.DB, redis *util.RedisClient) FriendshipRepository {
	return &friendshipRepository{
		db:    db,
		redis: redis,
	}
}

func (r *friendshipRepository) Create(friendship *model.Friendship) error {
	if err := r.db.Create(friendship).Error; err != nil {
		return err
	}

	if r.redis != nil {
		r.invalidateUserCache(friendship.User1ID)
		r.invalidateUserCache(friendship.User2ID)
	}

	return nil
}

// ExistsBetween checks the stored pair in either orientation.
func (r *friendshipRepository) ExistsBetween(userID1, userID2 string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Friendship{}).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			userID1, userID2, userID2, userID1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByUserID finds all friendships the user appears in, on either side.
func (r *friendshipRepository) FindByUserID(userID string) ([]*model.Friendship, error) {
	// Try cache first
	if r.redis != nil {
		cached, err := r.getListFromCache(friendshipByUserCachePrefix + userID)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	var friendships []*model.Friendship
	err := r.db.Preload("User1").Preload("User2").
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}

	// Cache the result
	if r.redis != nil {
		r.cacheList(friendshipByUserCachePrefix+userID, friendships)
	}

	return friendships, nil
}

// DeleteBetween removes the friendship row whichever orientation it was
// stored in and reports how many rows matched.
func (r *friendshipRepository) DeleteBetween(userID1, userID2 string) (int64, error) {
	result := r.db.Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
		userID1, userID2, userID2, userID1).
		Delete(&model.Friendship{})
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 && r.redis != nil {
		r.invalidateUserCache(userID1)
		r.invalidateUserCache(userID2)
	}

	return result.RowsAffected, nil
}

// Cache helpers
func (r *friendshipRepository) cacheList(key string, friendships []*model.Friendship) {
	friendshipsJSON, err := json.Marshal(friendships)
	if err != nil {
		return
	}
	r.redis.Set(key, string(friendshipsJSON), friendshipCacheExpiration)
}

func (r *friendshipRepository) getListFromCache(key string) ([]*model.Friendship, error) {
	if r.redis == nil {
		return nil, fmt.Errorf("redis not available")
	}

	cached, err := r.redis.Get(key)
	if err != nil {
		return nil, err
	}

	var friendships []*model.Friendship
	if err := json.Unmarshal([]byte(cached), &friendships); err != nil {
		return nil, err
	}

	return friendships, nil
}

func (r *friendshipRepository) invalidateUserCache(userID string) {
	r.redis.Delete(friendshipByUserCachePrefix + userID)
}
