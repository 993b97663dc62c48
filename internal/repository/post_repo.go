package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"socialbook/internal/model"
	"socialbook/internal/util"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *model.Post) error
	FindByID(id string) (*model.Post, error)
	FindByUserID(userID string) ([]*model.Post, error)
	FindExcludingUserID(userID string) ([]*model.Post, error)
	FindByIDs(ids []string) ([]*model.Post, error)
}

type postRepository struct {
	db    *gorm.DB
	redis *util.RedisClient
}

const (
	postsByUserCachePrefix = "posts:user:"
	postCacheExpiration    = 5 * time.Minute
)

func NewPostRepository(db *gorm.DB, redis *util.RedisClient) PostRepository {
	return &postRepository{
		db:    db,
		redis: redis,
	}
}

func (r *postRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return err
	}

	if r.redis != nil {
		r.redis.Delete(postsByUserCachePrefix + post.UserID)
	}

	return nil
}

func (r *postRepository) FindByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("User").Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByUserID returns the user's own posts, newest first.
func (r *postRepository) FindByUserID(userID string) ([]*model.Post, error) {
	// Try cache first
	if r.redis != nil {
		cached, err := r.getListFromCache(postsByUserCachePrefix + userID)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	var posts []*model.Post
	err := r.db.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	// Cache the result
	if r.redis != nil {
		r.cacheList(postsByUserCachePrefix+userID, posts)
	}

	return posts, nil
}

// FindExcludingUserID returns everyone else's posts, newest first. The
// result set is unbounded; the global feed carries no pagination.
func (r *postRepository) FindExcludingUserID(userID string) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Preload("User").
		Where("user_id <> ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) FindByIDs(ids []string) ([]*model.Post, error) {
	var posts []*model.Post
	if len(ids) == 0 {
		return posts, nil
	}
	err := r.db.Preload("User").
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Cache helpers
func (r *postRepository) cacheList(key string, posts []*model.Post) {
	postsJSON, err := json.Marshal(posts)
	if err != nil {
		return
	}
	r.redis.Set(key, string(postsJSON), postCacheExpiration)
}

func (r *postRepository) getListFromCache(key string) ([]*model.Post, error) {
	if r.redis == nil {
		return nil, fmt.Errorf("redis not available")
	}

	cached, err := r.redis.Get(key)
	if err != nil {
		return nil, err
	}

	var posts []*model.Post
	if err := json.Unmarshal([]byte(cached), &posts); err != nil {
		return nil, err
	}

	return posts, nil
}
