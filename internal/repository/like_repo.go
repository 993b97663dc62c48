package repository

import (
	"socialbook/internal/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(like *model.Like) error
	FindByUserAndPost(userID, postID string) (*model.Like, error)
	FindByPostID(postID string) ([]*model.Like, error)
	DeleteByUserAndPost(userID, postID string) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts a like. The unique (user_id, post_id) index rejects
// concurrent duplicates at the database.
func (r *likeRepository) Create(like *model.Like) error {
	return r.db.Create(like).Error
}

func (r *likeRepository) FindByUserAndPost(userID, postID string) (*model.Like, error) {
	var like model.Like
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) FindByPostID(postID string) ([]*model.Like, error) {
	var likes []*model.Like
	err := r.db.Preload("User").
		Where("post_id = ?", postID).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

func (r *likeRepository) DeleteByUserAndPost(userID, postID string) (int64, error) {
	result := r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	return result.RowsAffected, result.Error
}
