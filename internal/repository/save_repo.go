package repository

import (
	"socialbook/internal/model"

	"gorm.io/gorm"
)

type SaveRepository interface {
	Create(save *model.Save) error
	FindPostIDsByUserID(userID string) ([]string, error)
	DeleteByUserAndPost(userID, postID string) (int64, error)
}

type saveRepository struct {
	db *gorm.DB
}

func NewSaveRepository(db *gorm.DB) SaveRepository {
	return &saveRepository{db: db}
}

func (r *saveRepository) Create(save *model.Save) error {
	return r.db.Create(save).Error
}

func (r *saveRepository) FindPostIDsByUserID(userID string) ([]string, error) {
	var postIDs []string
	err := r.db.Model(&model.Save{}).
		Where("user_id = ?", userID).
		Pluck("post_id", &postIDs).Error
	if err != nil {
		return nil, err
	}
	return postIDs, nil
}

// DeleteByUserAndPost removes every matching save row (duplicates are
// possible) and reports how many were deleted.
func (r *saveRepository) DeleteByUserAndPost(userID, postID string) (int64, error) {
	result := r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Save{})
	return result.RowsAffected, result.Error
}
