package service

import (
	"fmt"

	"socialbook/internal/model"
	"socialbook/internal/repository"
)

type SaveService interface {
	SavePost(userID, postID string) error
	UnsavePost(userID, postID string) error
	ListSavedPosts(userID string) ([]model.PostResponse, error)
}

type saveService struct {
	saveRepo repository.SaveRepository
	postRepo repository.PostRepository
}

func NewSaveService(saveRepo repository.SaveRepository, postRepo repository.PostRepository) SaveService {
	return &saveService{
		saveRepo: saveRepo,
		postRepo: postRepo,
	}
}

// SavePost creates a save row. There is no uniqueness constraint, so
// repeated saves pile up duplicates.
func (s *saveService) SavePost(userID, postID string) error {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		return notFoundError("post not found")
	}

	save := &model.Save{
		UserID: userID,
		PostID: postID,
	}

	if err := s.saveRepo.Create(save); err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}

	return nil
}

// UnsavePost deletes every matching save row, failing when none exist.
func (s *saveService) UnsavePost(userID, postID string) error {
	deleted, err := s.saveRepo.DeleteByUserAndPost(userID, postID)
	if err != nil {
		return fmt.Errorf("failed to unsave post: %w", err)
	}
	if deleted == 0 {
		return notFoundError("save not found")
	}
	return nil
}

// ListSavedPosts resolves every post the caller has saved.
func (s *saveService) ListSavedPosts(userID string) ([]model.PostResponse, error) {
	postIDs, err := s.saveRepo.FindPostIDsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}

	posts, err := s.postRepo.FindByIDs(postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve saved posts: %w", err)
	}

	return model.ToPostResponses(posts), nil
}
