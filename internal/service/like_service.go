package service

import (
	"fmt"
	"strings"

	"socialbook/internal/model"
	"socialbook/internal/repository"
)

type LikeService interface {
	LikePost(userID, postID string) error
	UnlikePost(userID, postID string) error
	ListLikes(postID string) ([]model.LikeResponse, error)
}

type likeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) LikeService {
	return &likeService{
		likeRepo: likeRepo,
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// LikePost is a get-or-create: liking twice has no additional effect.
func (s *likeService) LikePost(userID, postID string) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return notFoundError("user not found")
	}
	if _, err := s.postRepo.FindByID(postID); err != nil {
		return notFoundError("post not found")
	}

	if _, err := s.likeRepo.FindByUserAndPost(userID, postID); err == nil {
		return nil
	}

	like := &model.Like{
		UserID: userID,
		PostID: postID,
	}

	if err := s.likeRepo.Create(like); err != nil {
		// A concurrent like hit the unique (user, post) index first;
		// the post ends up liked either way.
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil
		}
		return fmt.Errorf("failed to like post: %w", err)
	}

	return nil
}

// UnlikePost deletes the like row if present. Absence is a no-op success.
func (s *likeService) UnlikePost(userID, postID string) error {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		return notFoundError("post not found")
	}

	if _, err := s.likeRepo.DeleteByUserAndPost(userID, postID); err != nil {
		return fmt.Errorf("failed to unlike post: %w", err)
	}

	return nil
}

// ListLikes returns all likers of a post.
func (s *likeService) ListLikes(postID string) ([]model.LikeResponse, error) {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		return nil, notFoundError("post not found")
	}

	likes, err := s.likeRepo.FindByPostID(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}

	return model.ToLikeResponses(likes), nil
}
