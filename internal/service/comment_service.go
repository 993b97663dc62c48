package service

import (
	"fmt"

	"socialbook/internal/model"
	"socialbook/internal/repository"
)

type CommentService interface {
	CommentPost(userID, postID, content string) (*model.CommentResponse, error)
	ListComments(postID string) ([]model.CommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// CommentPost always creates a new row; repeats are allowed.
func (s *commentService) CommentPost(userID, postID, content string) (*model.CommentResponse, error) {
	if content == "" {
		return nil, validationError("comment content is required")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, notFoundError("user not found")
	}

	if _, err := s.postRepo.FindByID(postID); err != nil {
		return nil, notFoundError("post not found")
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	comment.User = *user
	resp := model.ToCommentResponse(comment)
	return &resp, nil
}

// ListComments returns a post's comments, newest first.
func (s *commentService) ListComments(postID string) ([]model.CommentResponse, error) {
	comments, err := s.commentRepo.FindByPostID(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return model.ToCommentResponses(comments), nil
}
