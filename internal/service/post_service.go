package service

import (
	"fmt"

	"socialbook/internal/model"
	"socialbook/internal/repository"
)

type PostService interface {
	CreatePost(userID string, req CreatePostRequest) (*model.PostResponse, error)
	ListOwnPosts(userID string) ([]model.PostResponse, error)
	ListGlobalFeed(userID string) ([]model.PostResponse, error)
	SharePost(postID string) (*SharePostResponse, error)
}

type CreatePostRequest struct {
	Content *string `json:"content,omitempty"`
	Image   *string `json:"image,omitempty"`
}

// SharePostResponse is the shareable payload for a post.
type SharePostResponse struct {
	Message string  `json:"message"`
	URL     string  `json:"url"`
	Image   *string `json:"image"`
}

type postService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	publicURL string
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, publicURL string) PostService {
	return &postService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		publicURL: publicURL,
	}
}

// CreatePost persists a post owned by the caller. Content and image are
// both optional.
func (s *postService) CreatePost(userID string, req CreatePostRequest) (*model.PostResponse, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, notFoundError("user not found")
	}

	post := &model.Post{
		UserID:  userID,
		Content: req.Content,
		Image:   req.Image,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	// Reload with the author preloaded
	post, err := s.postRepo.FindByID(post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload post: %w", err)
	}

	resp := model.ToPostResponse(post)
	return &resp, nil
}

// ListOwnPosts returns the caller's posts, newest first.
func (s *postService) ListOwnPosts(userID string) ([]model.PostResponse, error) {
	posts, err := s.postRepo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return model.ToPostResponses(posts), nil
}

// ListGlobalFeed returns everyone else's posts, newest first.
func (s *postService) ListGlobalFeed(userID string) ([]model.PostResponse, error) {
	posts, err := s.postRepo.FindExcludingUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list global feed: %w", err)
	}
	return model.ToPostResponses(posts), nil
}

// SharePost builds the shareable message/URL/image payload for a post.
func (s *postService) SharePost(postID string) (*SharePostResponse, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, notFoundError("post not found")
	}

	content := ""
	if post.Content != nil {
		content = *post.Content
	}

	return &SharePostResponse{
		Message: fmt.Sprintf("Check out this post: %s", content),
		URL:     fmt.Sprintf("%s/api/v1/posts/%s", s.publicURL, post.ID),
		Image:   post.Image,
	}, nil
}
