package service

import (
	"fmt"

	"socialbook/internal/model"
	"socialbook/internal/repository"
	"socialbook/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(req RegisterRequest) (*util.TokenPair, error)
	Login(req LoginRequest) (*util.TokenPair, error)
	RefreshToken(refreshToken string) (*util.TokenPair, error)
	SearchUsers(keyword string) ([]model.UserResponse, error)
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Name      string `json:"name" binding:"required"`
	TC        bool   `json:"tc"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	Password2 string `json:"password2" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// Register creates a user with a bcrypt-hashed password and returns a
// fresh token pair. Password mismatch and duplicate email fail before any
// row is written.
func (s *authService) Register(req RegisterRequest) (*util.TokenPair, error) {
	if req.Password != req.Password2 {
		return nil, validationError("password and confirm password don't match")
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, validationError("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:              req.Email,
		Name:               req.Name,
		TC:                 req.TC,
		PasswordHash:       string(hash),
		RelationshipStatus: model.RelationshipSingle,
		IsActive:           true,
	}

	if err := s.userRepo.Create(user); err != nil {
		// Unique email constraint is the backstop for concurrent registers
		return nil, validationError("email is already registered")
	}

	return util.GenerateTokenPair(user.ID, user.Email, user.IsAdmin, s.jwtSecret)
}

// Login verifies the credential and returns a fresh token pair. The error
// is the same whether the email is unknown or the password is wrong.
func (s *authService) Login(req LoginRequest) (*util.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, credentialsError("email or password is not valid")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, credentialsError("email or password is not valid")
	}

	if !user.IsActive {
		return nil, credentialsError("account is deactivated")
	}

	return util.GenerateTokenPair(user.ID, user.Email, user.IsAdmin, s.jwtSecret)
}

// RefreshToken exchanges a valid refresh token for a new pair.
func (s *authService) RefreshToken(refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateRefreshToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, credentialsError("invalid or expired refresh token")
	}

	// Reload the user so revoked accounts stop refreshing
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, credentialsError("user no longer exists")
	}
	if !user.IsActive {
		return nil, credentialsError("account is deactivated")
	}

	return util.GenerateTokenPair(user.ID, user.Email, user.IsAdmin, s.jwtSecret)
}

// SearchUsers returns the union of exact email matches and
// case-insensitive name substring matches.
func (s *authService) SearchUsers(keyword string) ([]model.UserResponse, error) {
	users, err := s.userRepo.Search(keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return model.ToUserResponses(users), nil
}
