package service

import (
	"fmt"
	"time"

	"socialbook/internal/model"
	"socialbook/internal/repository"
)

type ProfileService interface {
	GetProfile(userID string) (*model.UserResponse, error)
	UpdateProfile(userID string, req UpdateProfileRequest) (*model.UserResponse, error)
}

// UpdateProfileRequest carries partial-update semantics: nil fields are
// left untouched. Email is not updatable through this path.
type UpdateProfileRequest struct {
	Name               *string    `json:"name,omitempty"`
	TC                 *bool      `json:"tc,omitempty"`
	Bio                *string    `json:"bio,omitempty"`
	Location           *string    `json:"location,omitempty"`
	Work               *string    `json:"work,omitempty"`
	Study              *string    `json:"study,omitempty"`
	RelationshipStatus *string    `json:"relationship_status,omitempty"`
	DateOfBirth        *time.Time `json:"date_of_birth,omitempty"`
	ProfilePic         *string    `json:"profile_pic,omitempty"`
	CoverPic           *string    `json:"cover_pic,omitempty"`
}

type profileService struct {
	userRepo repository.UserRepository
}

func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) GetProfile(userID string) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, notFoundError("user not found")
	}

	resp := model.ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies only the supplied fields and persists the result.
func (s *profileService) UpdateProfile(userID string, req UpdateProfileRequest) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, notFoundError("user not found")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.TC != nil {
		user.TC = *req.TC
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.Work != nil {
		user.Work = req.Work
	}
	if req.Study != nil {
		user.Study = req.Study
	}
	if req.RelationshipStatus != nil {
		if !model.ValidRelationshipStatus(*req.RelationshipStatus) {
			return nil, validationError("invalid relationship status")
		}
		user.RelationshipStatus = *req.RelationshipStatus
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.ProfilePic != nil {
		user.ProfilePic = req.ProfilePic
	}
	if req.CoverPic != nil {
		user.CoverPic = req.CoverPic
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	resp := model.ToUserResponse(user)
	return &resp, nil
}
