package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/internal/repositories"
)

// FollowService manages follow edges. Self-follows and duplicates are
// quietly refused, and unfollowing an absent edge does nothing; the caller
// always lands back on the target's profile.
type FollowService struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowService creates a new FollowService
func NewFollowService(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowService {
	return &FollowService{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

func (s *FollowService) target(username string) (*models.User, error) {
	user, err := s.userRepository.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user", Key: username}
		}
		return nil, err
	}
	return user, nil
}

// Follow creates an edge from the viewer to the target author. A
// self-follow or an existing edge leaves the state exactly as it was.
func (s *FollowService) Follow(ctx context.Context, viewerID uint, targetUsername string) error {
	if viewerID == 0 {
		return &AuthRequiredError{}
	}
	author, err := s.target(targetUsername)
	if err != nil {
		return err
	}
	if author.ID == viewerID {
		return nil
	}
	following, err := s.followRepository.IsFollowing(viewerID, author.ID)
	if err != nil {
		return err
	}
	if following {
		return nil
	}

	err = s.followRepository.CreateFollow(&models.Follow{FollowerID: viewerID, FollowingID: author.ID})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race with an identical request; the edge exists.
		return nil
	}
	return err
}

// Unfollow removes the edge from the viewer to the target author, if any
func (s *FollowService) Unfollow(ctx context.Context, viewerID uint, targetUsername string) error {
	if viewerID == 0 {
		return &AuthRequiredError{}
	}
	author, err := s.target(targetUsername)
	if err != nil {
		return err
	}
	return s.followRepository.DeleteFollow(viewerID, author.ID)
}
