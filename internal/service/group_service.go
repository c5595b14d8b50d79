package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/internal/repositories"
)

// GroupService owns group administration. Groups are created by
// authenticated actors and their slug is fixed for life.
type GroupService struct {
	groupRepository repositories.GroupRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo repositories.GroupRepository) *GroupService {
	return &GroupService{groupRepository: groupRepo}
}

// CreateGroup creates a group after normalizing and validating the payload
func (s *GroupService) CreateGroup(ctx context.Context, viewerID uint, req models.CreateGroupRequest) (*models.Group, error) {
	if viewerID == 0 {
		return nil, &AuthRequiredError{}
	}

	var fields []FieldError
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(strings.ToLower(req.Slug))
	if req.Title == "" {
		fields = append(fields, FieldError{Field: "title", Reason: "required"})
	}
	if req.Slug == "" {
		fields = append(fields, FieldError{Field: "slug", Reason: "required"})
	}
	if req.Slug != "" {
		if _, err := s.groupRepository.GetGroupBySlug(req.Slug); err == nil {
			fields = append(fields, FieldError{Field: "slug", Reason: "already in use"})
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	group := &models.Group{Title: req.Title, Slug: req.Slug, Description: req.Description}
	err := s.groupRepository.CreateGroup(group)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, &ValidationError{Fields: []FieldError{{Field: "slug", Reason: "already in use"}}}
	}
	if err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups returns all groups, for the post form's group selector
func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.groupRepository.GetGroups()
}
