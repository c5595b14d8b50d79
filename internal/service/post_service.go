package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/postboard/backend/internal/cache"
	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/internal/repositories"
	"github.com/postboard/backend/internal/storage"
)

// PostInput is the normalized author-submitted payload for creating or
// editing a post. Image bytes are optional; the stored reference ends up
// on the post.
type PostInput struct {
	Text      string
	GroupID   *uint
	ImageName string
	ImageData []byte
}

// CommentInput is the author-submitted payload for a new comment
type CommentInput struct {
	Text string
}

// PostService owns the write path for posts and comments: authorization,
// payload validation, attachment storage and the store mutation itself.
type PostService struct {
	postRepository    repositories.PostRepository
	groupRepository   repositories.GroupRepository
	commentRepository repositories.CommentRepository
	blobStore         storage.BlobStore
	feedCache         *cache.FeedCache // optional
}

// NewPostService creates a new PostService. feedCache may be nil.
func NewPostService(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	commentRepo repositories.CommentRepository,
	blobStore storage.BlobStore,
	feedCache *cache.FeedCache,
) *PostService {
	return &PostService{
		postRepository:    postRepo,
		groupRepository:   groupRepo,
		commentRepository: commentRepo,
		blobStore:         blobStore,
		feedCache:         feedCache,
	}
}

// validatePostInput normalizes in place and returns field annotations for
// whatever is wrong. Leading and trailing whitespace never counts as text.
func (s *PostService) validatePostInput(in *PostInput) []FieldError {
	var fields []FieldError
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		fields = append(fields, FieldError{Field: "text", Reason: "required"})
	}
	if in.GroupID != nil {
		if _, err := s.groupRepository.GetGroupByID(*in.GroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fields = append(fields, FieldError{Field: "group", Reason: "does not exist"})
			} else {
				fields = append(fields, FieldError{Field: "group", Reason: "could not be checked"})
			}
		}
	}
	return fields
}

// CreatePost publishes a new post for the viewer. The store assigns the
// publication timestamp.
func (s *PostService) CreatePost(ctx context.Context, viewerID uint, in PostInput) (*models.Post, error) {
	if viewerID == 0 {
		return nil, &AuthRequiredError{}
	}
	if fields := s.validatePostInput(&in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	post := &models.Post{
		Text:     in.Text,
		AuthorID: viewerID,
		GroupID:  in.GroupID,
	}
	if len(in.ImageData) > 0 {
		ref, err := s.blobStore.Save(ctx, in.ImageName, in.ImageData)
		if err != nil {
			return nil, fmt.Errorf("storing image: %w", err)
		}
		post.Image = ref
	}

	if err := s.postRepository.CreatePost(post); err != nil {
		return nil, err
	}
	if s.feedCache != nil {
		s.feedCache.InvalidateGlobal(ctx)
	}
	return post, nil
}

// EditPost rewrites a post's editable fields. Only the author may edit;
// any other authenticated actor gets a silent redirect to the post's
// detail view, with the post untouched.
func (s *PostService) EditPost(ctx context.Context, viewerID, postID uint, in PostInput) (*models.Post, error) {
	if viewerID == 0 {
		return nil, &AuthRequiredError{}
	}

	post, err := s.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "post", Key: strconv.FormatUint(uint64(postID), 10)}
		}
		return nil, err
	}
	if post.AuthorID != viewerID {
		return nil, &ForbiddenError{RedirectTo: fmt.Sprintf("/posts/%d", postID)}
	}

	if fields := s.validatePostInput(&in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	image := ""
	if len(in.ImageData) > 0 {
		ref, err := s.blobStore.Save(ctx, in.ImageName, in.ImageData)
		if err != nil {
			return nil, fmt.Errorf("storing image: %w", err)
		}
		image = ref
	}

	updated, err := s.postRepository.UpdatePost(postID, in.Text, in.GroupID, image)
	if err != nil {
		return nil, err
	}
	if s.feedCache != nil {
		s.feedCache.InvalidateGlobal(ctx)
	}
	return updated, nil
}

// CreateComment adds a comment to a post for the viewer
func (s *PostService) CreateComment(ctx context.Context, viewerID, postID uint, in CommentInput) (*models.Comment, error) {
	if viewerID == 0 {
		return nil, &AuthRequiredError{}
	}

	if _, err := s.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "post", Key: strconv.FormatUint(uint64(postID), 10)}
		}
		return nil, err
	}

	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return nil, &ValidationError{Fields: []FieldError{{Field: "text", Reason: "required"}}}
	}

	comment := &models.Comment{PostID: postID, AuthorID: viewerID, Text: in.Text}
	if err := s.commentRepository.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}
