package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/postboard/backend/internal/cache"
	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/internal/pagination"
	"github.com/postboard/backend/internal/repositories"
)

// FeedService composes the four listing views and the post detail view.
// The viewer is always an explicit parameter; zero means anonymous.
type FeedService struct {
	postRepository    repositories.PostRepository
	groupRepository   repositories.GroupRepository
	userRepository    repositories.UserRepository
	followRepository  repositories.FollowRepository
	commentRepository repositories.CommentRepository
	feedCache         *cache.FeedCache // optional
}

// NewFeedService creates a new FeedService. feedCache may be nil, in which
// case every read goes straight to the store.
func NewFeedService(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	commentRepo repositories.CommentRepository,
	feedCache *cache.FeedCache,
) *FeedService {
	return &FeedService{
		postRepository:    postRepo,
		groupRepository:   groupRepo,
		userRepository:    userRepo,
		followRepository:  followRepo,
		commentRepository: commentRepo,
		feedCache:         feedCache,
	}
}

// GroupFeed is a page of one group's posts together with the group itself
type GroupFeed struct {
	Group models.Group                 `json:"group"`
	Page  pagination.Page[models.Post] `json:"page"`
}

// ProfileFeed is a page of one author's posts plus the viewer-dependent flags
type ProfileFeed struct {
	Author       models.UserCompact           `json:"author"`
	Page         pagination.Page[models.Post] `json:"page"`
	IsOwnProfile bool                         `json:"is_own_profile"`
	IsFollowing  bool                         `json:"is_following"`
}

// PostDetail is a single post, its comments oldest-first, and how many
// posts its author has published in total
type PostDetail struct {
	Post            models.Post      `json:"post"`
	Comments        []models.Comment `json:"comments"`
	AuthorPostCount int64            `json:"author_post_count"`
}

// GlobalFeed returns a page of all posts, newest first. When a cache is
// wired, a snapshot up to cache.GlobalFeedTTL old may be served instead.
func (s *FeedService) GlobalFeed(ctx context.Context, pageNum int) (pagination.Page[models.Post], error) {
	if s.feedCache != nil {
		if payload, ok := s.feedCache.GetGlobalPage(ctx, pageNum); ok {
			var page pagination.Page[models.Post]
			if err := json.Unmarshal(payload, &page); err == nil {
				return page, nil
			}
		}
	}

	total, err := s.postRepository.CountAllPosts()
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	number, offset, _ := pagination.Resolve(int(total), pageNum)
	posts, err := s.postRepository.GetAllPosts(offset, pagination.PageSize)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	page := pagination.NewPage(posts, int(total), number)

	if s.feedCache != nil {
		if payload, err := json.Marshal(page); err == nil {
			s.feedCache.SetGlobalPage(ctx, pageNum, payload)
		}
	}
	return page, nil
}

// GroupFeed returns a page of the posts tagged to the group with the given slug
func (s *FeedService) GroupFeed(ctx context.Context, slug string, pageNum int) (GroupFeed, error) {
	group, err := s.groupRepository.GetGroupBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GroupFeed{}, &NotFoundError{Resource: "group", Key: slug}
		}
		return GroupFeed{}, err
	}

	total, err := s.postRepository.CountPostsByGroupID(group.ID)
	if err != nil {
		return GroupFeed{}, err
	}
	number, offset, _ := pagination.Resolve(int(total), pageNum)
	posts, err := s.postRepository.GetPostsByGroupID(group.ID, offset, pagination.PageSize)
	if err != nil {
		return GroupFeed{}, err
	}
	return GroupFeed{Group: *group, Page: pagination.NewPage(posts, int(total), number)}, nil
}

// AuthorFeed returns a page of the author's posts plus whether the viewer
// is looking at their own profile and whether they follow this author.
// Both flags are false for an anonymous viewer.
func (s *FeedService) AuthorFeed(ctx context.Context, username string, viewerID uint, pageNum int) (ProfileFeed, error) {
	author, err := s.userRepository.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileFeed{}, &NotFoundError{Resource: "user", Key: username}
		}
		return ProfileFeed{}, err
	}

	feed := ProfileFeed{Author: author.ToCompact()}
	if viewerID != 0 {
		feed.IsOwnProfile = viewerID == author.ID
		following, err := s.followRepository.IsFollowing(viewerID, author.ID)
		if err != nil {
			return ProfileFeed{}, err
		}
		feed.IsFollowing = following
	}

	total, err := s.postRepository.CountPostsByAuthorID(author.ID)
	if err != nil {
		return ProfileFeed{}, err
	}
	number, offset, _ := pagination.Resolve(int(total), pageNum)
	posts, err := s.postRepository.GetPostsByAuthorID(author.ID, offset, pagination.PageSize)
	if err != nil {
		return ProfileFeed{}, err
	}
	feed.Page = pagination.NewPage(posts, int(total), number)
	return feed, nil
}

// FollowedFeed returns a page of posts by the authors the viewer follows.
// Requires an authenticated viewer.
func (s *FeedService) FollowedFeed(ctx context.Context, viewerID uint, pageNum int) (pagination.Page[models.Post], error) {
	if viewerID == 0 {
		return pagination.Page[models.Post]{}, &AuthRequiredError{}
	}

	total, err := s.postRepository.CountPostsByFollowedAuthors(viewerID)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	number, offset, _ := pagination.Resolve(int(total), pageNum)
	posts, err := s.postRepository.GetPostsByFollowedAuthors(viewerID, offset, pagination.PageSize)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	return pagination.NewPage(posts, int(total), number), nil
}

// PostDetail returns one post, its full comment list in creation order and
// the author's total post count
func (s *FeedService) PostDetail(ctx context.Context, postID uint) (PostDetail, error) {
	post, err := s.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PostDetail{}, &NotFoundError{Resource: "post", Key: strconv.FormatUint(uint64(postID), 10)}
		}
		return PostDetail{}, err
	}

	comments, err := s.commentRepository.GetCommentsByPostID(post.ID)
	if err != nil {
		return PostDetail{}, err
	}
	count, err := s.postRepository.CountPostsByAuthorID(post.AuthorID)
	if err != nil {
		return PostDetail{}, err
	}
	return PostDetail{Post: *post, Comments: comments, AuthorPostCount: count}, nil
}
