package repositories

import (
	"time"

	"github.com/postboard/backend/internal/models"
	"gorm.io/gorm"
)

// postOrder is the system-wide feed ordering: publication time descending,
// ID as the tiebreak so pages stay stable for posts sharing a timestamp.
const postOrder = "pub_date DESC, id DESC"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	UpdatePost(id uint, text string, groupID *uint, image string) (*models.Post, error)
	DeletePost(id uint) error

	GetAllPosts(offset, limit int) ([]models.Post, error)
	CountAllPosts() (int64, error)
	GetPostsByGroupID(groupID uint, offset, limit int) ([]models.Post, error)
	CountPostsByGroupID(groupID uint) (int64, error)
	GetPostsByAuthorID(authorID uint, offset, limit int) ([]models.Post, error)
	CountPostsByAuthorID(authorID uint) (int64, error)
	GetPostsByFollowedAuthors(followerID uint, offset, limit int) ([]models.Post, error)
	CountPostsByFollowedAuthors(followerID uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post. The publication timestamp is assigned
// here, never by the caller.
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	post.PubDate = time.Now().UTC()
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post with its author and group
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost rewrites the editable fields of a post. PubDate and author
// are immutable and left untouched; an empty image keeps the current one.
func (r *PostgresPostRepository) UpdatePost(id uint, text string, groupID *uint, image string) (*models.Post, error) {
	updates := map[string]any{
		"text":     text,
		"group_id": groupID,
	}
	if image != "" {
		updates["image"] = image
	}
	if err := r.db.Model(&models.Post{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetPostByID(id)
}

// DeletePost deletes a post and all of its comments in one transaction
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// GetAllPosts retrieves a window of the global feed, newest first
func (r *PostgresPostRepository) GetAllPosts(offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").Preload("Group").
		Order(postOrder).Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// CountAllPosts returns the total number of posts
func (r *PostgresPostRepository) CountAllPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

// GetPostsByGroupID retrieves a window of a group's posts, newest first
func (r *PostgresPostRepository) GetPostsByGroupID(groupID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").Preload("Group").
		Where("group_id = ?", groupID).
		Order(postOrder).Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// CountPostsByGroupID returns the number of posts in a group
func (r *PostgresPostRepository) CountPostsByGroupID(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

// GetPostsByAuthorID retrieves a window of an author's posts, newest first
func (r *PostgresPostRepository) GetPostsByAuthorID(authorID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").Preload("Group").
		Where("author_id = ?", authorID).
		Order(postOrder).Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// CountPostsByAuthorID returns the number of posts by an author
func (r *PostgresPostRepository) CountPostsByAuthorID(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// GetPostsByFollowedAuthors retrieves a window of posts whose authors the
// given user follows, newest first
func (r *PostgresPostRepository) GetPostsByFollowedAuthors(followerID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	followed := r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", followerID)
	err := r.db.Preload("Author").Preload("Group").
		Where("author_id IN (?)", followed).
		Order(postOrder).Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// CountPostsByFollowedAuthors returns the number of posts by followed authors
func (r *PostgresPostRepository) CountPostsByFollowedAuthors(followerID uint) (int64, error) {
	var count int64
	followed := r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", followerID)
	err := r.db.Model(&models.Post{}).Where("author_id IN (?)", followed).Count(&count).Error
	return count, err
}
