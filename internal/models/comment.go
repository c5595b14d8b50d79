package models

import "time"

// Comment belongs to exactly one post and one author; deleting either
// deletes the comment. Listed oldest first, the reverse of posts.
type Comment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	PostID   uint      `json:"post_id" gorm:"index;not null"`
	AuthorID uint      `json:"author_id" gorm:"index;not null"`
	Author   *User     `json:"author,omitempty"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	Created  time.Time `json:"created" gorm:"index;<-:create"`
}

// CommentRequest defines the request body for creating a comment
type CommentRequest struct {
	Text string `json:"text" form:"text" validate:"required,min=1"`
}
