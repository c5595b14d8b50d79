package models

import "time"

// Post is a published entry. PubDate is assigned by the store at creation
// and never changes afterwards; every feed orders by it, newest first.
// GroupID is nullable: deleting a group clears the reference on its posts
// while deleting an author removes the posts themselves.
type Post struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"index;<-:create"`
	AuthorID uint      `json:"author_id" gorm:"index;not null"`
	Author   *User     `json:"author,omitempty"`
	GroupID  *uint     `json:"group_id" gorm:"index"`
	Group    *Group    `json:"group,omitempty"`
	Image    string    `json:"image,omitempty"` // blob store reference, empty when no attachment
}

// PostRequest defines the request body for creating or editing a post.
// The image travels separately as multipart bytes; Image here is only set
// by the server once the attachment has been stored.
type PostRequest struct {
	Text    string `json:"text" form:"text" validate:"required,min=1"`
	GroupID *uint  `json:"group_id" form:"group_id"`
}
