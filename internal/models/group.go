package models

// Group is a named community a post may optionally belong to. The slug is
// the group's public identifier; uniqueness is enforced at creation and the
// record is never cascade-deleted into its posts.
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description string `json:"description" gorm:"type:text"`
}

// CreateGroupRequest defines the request body for creating a new group
type CreateGroupRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Slug        string `json:"slug" validate:"required,min=1,max=255"`
	Description string `json:"description"`
}
