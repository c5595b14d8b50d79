package models

import "time"

// Follow is a directed edge meaning the follower's feed includes the
// followed author's posts. The composite unique index backs up the
// write-path duplicate check; self-follows are rejected before the store.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following;not null"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following;not null"`
	CreatedAt   time.Time `json:"created_at"`
}
