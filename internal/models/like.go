package models

import "time"

// Like targets exactly one of a post or a story. The partial unique
// indexes keep one like per (user, post) and per (user, story).
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"size:191;not null;index;uniqueIndex:idx_like_user_post;uniqueIndex:idx_like_user_story"`
	PostID    *uint     `json:"post_id,omitempty" gorm:"index;uniqueIndex:idx_like_user_post;check:chk_like_target,(post_id IS NULL) <> (story_id IS NULL)"`
	StoryID   *uint     `json:"story_id,omitempty" gorm:"index;uniqueIndex:idx_like_user_story"`
	CreatedAt time.Time `json:"created_at"`
}
