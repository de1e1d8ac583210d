package models

import "time"

// Share is a timeline entry re-publishing a post. A user may share the
// same post any number of times.
type Share struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	UserID   string    `json:"user_id" gorm:"size:191;not null;index"`
	User     User      `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	PostID   uint      `json:"post_id" gorm:"not null;index"`
	Post     Post      `json:"post" gorm:"constraint:OnDelete:CASCADE"`
	SharedAt time.Time `json:"shared_at" gorm:"autoCreateTime;index"`
}
