package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Desc      string    `json:"desc" gorm:"type:text;not null"`
	UserID    string    `json:"user_id" gorm:"size:191;not null;index"`
	User      User      `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Desc string `json:"desc" form:"desc" validate:"required"`
}
