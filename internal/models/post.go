package models

import "time"

// Post is owned by its author and only deleted by them.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Desc      string    `json:"desc" gorm:"size:255;not null"`
	Img       string    `json:"img,omitempty"`
	UserID    string    `json:"user_id" gorm:"size:191;not null;index"`
	User      User      `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	Likes     []Like    `json:"likes,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Comments  []Comment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled by queries that select the comment count subquery.
	CommentsCount int64 `json:"comments_count" gorm:"->;-:migration"`
}

// LikeUserIDs returns the ids of the users who liked the post.
func (p *Post) LikeUserIDs() []string {
	ids := make([]string, 0, len(p.Likes))
	for _, l := range p.Likes {
		ids = append(ids, l.UserID)
	}
	return ids
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Desc string `json:"desc" form:"desc" validate:"required,min=1,max=255"`
	Img  string `json:"img,omitempty" form:"img" validate:"omitempty,url"`
}
