package models

import "time"

// Story is visible while now < ExpiresAt. Expired rows are kept.
type Story struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Img       string    `json:"img" gorm:"not null"`
	UserID    string    `json:"user_id" gorm:"size:191;not null;index"`
	User      User      `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	Likes     []Like    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
}

// VisibleAt reports whether the story is still live at now.
func (s *Story) VisibleAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// LikeUserIDs returns the ids of the users who liked the story.
func (s *Story) LikeUserIDs() []string {
	ids := make([]string, 0, len(s.Likes))
	for _, l := range s.Likes {
		ids = append(ids, l.UserID)
	}
	return ids
}

// CreateStoryRequest carries an already-uploaded image URL.
type CreateStoryRequest struct {
	Img string `json:"img" form:"img" validate:"required,url"`
}
