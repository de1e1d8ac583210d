package models

import "time"

// Follow is an accepted follower edge (FollowerID follows FollowingID).
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"follower_id" gorm:"size:191;not null;index;uniqueIndex:idx_follower_following"`
	FollowingID string    `json:"following_id" gorm:"size:191;not null;index;uniqueIndex:idx_follower_following"`
	Follower    User      `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Following   User      `json:"-" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowRequest is a pending edge, consumed on accept or decline.
type FollowRequest struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   string    `json:"sender_id" gorm:"size:191;not null;index;uniqueIndex:idx_request_sender_receiver"`
	ReceiverID string    `json:"receiver_id" gorm:"size:191;not null;index;uniqueIndex:idx_request_sender_receiver"`
	Sender     User      `json:"sender" gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	Receiver   User      `json:"-" gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"created_at"`
}
