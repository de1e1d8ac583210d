package models

import "time"

// Block is stored one-way (BlockerID blocked BlockedID).
type Block struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BlockerID string    `json:"blocker_id" gorm:"size:191;not null;index;uniqueIndex:idx_blocker_blocked"`
	BlockedID string    `json:"blocked_id" gorm:"size:191;not null;index;uniqueIndex:idx_blocker_blocked"`
	Blocker   User      `json:"-" gorm:"foreignKey:BlockerID;constraint:OnDelete:CASCADE"`
	Blocked   User      `json:"-" gorm:"foreignKey:BlockedID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
