package models

import "time"

// ProfileVisit is one visit event. Rows are not deduplicated on write;
// readers group them by visitor.
type ProfileVisit struct {
	ID            uint      `json:"-" bson:"-" gorm:"primaryKey"`
	VisitorID     string    `json:"visitor_id" bson:"visitor_id" gorm:"size:191;not null;index"`
	VisitedUserID string    `json:"visited_user_id" bson:"visited_user_id" gorm:"size:191;not null;index"`
	VisitedAt     time.Time `json:"visited_at" bson:"visited_at" gorm:"not null;index"`
}

// Visitor is one distinct visitor with their most recent visit.
type Visitor struct {
	VisitorID string    `json:"visitor_id"`
	VisitedAt time.Time `json:"visited_at"`
	Visitor   *User     `json:"visitor"`
}
