package models

import "time"

// Relationship направленное ребро подписки: follower читает followed
type Relationship struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"followerId"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"followedId"`
	CreatedAt  time.Time `json:"createdAt"`

	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Followed User `gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE" json:"-"`
}
