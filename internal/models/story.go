package models

import "time"

// Story эфемерный контент, живёт 24 часа с момента создания
type Story struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Media     string    `json:"media"`
	Text      string    `gorm:"size:45" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// StoryTTL время жизни истории
const StoryTTL = 24 * time.Hour
