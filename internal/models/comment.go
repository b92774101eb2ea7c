package models

import "time"

type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	PostID      uint      `gorm:"not null;index" json:"postId"`
	Description string    `gorm:"size:500;not null" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
