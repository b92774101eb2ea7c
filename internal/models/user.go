package models

import (
	"time"
)

// Role роль пользователя
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Origin способ создания аккаунта: локальная регистрация или внешний провайдер
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginGoogle Origin = "google"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"size:35;not null" json:"firstName"`
	LastName  string `gorm:"size:35;not null" json:"lastName"`
	Email     string `gorm:"size:320;uniqueIndex;not null" json:"email"`
	// PasswordHash nil для аккаунтов, созданных внешним провайдером
	PasswordHash *string   `gorm:"size:72" json:"-"`
	Role         Role      `gorm:"size:16;default:'user';not null" json:"role"`
	Origin       Origin    `gorm:"size:16;default:'local';not null" json:"origin"`
	ProfilePic   string    `json:"profilePic"`
	CoverPic     string    `json:"coverPic"`
	City         string    `gorm:"size:85" json:"city"`
	CreatedAt    time.Time `json:"createdAt"`
}
