package database

import "gorm.io/gorm"

// Database обёртка над gorm, все запросы приложения идут через неё
type Database struct {
	db *gorm.DB
}

// NewDatabase оборачивает готовое соединение
func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}
