package models

import "gorm.io/gorm"

// Migrate creates or updates the PostgreSQL schema for all models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Book{},
		&Bookshelf{},
		&Heart{},
		&Message{},
	)
}
