package database

import (
	"eventgallery/internal/auth"
	"eventgallery/internal/comments"
	"eventgallery/internal/events"
	"eventgallery/internal/images"
	"eventgallery/internal/users"

	"gorm.io/gorm"
)

// Migrate creates or updates every table. Order follows foreign keys.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&auth.Session{},
		&events.Event{},
		&events.Participant{},
		&images.Image{},
		&images.Like{},
		&comments.Comment{},
	)
}
