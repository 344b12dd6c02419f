package repositories

import (
	"context"
	"time"

	"github.com/anonto42/book-hearts/backend/internal/models"
	"gorm.io/gorm"
)

// BookshelfRepository defines the interface for bookshelf data operations
type BookshelfRepository interface {
	AddBook(ctx context.Context, userID, bookID uint) error
	HasBook(ctx context.Context, userID, bookID uint) (bool, error)
}

// PostgresBookshelfRepository implements BookshelfRepository for PostgreSQL
type PostgresBookshelfRepository struct {
	db *gorm.DB
}

// NewPostgresBookshelfRepository creates a new PostgresBookshelfRepository
func NewPostgresBookshelfRepository(db *gorm.DB) *PostgresBookshelfRepository {
	return &PostgresBookshelfRepository{db: db}
}

// AddBook puts a book on a user's shelf
func (r *PostgresBookshelfRepository) AddBook(ctx context.Context, userID, bookID uint) error {
	entry := &models.Bookshelf{
		UserID:  userID,
		BookID:  bookID,
		AddedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// HasBook checks if a user has added a specific book to their shelf
func (r *PostgresBookshelfRepository) HasBook(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Bookshelf{}).Where("user_id = ? AND book_id = ?", userID, bookID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
