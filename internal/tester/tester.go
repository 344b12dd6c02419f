// Package tester provides in-memory databases and fixtures for tests.
package tester

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/book-hearts/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database private to t
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// one connection keeps the shared in-memory database alive and serializes writes
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// User inserts a user named name
func User(t testing.TB, db *gorm.DB, name string) *models.User {
	t.Helper()
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	user := &models.User{Name: name, Slug: slug, Email: slug + "@example.com"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("insert user %q: %v", name, err)
	}
	return user
}

// Book inserts a book titled title
func Book(t testing.TB, db *gorm.DB, title string) *models.Book {
	t.Helper()
	book := &models.Book{Title: title, TitleSlug: strings.ToLower(strings.ReplaceAll(title, " ", "-"))}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("insert book %q: %v", title, err)
	}
	return book
}

// Shelve puts book on user's shelf
func Shelve(t testing.TB, db *gorm.DB, user *models.User, book *models.Book) {
	t.Helper()
	entry := &models.Bookshelf{UserID: user.ID, BookID: book.ID, AddedAt: time.Now()}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("shelve book: %v", err)
	}
}

// Heart inserts a heart from one user to another about book
func Heart(t testing.TB, db *gorm.DB, from, to *models.User, book *models.Book, status models.HeartStatus) *models.Heart {
	t.Helper()
	heart := &models.Heart{FromUserID: from.ID, ToUserID: to.ID, BookID: book.ID, Status: status}
	if err := db.Create(heart).Error; err != nil {
		t.Fatalf("insert heart: %v", err)
	}
	return heart
}

// Message inserts a message written by author on heart
func Message(t testing.TB, db *gorm.DB, heart *models.Heart, author *models.User, haveRead bool) *models.Message {
	t.Helper()
	msg := &models.Message{HeartID: heart.ID, UserID: author.ID, HaveRead: haveRead}
	if err := db.Create(msg).Error; err != nil {
		t.Fatalf("insert message: %v", err)
	}
	return msg
}
