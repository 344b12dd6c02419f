package models

import "time"

// Book is a catalogue entry users can put on their shelves
type Book struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"index"`
	TitleSlug string    `json:"slug" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookSummary is the compact book shape embedded in heart responses
type BookSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// ToSummary projects a book to its summary
func (b *Book) ToSummary() BookSummary {
	return BookSummary{ID: b.ID, Title: b.Title, Slug: b.TitleSlug}
}

// Bookshelf records that a user added a book to their shelf
type Bookshelf struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	UserID  uint      `json:"userId" gorm:"index;uniqueIndex:idx_bookshelf_user_book"`
	BookID  uint      `json:"bookId" gorm:"index;uniqueIndex:idx_bookshelf_user_book"`
	AddedAt time.Time `json:"addedAt"`
}

// TableName keeps the table name used by the rest of the platform
func (Bookshelf) TableName() string {
	return "bookshelves"
}
