package models

import "time"

// Message is a chat message exchanged over an approved heart. Only the read
// state matters here; bodies live with the messaging service.
// The same shape is stored in PostgreSQL and in the MongoDB "messages" collection.
type Message struct {
	ID        uint      `json:"id" bson:"_id" gorm:"primaryKey"`
	HeartID   uint      `json:"heartId" bson:"heart_id" gorm:"not null;index"`
	UserID    uint      `json:"userId" bson:"user_id" gorm:"not null;index"` // Author
	HaveRead  bool      `json:"haveRead" bson:"have_read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
