package models

import "time"

// HeartStatus is the lifecycle state of a heart
type HeartStatus string

const (
	HeartStatusPending  HeartStatus = "pending"
	HeartStatusApproved HeartStatus = "approved"
	HeartStatusDenied   HeartStatus = "denied"
)

// Heart is a directional interest signal from one user to another about a book.
// A match is two approved hearts, one per direction, on the same book.
type Heart struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	FromUserID uint        `json:"fromUserId" gorm:"not null;index;uniqueIndex:idx_heart_from_to_book"` // User who sent the heart
	ToUserID   uint        `json:"toUserId" gorm:"not null;index;uniqueIndex:idx_heart_from_to_book"`   // User the heart is addressed to
	BookID     uint        `json:"bookId" gorm:"not null;uniqueIndex:idx_heart_from_to_book"`
	Status     HeartStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	HaveRead   bool        `json:"haveRead" gorm:"default:false"`
	CreatedAt  time.Time   `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// CreateHeartRequest defines the request body for sending a heart
type CreateHeartRequest struct {
	UserID uint `json:"userId" validate:"required"`
	BookID uint `json:"bookId" validate:"required"`
}

// UpdateHeartRequest defines the request body for answering an incoming heart
type UpdateHeartRequest struct {
	Status HeartStatus `json:"status" validate:"required,oneof=approved denied"`
}

// HeartView is a heart with the other party and the book denormalized for display
type HeartView struct {
	ID        uint        `json:"id"`
	Status    HeartStatus `json:"status"`
	HaveRead  bool        `json:"haveRead"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	User      UserSummary `json:"user"`
	Book      BookSummary `json:"book"`
}
