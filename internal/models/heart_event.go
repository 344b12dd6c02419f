package models

import "time"

// HeartEvent is one entry of a user's notification feed: an incoming heart
// and who sent it about which book.
type HeartEvent struct {
	CreatedAt time.Time   `json:"createdAt"`
	Status    HeartStatus `json:"status"`
	HaveRead  bool        `json:"haveRead"`
	User      UserSummary `json:"user"`
	Book      BookSummary `json:"book"`
}

// NotificationCount holds the badge counters shown to a user
type NotificationCount struct {
	Hearts   int64 `json:"hearts"`
	Messages int64 `json:"messages"`
}
