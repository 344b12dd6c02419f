package services

import (
	"context"
	"fmt"

	"github.com/anonto42/book-hearts/backend/internal/models"
	"github.com/anonto42/book-hearts/backend/internal/repositories"
)

// NotificationService derives a user's notification feed and badge counts
// from heart and message state. It keeps nothing between calls.
type NotificationService struct {
	heartRepository   repositories.HeartRepository
	messageRepository repositories.MessageRepository
	projector         projector
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	heartRepo repositories.HeartRepository,
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	bookRepo repositories.BookRepository,
) *NotificationService {
	return &NotificationService{
		heartRepository:   heartRepo,
		messageRepository: messageRepo,
		projector:         projector{users: userRepo, books: bookRepo},
	}
}

// ListNotifications returns every heart addressed to userID, newest first
func (s *NotificationService) ListNotifications(ctx context.Context, userID uint) ([]models.HeartEvent, error) {
	hearts, err := s.heartRepository.GetHeartsByTarget(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list incoming hearts: %w", err)
	}

	events := make([]models.HeartEvent, 0, len(hearts))
	if len(hearts) == 0 {
		return events, nil
	}

	sums, err := s.projector.resolve(ctx, hearts)
	if err != nil {
		return nil, err
	}

	for _, h := range hearts {
		events = append(events, models.HeartEvent{
			CreatedAt: h.CreatedAt,
			Status:    h.Status,
			HaveRead:  h.HaveRead,
			User:      sums.users[h.FromUserID],
			Book:      sums.books[h.BookID],
		})
	}
	return events, nil
}

// Counts returns the badge counters for userID. Hearts counts every incoming
// heart, read or not; messages counts unread messages from the other party
// on approved hearts.
func (s *NotificationService) Counts(ctx context.Context, userID uint) (*models.NotificationCount, error) {
	hearts, err := s.heartRepository.CountHeartsByTarget(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count incoming hearts: %w", err)
	}

	approved, err := s.heartRepository.GetApprovedHeartIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list approved hearts: %w", err)
	}

	messages, err := s.messageRepository.CountUnread(ctx, approved, userID)
	if err != nil {
		return nil, fmt.Errorf("count unread messages: %w", err)
	}

	return &models.NotificationCount{Hearts: hearts, Messages: messages}, nil
}
