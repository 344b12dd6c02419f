package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/book-hearts/backend/internal/models"
	"github.com/anonto42/book-hearts/backend/internal/repositories"
	"github.com/anonto42/book-hearts/backend/internal/validators"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HeartService enforces the rules for sending, answering and withdrawing hearts.
// Every operation takes the acting user explicitly.
type HeartService struct {
	heartRepository     repositories.HeartRepository
	bookshelfRepository repositories.BookshelfRepository
	userRepository      repositories.UserRepository
	bookRepository      repositories.BookRepository
	validator           *validators.CustomValidator
	projector           projector
}

// NewHeartService creates a new HeartService
func NewHeartService(
	heartRepo repositories.HeartRepository,
	bookshelfRepo repositories.BookshelfRepository,
	userRepo repositories.UserRepository,
	bookRepo repositories.BookRepository,
) *HeartService {
	return &HeartService{
		heartRepository:     heartRepo,
		bookshelfRepository: bookshelfRepo,
		userRepository:      userRepo,
		bookRepository:      bookRepo,
		validator:           validators.NewValidator(),
		projector:           projector{users: userRepo, books: bookRepo},
	}
}

// CreateHeart sends a heart from requesterID to targetUserID about bookID.
// Both users must have the book on their shelves. Sending the same heart
// twice returns the stored one.
func (s *HeartService) CreateHeart(ctx context.Context, requesterID, targetUserID, bookID uint) (*models.Heart, error) {
	if err := s.validateCreate(ctx, requesterID, targetUserID, bookID); err != nil {
		return nil, err
	}

	liked, err := s.bookshelfRepository.HasBook(ctx, requesterID, bookID)
	if err != nil {
		return nil, fmt.Errorf("check requester shelf: %w", err)
	}
	if !liked {
		return nil, Forbidden(ReasonUserHaveNotLikedBook)
	}

	liked, err = s.bookshelfRepository.HasBook(ctx, targetUserID, bookID)
	if err != nil {
		return nil, fmt.Errorf("check partner shelf: %w", err)
	}
	if !liked {
		return nil, Forbidden(ReasonPartnerHaveNotLikedBook)
	}

	heart := &models.Heart{
		FromUserID: requesterID,
		ToUserID:   targetUserID,
		BookID:     bookID,
		Status:     models.HeartStatusPending,
		HaveRead:   false,
	}

	err = s.heartRepository.CreateHeart(ctx, heart)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the insert race or a repeated request: the stored row wins.
		existing, findErr := s.heartRepository.FindHeart(ctx, requesterID, targetUserID, bookID)
		if findErr != nil {
			return nil, fmt.Errorf("load existing heart: %w", findErr)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create heart: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"heart_id": heart.ID,
		"from":     requesterID,
		"to":       targetUserID,
		"book_id":  bookID,
	}).Info("heart created")

	return heart, nil
}

func (s *HeartService) validateCreate(ctx context.Context, requesterID, targetUserID, bookID uint) error {
	req := models.CreateHeartRequest{UserID: targetUserID, BookID: bookID}
	if err := s.validator.Validate(req); err != nil {
		var fields validators.FieldErrors
		if errors.As(err, &fields) {
			return Validation(fields)
		}
		return err
	}

	fields := validators.FieldErrors{}
	if targetUserID == requesterID {
		fields.Add("userId", "The user id must be a different user.")
	} else if _, err := s.userRepository.GetUserByID(ctx, targetUserID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load target user: %w", err)
		}
		fields.Add("userId", "The selected user id is invalid.")
	}

	if _, err := s.bookRepository.GetBookByID(ctx, bookID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load book: %w", err)
		}
		fields.Add("bookId", "The selected book id is invalid.")
	}

	if len(fields) > 0 {
		return Validation(fields)
	}
	return nil
}

// UpdateHeartStatus answers the heart otherUserID sent to actorID. Answering
// marks the heart as read.
func (s *HeartService) UpdateHeartStatus(ctx context.Context, actorID, otherUserID uint, status models.HeartStatus) (*models.HeartView, error) {
	if err := s.validator.Validate(models.UpdateHeartRequest{Status: status}); err != nil {
		var fields validators.FieldErrors
		if errors.As(err, &fields) {
			return nil, Validation(fields)
		}
		return nil, err
	}

	heart, err := s.heartRepository.TransitionHeart(ctx, otherUserID, actorID, status, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Heart not found")
		}
		return nil, fmt.Errorf("update heart status: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"heart_id": heart.ID,
		"actor":    actorID,
		"status":   heart.Status,
	}).Info("heart answered")

	return s.projector.view(ctx, heart)
}

// DeleteHeart withdraws the heart otherUserID sent to actorID by denying it.
// The row is kept; the heart actorID may have sent back is left alone.
func (s *HeartService) DeleteHeart(ctx context.Context, actorID, otherUserID uint) (*models.HeartView, error) {
	heart, err := s.heartRepository.TransitionHeart(ctx, otherUserID, actorID, models.HeartStatusDenied, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Forbidden(ReasonHaveNotLikedUser)
		}
		return nil, fmt.Errorf("withdraw heart: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"heart_id": heart.ID,
		"actor":    actorID,
	}).Info("heart withdrawn")

	return s.projector.view(ctx, heart)
}
