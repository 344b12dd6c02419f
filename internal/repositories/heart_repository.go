package repositories

import (
	"context"

	"github.com/anonto42/book-hearts/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HeartRepository defines the interface for heart data operations
type HeartRepository interface {
	FindHeart(ctx context.Context, fromUserID, toUserID, bookID uint) (*models.Heart, error)
	CreateHeart(ctx context.Context, heart *models.Heart) error
	TransitionHeart(ctx context.Context, fromUserID, toUserID uint, status models.HeartStatus, markRead bool) (*models.Heart, error)
	CountHeartsByTarget(ctx context.Context, userID uint) (int64, error)
	GetHeartsByTarget(ctx context.Context, userID uint) ([]models.Heart, error)
	GetApprovedHeartIDs(ctx context.Context, userID uint) ([]uint, error)
}

// PostgresHeartRepository implements HeartRepository for PostgreSQL
type PostgresHeartRepository struct {
	db *gorm.DB
}

// NewPostgresHeartRepository creates a new PostgresHeartRepository
func NewPostgresHeartRepository(db *gorm.DB) *PostgresHeartRepository {
	return &PostgresHeartRepository{db: db}
}

// FindHeart retrieves the heart sent by fromUserID to toUserID. A zero bookID
// matches any book and returns the most recent heart between the two users.
func (r *PostgresHeartRepository) FindHeart(ctx context.Context, fromUserID, toUserID, bookID uint) (*models.Heart, error) {
	var heart models.Heart
	q := r.db.WithContext(ctx).Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID)
	if bookID != 0 {
		q = q.Where("book_id = ?", bookID)
	}
	if err := q.Order("created_at DESC, id DESC").First(&heart).Error; err != nil {
		return nil, err
	}
	return &heart, nil
}

// CreateHeart inserts a new heart. A second heart for the same
// (from, to, book) triple fails with gorm.ErrDuplicatedKey.
func (r *PostgresHeartRepository) CreateHeart(ctx context.Context, heart *models.Heart) error {
	return r.db.WithContext(ctx).Create(heart).Error
}

// TransitionHeart locks the newest heart from fromUserID to toUserID, moves it
// to status and returns the committed row. markRead also flags it as read.
func (r *PostgresHeartRepository) TransitionHeart(ctx context.Context, fromUserID, toUserID uint, status models.HeartStatus, markRead bool) (*models.Heart, error) {
	var heart models.Heart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
			Order("created_at DESC, id DESC").
			First(&heart).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"status": status}
		if markRead {
			updates["have_read"] = true
		}
		if err := tx.Model(&models.Heart{}).Where("id = ?", heart.ID).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", heart.ID).Take(&heart).Error
	})
	if err != nil {
		return nil, err
	}
	return &heart, nil
}

// CountHeartsByTarget counts every heart addressed to a user, read or not
func (r *PostgresHeartRepository) CountHeartsByTarget(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Heart{}).Where("to_user_id = ?", userID).Count(&count).Error
	return count, err
}

// GetHeartsByTarget retrieves all hearts addressed to a user, newest first
func (r *PostgresHeartRepository) GetHeartsByTarget(ctx context.Context, userID uint) ([]models.Heart, error) {
	var hearts []models.Heart
	if err := r.db.WithContext(ctx).Where("to_user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&hearts).Error; err != nil {
		return nil, err
	}
	return hearts, nil
}

// GetApprovedHeartIDs returns the IDs of approved hearts the user sent or received
func (r *PostgresHeartRepository) GetApprovedHeartIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Heart{}).
		Where("(from_user_id = ? OR to_user_id = ?) AND status = ?", userID, userID, models.HeartStatusApproved).
		Pluck("id", &ids).Error
	return ids, err
}
