package repositories

import (
	"context"

	"github.com/anonto42/book-hearts/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for message read-state queries
type MessageRepository interface {
	// CountUnread counts unread messages on the given hearts that were not
	// written by excludingUserID.
	CountUnread(ctx context.Context, heartIDs []uint, excludingUserID uint) (int64, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) CountUnread(ctx context.Context, heartIDs []uint, excludingUserID uint) (int64, error) {
	if len(heartIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("heart_id IN ? AND user_id <> ? AND have_read = ?", heartIDs, excludingUserID, false).
		Count(&count).Error
	return count, err
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

func (r *MongoMessageRepository) CountUnread(ctx context.Context, heartIDs []uint, excludingUserID uint) (int64, error) {
	if len(heartIDs) == 0 {
		return 0, nil
	}
	filter := bson.M{
		"heart_id":  bson.M{"$in": heartIDs},
		"user_id":   bson.M{"$ne": excludingUserID},
		"have_read": false,
	}
	return r.collection.CountDocuments(ctx, filter)
}
