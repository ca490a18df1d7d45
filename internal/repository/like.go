package repository

import (
	"context"

	"storyhub/internal/models"
	"storyhub/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Exists(ctx context.Context, userID, storyID uint) (bool, error)
	Delete(ctx context.Context, userID, storyID uint) error
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts the like. A second like of the same story by the same user
// fails with a CONFLICT error from the unique index.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	defer observability.TrackQuery("insert", "likes")()
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(like).Error)
}

func (r *likeRepository) Exists(ctx context.Context, userID, storyID uint) (bool, error) {
	defer observability.TrackQuery("count", "likes")()
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, storyID uint) error {
	defer observability.TrackQuery("delete", "likes")()
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		Delete(&models.Like{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
