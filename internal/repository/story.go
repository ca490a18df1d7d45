package repository

import (
	"context"

	"storyhub/internal/models"
	"storyhub/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoryRepository defines the interface for story data operations
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id uint) (*models.Story, error)
	GetDetail(ctx context.Context, id uint) (*models.Story, error)
	List(ctx context.Context) ([]*models.Story, error)
	Exists(ctx context.Context, id uint) (bool, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

// withCounts selects the story columns plus its like and comment counts.
func withCounts(db *gorm.DB) *gorm.DB {
	return db.Select("stories.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.story_id = stories.id) AS likes_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.story_id = stories.id) AS comments_count")
}

func orderComments(db *gorm.DB) *gorm.DB {
	return db.Order("comments.created_at ASC").Order("comments.id ASC")
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	defer observability.TrackQuery("insert", "stories")()
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(story).Error)
}

func (r *storyRepository) GetByID(ctx context.Context, id uint) (*models.Story, error) {
	defer observability.TrackQuery("select", "stories")()
	var story models.Story
	if err := withCounts(r.db.WithContext(ctx).Model(&models.Story{})).First(&story, id).Error; err != nil {
		return nil, translate(err)
	}
	return &story, nil
}

func (r *storyRepository) GetDetail(ctx context.Context, id uint) (*models.Story, error) {
	defer observability.TrackQuery("select", "stories")()
	var story models.Story
	err := withCounts(r.db.WithContext(ctx).Model(&models.Story{})).
		Preload("Comments", orderComments).
		Preload("Comments.Author").
		First(&story, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &story, nil
}

func (r *storyRepository) List(ctx context.Context) ([]*models.Story, error) {
	defer observability.TrackQuery("select", "stories")()
	var stories []*models.Story
	err := withCounts(r.db.WithContext(ctx).Model(&models.Story{})).
		Order("stories.id DESC").
		Find(&stories).Error
	if err != nil {
		return nil, translate(err)
	}
	return stories, nil
}

func (r *storyRepository) Exists(ctx context.Context, id uint) (bool, error) {
	defer observability.TrackQuery("count", "stories")()
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Story{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *storyRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	defer observability.TrackQuery("update", "stories")()
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.Story{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the story together with its likes and comments.
func (r *storyRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "stories")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("story_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("story_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Story{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return translate(err)
}
