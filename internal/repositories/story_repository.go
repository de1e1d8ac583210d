package repositories

import (
	"context"
	"time"

	"github.com/anonto42/socialite/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoryRepository defines the interface for story operations
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id uint) (*models.Story, error)
	GetVisibleStories(ctx context.Context, viewerID string, now time.Time) ([]models.Story, error)
}

type storyRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

// CreateStory inserts the story and loads its author
func (r *storyRepository) CreateStory(ctx context.Context, story *models.Story) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(story).Error; err != nil {
		return err
	}
	return db.Where("id = ?", story.UserID).First(&story.User).Error
}

func (r *storyRepository) GetStoryByID(ctx context.Context, id uint) (*models.Story, error) {
	var story models.Story
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&story).Error; err != nil {
		return nil, notFound(err)
	}
	return &story, nil
}

// GetVisibleStories returns the unexpired stories of viewerID and of the
// users viewerID follows, newest first. Self-follow edges are ignored.
func (r *storyRepository) GetVisibleStories(ctx context.Context, viewerID string, now time.Time) ([]models.Story, error) {
	stories := []models.Story{}
	following := r.db.Model(&models.Follow{}).
		Select("following_id").
		Where("follower_id = ? AND following_id <> ?", viewerID, viewerID)

	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Likes").
		Where("expires_at > ?", now).
		Where("user_id = ? OR user_id IN (?)", viewerID, following).
		Order("created_at DESC").
		Find(&stories).Error
	if err != nil {
		return nil, err
	}
	return stories, nil
}
