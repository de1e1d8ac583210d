package repositories

import (
	"context"

	"github.com/anonto42/socialite/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	TogglePostLike(ctx context.Context, postID uint, userID string) (bool, error)
	ToggleStoryLike(ctx context.Context, storyID uint, userID string) (bool, error)
	GetLikesCountByStoryID(ctx context.Context, storyID uint) (int64, error)
	GetLikerIDsByStoryID(ctx context.Context, storyID uint) ([]string, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// TogglePostLike removes the caller's like on the post or creates one.
// It reports whether the post is liked afterwards.
func (r *PostgresLikeRepository) TogglePostLike(ctx context.Context, postID uint, userID string) (bool, error) {
	return r.toggle(ctx, "post_id", postID, &models.Like{UserID: userID, PostID: &postID})
}

// ToggleStoryLike removes the caller's like on the story or creates one.
func (r *PostgresLikeRepository) ToggleStoryLike(ctx context.Context, storyID uint, userID string) (bool, error) {
	return r.toggle(ctx, "story_id", storyID, &models.Like{UserID: userID, StoryID: &storyID})
}

func (r *PostgresLikeRepository) toggle(ctx context.Context, column string, targetID uint, like *models.Like) (bool, error) {
	db := r.db.WithContext(ctx)
	res := db.Where(column+" = ? AND user_id = ?", targetID, like.UserID).Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	if err := db.Create(like).Error; err != nil {
		// a concurrent toggle inserted the same like first
		if isUniqueViolation(err) {
			return true, nil
		}
		if isForeignKeyViolation(err) {
			return false, ErrNotFound
		}
		return false, err
	}
	return true, nil
}

func (r *PostgresLikeRepository) GetLikesCountByStoryID(ctx context.Context, storyID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("story_id = ?", storyID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresLikeRepository) GetLikerIDsByStoryID(ctx context.Context, storyID uint) ([]string, error) {
	ids := []string{}
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("story_id = ?", storyID).Order("created_at").Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
