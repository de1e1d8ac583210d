package repositories

import (
	"context"

	"github.com/anonto42/socialite/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const commentsCountSelect = "posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostsByUserIDs(ctx context.Context, userIDs []string) ([]models.Post, error)
	DeleteUserPost(ctx context.Context, id uint, userID string) (bool, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// GetPostByID retrieves a post with its author, likes and comment count
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Select(commentsCountSelect).
		Preload("User").
		Preload("Likes").
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// GetPostsByUserIDs retrieves all posts authored by userIDs, newest first
func (r *PostgresPostRepository) GetPostsByUserIDs(ctx context.Context, userIDs []string) ([]models.Post, error) {
	posts := []models.Post{}
	if len(userIDs) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).
		Select(commentsCountSelect).
		Preload("User").
		Preload("Likes").
		Where("posts.user_id IN ?", userIDs).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// DeleteUserPost deletes the post only when userID owns it. It reports
// whether a row was removed.
func (r *PostgresPostRepository) DeleteUserPost(ctx context.Context, id uint, userID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Post{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
