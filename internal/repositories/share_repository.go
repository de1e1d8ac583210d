package repositories

import (
	"context"

	"github.com/anonto42/socialite/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShareRepository defines the interface for share data operations
type ShareRepository interface {
	CreateShare(ctx context.Context, share *models.Share) error
	GetSharesByUserIDs(ctx context.Context, userIDs []string) ([]models.Share, error)
}

// PostgresShareRepository implements ShareRepository for PostgreSQL
type PostgresShareRepository struct {
	db *gorm.DB
}

func NewPostgresShareRepository(db *gorm.DB) *PostgresShareRepository {
	return &PostgresShareRepository{db: db}
}

func (r *PostgresShareRepository) CreateShare(ctx context.Context, share *models.Share) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(share).Error
}

// GetSharesByUserIDs retrieves the shares made by userIDs with the sharer
// and the wrapped post (author, likes, comment count) attached.
func (r *PostgresShareRepository) GetSharesByUserIDs(ctx context.Context, userIDs []string) ([]models.Share, error) {
	shares := []models.Share{}
	if len(userIDs) == 0 {
		return shares, nil
	}
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Post", func(db *gorm.DB) *gorm.DB {
			return db.Select(commentsCountSelect)
		}).
		Preload("Post.User").
		Preload("Post.Likes").
		Where("user_id IN ?", userIDs).
		Order("shared_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}
