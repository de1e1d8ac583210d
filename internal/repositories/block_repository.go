package repositories

import (
	"context"

	"github.com/anonto42/socialite/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlockRepository defines the interface for block data operations
type BlockRepository interface {
	ToggleBlock(ctx context.Context, blockerID, blockedID string) (bool, error)
	IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error)
}

// PostgresBlockRepository implements BlockRepository for PostgreSQL
type PostgresBlockRepository struct {
	db *gorm.DB
}

func NewPostgresBlockRepository(db *gorm.DB) *PostgresBlockRepository {
	return &PostgresBlockRepository{db: db}
}

// ToggleBlock removes an existing block or creates one. It reports whether
// blockerID blocks blockedID afterwards.
func (r *PostgresBlockRepository) ToggleBlock(ctx context.Context, blockerID, blockedID string) (bool, error) {
	db := r.db.WithContext(ctx)
	res := db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Delete(&models.Block{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	block := &models.Block{BlockerID: blockerID, BlockedID: blockedID}
	if err := db.Omit(clause.Associations).Create(block).Error; err != nil {
		if isUniqueViolation(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PostgresBlockRepository) IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	return count > 0, err
}
