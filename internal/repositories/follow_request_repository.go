package repositories

import (
	"context"

	"github.com/anonto42/socialite/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRequestRepository defines the interface for follow request data operations
type FollowRequestRepository interface {
	HasFollowRequest(ctx context.Context, senderID, receiverID string) (bool, error)
	CreateFollowRequest(ctx context.Context, req *models.FollowRequest) error
	DeleteFollowRequest(ctx context.Context, senderID, receiverID string) (bool, error)
	GetPendingFollowRequests(ctx context.Context, receiverID string) ([]models.FollowRequest, error)
	AcceptFollowRequest(ctx context.Context, senderID, receiverID string) error
}

// PostgresFollowRequestRepository implements FollowRequestRepository for PostgreSQL
type PostgresFollowRequestRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRequestRepository creates a new PostgresFollowRequestRepository
func NewPostgresFollowRequestRepository(db *gorm.DB) *PostgresFollowRequestRepository {
	return &PostgresFollowRequestRepository{db: db}
}

func (r *PostgresFollowRequestRepository) HasFollowRequest(ctx context.Context, senderID, receiverID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FollowRequest{}).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Count(&count).Error
	return count > 0, err
}

// CreateFollowRequest inserts a pending request. An existing request for
// the same pair is left as is.
func (r *PostgresFollowRequestRepository) CreateFollowRequest(ctx context.Context, req *models.FollowRequest) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

// DeleteFollowRequest removes the request and reports whether it existed
func (r *PostgresFollowRequestRepository) DeleteFollowRequest(ctx context.Context, senderID, receiverID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).Delete(&models.FollowRequest{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetPendingFollowRequests retrieves the requests received by receiverID with their senders
func (r *PostgresFollowRequestRepository) GetPendingFollowRequests(ctx context.Context, receiverID string) ([]models.FollowRequest, error) {
	requests := []models.FollowRequest{}
	if err := r.db.WithContext(ctx).Preload("Sender").Where("receiver_id = ?", receiverID).Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// AcceptFollowRequest consumes the request and creates the follower edge
// in one transaction. A missing request yields ErrNotFound.
func (r *PostgresFollowRequestRepository) AcceptFollowRequest(ctx context.Context, senderID, receiverID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).Delete(&models.FollowRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		follow := &models.Follow{FollowerID: senderID, FollowingID: receiverID}
		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(follow).Error
	})
}
