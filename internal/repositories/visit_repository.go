package repositories

import (
	"context"
	"time"

	"github.com/anonto42/socialite/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// VisitRepository stores profile visit events and reads them back grouped
// by visitor.
type VisitRepository interface {
	RecordVisit(ctx context.Context, visit *models.ProfileVisit) error
	GetLatestVisits(ctx context.Context, visitedUserID string) ([]models.Visitor, error)
}

// MongoVisitRepository implements VisitRepository for MongoDB
type MongoVisitRepository struct {
	collection *mongo.Collection
}

// NewMongoVisitRepository creates a new MongoVisitRepository
func NewMongoVisitRepository(db *mongo.Database) *MongoVisitRepository {
	return &MongoVisitRepository{collection: db.Collection("profile_visits")}
}

func (r *MongoVisitRepository) RecordVisit(ctx context.Context, visit *models.ProfileVisit) error {
	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, visit)
	return err
}

// GetLatestVisits keeps the most recent visit per visitor, newest first
func (r *MongoVisitRepository) GetLatestVisits(ctx context.Context, visitedUserID string) ([]models.Visitor, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"visited_user_id": visitedUserID}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$visitor_id",
			"visited_at": bson.M{"$max": "$visited_at"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "visited_at", Value: -1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		VisitorID string    `bson:"_id"`
		VisitedAt time.Time `bson:"visited_at"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	visitors := make([]models.Visitor, 0, len(rows))
	for _, row := range rows {
		visitors = append(visitors, models.Visitor{VisitorID: row.VisitorID, VisitedAt: row.VisitedAt})
	}
	return visitors, nil
}

// PostgresVisitRepository implements VisitRepository for PostgreSQL
type PostgresVisitRepository struct {
	db *gorm.DB
}

func NewPostgresVisitRepository(db *gorm.DB) *PostgresVisitRepository {
	return &PostgresVisitRepository{db: db}
}

func (r *PostgresVisitRepository) RecordVisit(ctx context.Context, visit *models.ProfileVisit) error {
	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(visit).Error
}

func (r *PostgresVisitRepository) GetLatestVisits(ctx context.Context, visitedUserID string) ([]models.Visitor, error) {
	var rows []struct {
		VisitorID string
		VisitedAt time.Time
	}
	err := r.db.WithContext(ctx).Model(&models.ProfileVisit{}).
		Select("visitor_id, MAX(visited_at) AS visited_at").
		Where("visited_user_id = ?", visitedUserID).
		Group("visitor_id").
		Order("MAX(visited_at) DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	visitors := make([]models.Visitor, 0, len(rows))
	for _, row := range rows {
		visitors = append(visitors, models.Visitor{VisitorID: row.VisitorID, VisitedAt: row.VisitedAt})
	}
	return visitors, nil
}
