package planRepo

import (
	"context"
	"fmt"
	"time"

	"nutrivida/database"
	"nutrivida/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPlanRepo implements PlanRepository using MongoDB.
type MongoPlanRepo struct {
	coll *mongo.Collection
}

// NewMongoPlanRepo constructs a new instance of MongoPlanRepo.
func NewMongoPlanRepo() *MongoPlanRepo {
	repo := &MongoPlanRepo{
		coll: database.DB().Collection("plans"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("planRepo: %v", err))
	}
	return repo
}

func (r *MongoPlanRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "active", Value: 1}}},
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "days.date", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a plan document by ID.
func (r *MongoPlanRepo) GetByID(ctx context.Context, planID string) (*models.Plan, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var plan models.Plan
	if err := r.coll.FindOne(opCtx, bson.M{"id": planID}).Decode(&plan); err != nil {
		return nil, fmt.Errorf("error fetching plan with id %s: %w", planID, err)
	}
	return &plan, nil
}

// ListActiveWithDay returns active plans that contain a day for the given
// "YYYY-MM-DD" date.
func (r *MongoPlanRepo) ListActiveWithDay(ctx context.Context, date string) ([]models.Plan, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"active": true, "days.date": date}
	cursor, err := r.coll.Find(opCtx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching active plans for %s: %w", date, err)
	}
	defer cursor.Close(opCtx)

	var plans []models.Plan
	if err := cursor.All(opCtx, &plans); err != nil {
		return nil, fmt.Errorf("error decoding plans: %w", err)
	}
	return plans, nil
}
