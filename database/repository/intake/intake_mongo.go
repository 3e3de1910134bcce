package intakeRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nutrivida/database"
	"nutrivida/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoIntakeRepo implements IntakeRepository using MongoDB.
type MongoIntakeRepo struct {
	coll *mongo.Collection
}

// NewMongoIntakeRepo constructs a new instance of MongoIntakeRepo.
func NewMongoIntakeRepo() *MongoIntakeRepo {
	repo := &MongoIntakeRepo{
		coll: database.DB().Collection("intake_records"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("intakeRepo: %v", err))
	}
	return repo
}

func (r *MongoIntakeRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "patient_id", Value: 1},
			{Key: "meal_type", Value: 1},
			{Key: "date", Value: 1},
		}},
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "logged_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new intake record.
func (r *MongoIntakeRepo) Create(ctx context.Context, rec *models.IntakeRecord) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(opCtx, rec); err != nil {
		return fmt.Errorf("error inserting intake record: %w", err)
	}
	return nil
}

// Exists reports whether an intake record matches the tuple.
func (r *MongoIntakeRepo) Exists(ctx context.Context, patientID string, mealType models.MealType, date string) (bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"patient_id": patientID, "meal_type": mealType, "date": date}
	count, err := r.coll.CountDocuments(opCtx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking intake records: %w", err)
	}
	return count > 0, nil
}

// LastLoggedAt returns the most recent intake timestamp for a patient.
func (r *MongoIntakeRepo) LastLoggedAt(ctx context.Context, patientID string) (time.Time, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "logged_at", Value: -1}})
	var rec models.IntakeRecord
	err := r.coll.FindOne(opCtx, bson.M{"patient_id": patientID}, opts).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("error fetching last intake for patient %s: %w", patientID, err)
	}
	return rec.LoggedAt, nil
}
