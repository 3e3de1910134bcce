package deliveryRepo

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

// MongoDeliveryRepo implements DeliveryRepository using MongoDB.
type MongoDeliveryRepo struct {
	coll *mongo.Collection
}

// NewMongoDeliveryRepo constructs a new instance of MongoDeliveryRepo.
func NewMongoDeliveryRepo() *MongoDeliveryRepo {
	repo := &MongoDeliveryRepo{
		coll: database.DB().Collection("delivery_calendars"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("deliveryRepo: %v", err))
	}
	return repo
}

func (r *MongoDeliveryRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "start_date", Value: 1}}},
		{Keys: bson.D{{Key: "patient_id", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// ListStartingOn returns delivery calendars starting exactly on the date.
func (r *MongoDeliveryRepo) ListStartingOn(ctx context.Context, date string) ([]models.DeliveryCalendar, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(opCtx, bson.M{"start_date": date})
	if err != nil {
		return nil, fmt.Errorf("error fetching delivery calendars for %s: %w", date, err)
	}
	defer cursor.Close(opCtx)

	var calendars []models.DeliveryCalendar
	if err := cursor.All(opCtx, &calendars); err != nil {
		return nil, fmt.Errorf("error decoding delivery calendars: %w", err)
	}
	return calendars, nil
}
