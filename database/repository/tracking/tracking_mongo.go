package trackingRepo

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

// MongoTrackingRepo implements TrackingRepository using MongoDB.
type MongoTrackingRepo struct {
	coll *mongo.Collection
}

// NewMongoTrackingRepo constructs the repository and ensures its indexes.
func NewMongoTrackingRepo() *MongoTrackingRepo {
	repo := &MongoTrackingRepo{
		coll: database.DB().Collection("notification_tracking"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("trackingRepo: %v", err))
	}
	return repo
}

// ensureIndexes creates the unique compound index over the dedup tuple.
// This index is the at-most-once guarantee; everything else is an
// optimization on top of it.
func (r *MongoTrackingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dedupIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "event_type", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "entity_kind", Value: 1},
			{Key: "recipient_user_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	recipientIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "recipient_user_id", Value: 1}, {Key: "sent_at", Value: -1}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{dedupIdx, recipientIdx}); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// WasSent reports whether a ledger entry exists for the tuple.
func (r *MongoTrackingRepo) WasSent(ctx context.Context, eventType, entityID, entityKind, recipientUserID string) (bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"event_type":        eventType,
		"entity_id":         entityID,
		"entity_kind":       entityKind,
		"recipient_user_id": recipientUserID,
	}
	count, err := r.coll.CountDocuments(opCtx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking tracking ledger: %w", err)
	}
	return count > 0, nil
}

// Record inserts a ledger entry for the tuple. A duplicate-key rejection
// from the unique index maps to ErrAlreadyRecorded.
func (r *MongoTrackingRepo) Record(ctx context.Context, eventType, entityID, entityKind, recipientUserID string) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rec := models.TrackingRecord{
		EventType:       eventType,
		EntityID:        entityID,
		EntityKind:      entityKind,
		RecipientUserID: recipientUserID,
		SentAt:          time.Now(),
	}
	if _, err := r.coll.InsertOne(opCtx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyRecorded
		}
		return fmt.Errorf("error recording tracking entry: %w", err)
	}
	return nil
}
