package sessionRepo

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

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a new instance of MongoSessionRepo.
func NewMongoSessionRepo() *MongoSessionRepo {
	repo := &MongoSessionRepo{
		coll: database.DB().Collection("sessions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("sessionRepo: %v", err))
	}
	return repo
}

func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "state", Value: 1}, {Key: "scheduled_at", Value: 1}}},
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "scheduled_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a session document by ID.
func (r *MongoSessionRepo) GetByID(ctx context.Context, sessionID string) (*models.Session, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.Session
	if err := r.coll.FindOne(opCtx, bson.M{"id": sessionID}).Decode(&session); err != nil {
		return nil, fmt.Errorf("error fetching session with id %s: %w", sessionID, err)
	}
	return &session, nil
}

// Create inserts a new session document.
func (r *MongoSessionRepo) Create(ctx context.Context, s *models.Session) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(opCtx, s); err != nil {
		return fmt.Errorf("error inserting session: %w", err)
	}
	return nil
}

// ListScheduledBetween returns PROGRAMADA sessions in [from, to].
func (r *MongoSessionRepo) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.Session, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"state":        models.SessionProgramada,
		"scheduled_at": bson.M{"$gte": from, "$lte": to},
	}
	cursor, err := r.coll.Find(opCtx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching scheduled sessions: %w", err)
	}
	defer cursor.Close(opCtx)

	var sessions []models.Session
	if err := cursor.All(opCtx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	return sessions, nil
}

// ListInProgressInactiveSince returns stale EN_CURSO sessions. Sessions
// that were never joined fall back to their scheduled time as the
// activity signal.
func (r *MongoSessionRepo) ListInProgressInactiveSince(ctx context.Context, cutoff time.Time) ([]models.Session, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"state": models.SessionEnCurso,
		"$or": []bson.M{
			{"last_join_at": bson.M{"$lt": cutoff}},
			{"last_join_at": nil, "scheduled_at": bson.M{"$lt": cutoff}},
		},
	}
	cursor, err := r.coll.Find(opCtx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching inactive sessions: %w", err)
	}
	defer cursor.Close(opCtx)

	var sessions []models.Session
	if err := cursor.All(opCtx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	return sessions, nil
}

// UpdateState writes a new state, optionally appending an audit note.
func (r *MongoSessionRepo) UpdateState(ctx context.Context, sessionID string, state models.SessionState, note *models.SessionNote) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"state": state, "updated_at": time.Now()}}
	if note != nil {
		update["$push"] = bson.M{"notes": note}
	}
	res, err := r.coll.UpdateOne(opCtx, bson.M{"id": sessionID}, update)
	if err != nil {
		return fmt.Errorf("error updating session %s state: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}

// UpdateSchedule moves a session to a new scheduled time.
func (r *MongoSessionRepo) UpdateSchedule(ctx context.Context, sessionID string, scheduledAt time.Time) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"scheduled_at": scheduledAt, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(opCtx, bson.M{"id": sessionID}, update)
	if err != nil {
		return fmt.Errorf("error rescheduling session %s: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}

// TouchJoin refreshes the last join timestamp.
func (r *MongoSessionRepo) TouchJoin(ctx context.Context, sessionID string, at time.Time) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"last_join_at": at, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(opCtx, bson.M{"id": sessionID}, update)
	if err != nil {
		return fmt.Errorf("error touching session %s: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}
