package patientRepo

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

// MongoPatientRepo implements PatientRepository using MongoDB. Both
// professional kinds live in one collection distinguished by a kind
// field, so resolving "the assigned professional" is a plain filtered
// lookup instead of probing across collections.
type MongoPatientRepo struct {
	patients      *mongo.Collection
	professionals *mongo.Collection
}

// NewMongoPatientRepo constructs a new instance of MongoPatientRepo.
func NewMongoPatientRepo() *MongoPatientRepo {
	db := database.DB()
	repo := &MongoPatientRepo{
		patients:      db.Collection("patients"),
		professionals: db.Collection("professionals"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("patientRepo: %v", err))
	}
	return repo
}

func (r *MongoPatientRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	patientIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.patients.Indexes().CreateMany(ctx, patientIdx); err != nil {
		return fmt.Errorf("failed to create patient indexes: %w", err)
	}

	professionalIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "id", Value: 1}}},
	}
	if _, err := r.professionals.Indexes().CreateMany(ctx, professionalIdx); err != nil {
		return fmt.Errorf("failed to create professional indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a patient document by ID.
func (r *MongoPatientRepo) GetByID(ctx context.Context, patientID string) (*models.Patient, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var patient models.Patient
	if err := r.patients.FindOne(opCtx, bson.M{"id": patientID}).Decode(&patient); err != nil {
		return nil, fmt.Errorf("error fetching patient with id %s: %w", patientID, err)
	}
	return &patient, nil
}

// ListAll returns every patient. The inactivity scanner walks the whole
// roster; patient counts on this platform are small enough for that.
func (r *MongoPatientRepo) ListAll(ctx context.Context) ([]models.Patient, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.patients.Find(opCtx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error fetching patients: %w", err)
	}
	defer cursor.Close(opCtx)

	var patients []models.Patient
	if err := cursor.All(opCtx, &patients); err != nil {
		return nil, fmt.Errorf("error decoding patients: %w", err)
	}
	return patients, nil
}

// GetProfessional resolves a professional by kind and ID.
func (r *MongoPatientRepo) GetProfessional(ctx context.Context, kind models.ProfessionalKind, professionalID string) (*models.Professional, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var prof models.Professional
	filter := bson.M{"kind": kind, "id": professionalID}
	if err := r.professionals.FindOne(opCtx, filter).Decode(&prof); err != nil {
		return nil, fmt.Errorf("error fetching %s with id %s: %w", kind, professionalID, err)
	}
	return &prof, nil
}
