package recordsRepo

import (
	"context"
	"errors"
	"time"

	"medibook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new appointment record.
func (r *mongoRecordRepo) Create(ctx context.Context, record models.AppointmentRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, record)
	return err
}

// GetByID returns an appointment record by its calendar event ID.
func (r *mongoRecordRepo) GetByID(ctx context.Context, id string) (*models.AppointmentRecord, error) {
	var record models.AppointmentRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New("appointment record not found")
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRecent returns the most recently created records, newest first.
func (r *mongoRecordRepo) ListRecent(ctx context.Context, limit int64) ([]models.AppointmentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.AppointmentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListByCustomer fetches all records for a customer email, newest first.
func (r *mongoRecordRepo) ListByCustomer(ctx context.Context, email string) ([]models.AppointmentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"customerEmail": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.AppointmentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
