package recordsRepo

import (
	"context"

	"medibook/config"
	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRecordRepository stores the audit trail of confirmed
// appointments. The calendar owns the events themselves; these records
// back the admin dashboard.
type AppointmentRecordRepository interface {
	Create(ctx context.Context, record models.AppointmentRecord) error
	GetByID(ctx context.Context, id string) (*models.AppointmentRecord, error)
	ListRecent(ctx context.Context, limit int64) ([]models.AppointmentRecord, error)
	ListByCustomer(ctx context.Context, email string) ([]models.AppointmentRecord, error)
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a new AppointmentRecordRepository instance using MongoDB.
func NewMongoRecordRepo() AppointmentRecordRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoRecordRepo{
		coll: db.Collection("appointment_records"),
	}
}
