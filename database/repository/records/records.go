package recordsRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iono-such-things/hvac-ai-secretary/models"
)

// Repository stores confirmed submissions for the operator's records.
// The database is optional; when none is configured no Repository exists
// and callers skip the record entirely.
type Repository interface {
	Create(ctx context.Context, record models.BookingRecord) (string, error)
	ListByDate(ctx context.Context, date string) ([]models.BookingRecord, error)
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a Mongo-backed booking record repository.
func NewMongoRecordRepo(client *mongo.Client, dbName string) Repository {
	return &mongoRecordRepo{coll: client.Database(dbName).Collection("bookings")}
}

// Create inserts a new booking record and returns its ID.
func (r *mongoRecordRepo) Create(ctx context.Context, record models.BookingRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return "", err
	}
	return record.ID, nil
}

// ListByDate fetches all records for a calendar date, earliest hour first.
func (r *mongoRecordRepo) ListByDate(ctx context.Context, date string) ([]models.BookingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"date": date},
		options.Find().SetSort(bson.D{{Key: "hour", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.BookingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
