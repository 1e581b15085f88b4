package recordsRepo

import (
	"context"
	"fmt"
	"time"

	"patitas/database"
	"patitas/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo creates a RecordRepository backed by MongoDB.
func NewMongoRecordRepo() RecordRepository {
	coll := database.DB().Collection("appointment_records")
	repo := &mongoRecordRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// Append adds one history entry and returns its ID.
func (r *mongoRecordRepo) Append(ctx context.Context, record models.AppointmentRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

// GetByUserID fetches a user's appointment history, newest first.
func (r *mongoRecordRepo) GetByUserID(ctx context.Context, userID string) ([]models.AppointmentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
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
