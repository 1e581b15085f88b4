package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"patitas/database"
	"patitas/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.DB().Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the unique (date, time) index. This index is what
// makes Claim atomic: a second insert for the same key fails with a
// duplicate-key error instead of overwriting.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Get returns the slot stored under (date, time), or nil when the key is free.
func (r *MongoAppointmentRepo) Get(ctx context.Context, date string, timeOfDay models.TimeOfDay) (*models.AppointmentSlot, error) {
	var slot models.AppointmentSlot
	err := r.coll.FindOne(ctx, bson.M{"date": date, "time": timeOfDay}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch slot %s %s: %w", date, timeOfDay, err)
	}
	return &slot, nil
}

// Claim inserts the slot document. The unique index turns a concurrent claim
// for the same key into a duplicate-key error, reported as ErrAlreadyClaimed.
func (r *MongoAppointmentRepo) Claim(ctx context.Context, slot models.AppointmentSlot) error {
	slot.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, slot)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyClaimed
		}
		return fmt.Errorf("failed to claim slot %s %s: %w", slot.Date, slot.Time, err)
	}
	return nil
}

// TakenTimes returns the times already claimed on the given date.
func (r *MongoAppointmentRepo) TakenTimes(ctx context.Context, date string) ([]models.TimeOfDay, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to list slots for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var slots []models.AppointmentSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots for %s: %w", date, err)
	}

	times := make([]models.TimeOfDay, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
	}
	return times, nil
}
