package purchaseRepo

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

type mongoPurchaseRepo struct {
	coll *mongo.Collection
}

// NewMongoPurchaseRepo creates a PurchaseRepository backed by MongoDB.
func NewMongoPurchaseRepo() PurchaseRepository {
	coll := database.DB().Collection("purchases")
	repo := &mongoPurchaseRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// Append adds one purchase record and returns its ID.
func (r *mongoPurchaseRepo) Append(ctx context.Context, purchase models.Purchase) (string, error) {
	if purchase.ID == "" {
		purchase.ID = uuid.New().String()
	}
	if purchase.Date.IsZero() {
		purchase.Date = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, purchase)
	if err != nil {
		return "", err
	}
	return purchase.ID, nil
}

// GetByUserID fetches a user's purchase history, newest first.
func (r *mongoPurchaseRepo) GetByUserID(ctx context.Context, userID string) ([]models.Purchase, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var purchases []models.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}
