package repository

import (
	"context"

	"ecom-backend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepository implements OrderStore on the mongo "orders" collection.
// Receipts are write-once; there is no update path.
type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		collection: db.Collection("orders"),
	}
}

func (r *OrderRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	_, err := r.collection.InsertOne(ctx, receipt)
	return err
}

// FindByUserID returns the user's receipts, newest first.
func (r *OrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Receipt, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var receipts []models.Receipt
	if err := cursor.All(ctx, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}
