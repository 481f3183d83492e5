package repository

import (
	"context"
	"time"

	"ecom-backend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductRepository implements ProductStore on the mongo "products"
// collection.
type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs fetches all products matching the given IDs in one round trip.
// IDs absent from the catalog are simply missing from the result; callers
// decide whether that is an integrity problem.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// SeedDefaults inserts the demo catalog when the collection is empty, so a
// fresh install has something to sell.
func (r *ProductRepository) SeedDefaults(ctx context.Context) error {
	count, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(defaultProducts))
	for _, p := range defaultProducts {
		p.ID = uuid.New()
		p.CreatedAt = now
		docs = append(docs, p)
	}

	_, err = r.collection.InsertMany(ctx, docs)
	return err
}

const seedImage = "https://www.pexels.com/photo/concrete-road-between-trees-1563356/"

var defaultProducts = []models.Product{
	{Name: "Wireless Headphones", Price: 99.99, Image: seedImage, Description: "High-quality wireless headphones with noise cancellation"},
	{Name: "Smart Watch", Price: 199.99, Image: seedImage, Description: "Feature-rich smartwatch with health monitoring"},
	{Name: "Laptop Backpack", Price: 49.99, Image: seedImage, Description: "Durable laptop backpack with multiple compartments"},
	{Name: "Bluetooth Speaker", Price: 79.99, Image: seedImage, Description: "Portable Bluetooth speaker with excellent sound quality"},
	{Name: "Phone Case", Price: 19.99, Image: seedImage, Description: "Protective phone case with stylish design"},
	{Name: "USB-C Cable", Price: 15.99, Image: seedImage, Description: "Fast charging USB-C cable, 2m length"},
	{Name: "Wireless Mouse", Price: 29.99, Image: seedImage, Description: "Ergonomic wireless mouse with precision tracking"},
	{Name: "Monitor Stand", Price: 39.99, Image: seedImage, Description: "Adjustable monitor stand for better ergonomics"},
}
