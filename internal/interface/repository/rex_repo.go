package repository

import (
	"context"
	"fmt"

	"rexlog-service/internal/domain/entity"
	"rexlog-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRexRepository implements the RexRepository interface
type MongoRexRepository struct {
	collection *mongo.Collection
}

// NewMongoRexRepository creates a new MongoDB REX repository
func NewMongoRexRepository(db *mongo.Database) repository.RexRepository {
	collection := db.Collection("rexRecords")

	// Create indexes for better performance
	ctx := context.Background()

	windowIndex := mongo.IndexModel{
		Keys: bson.M{"windowId": 1},
	}

	// Compound index for listing a window's records in creation order
	windowCreatedIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "windowId", Value: 1},
			{Key: "createdAt", Value: 1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		windowIndex,
		windowCreatedIndex,
	})

	return &MongoRexRepository{
		collection: collection,
	}
}

// Create inserts a new REX record
func (r *MongoRexRepository) Create(ctx context.Context, rex *entity.ReturnOfExperience) error {
	if rex.Attachments == nil {
		rex.Attachments = []entity.Attachment{}
	}

	_, err := r.collection.InsertOne(ctx, rex)
	if err != nil {
		return fmt.Errorf("insert rex record: %w", err)
	}
	return nil
}

// FindByID finds a REX record by its id
func (r *MongoRexRepository) FindByID(ctx context.Context, id string) (*entity.ReturnOfExperience, error) {
	var rex entity.ReturnOfExperience
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rex)
	if err != nil {
		return nil, err
	}
	return &rex, nil
}

// ListByWindow returns the records of a window, oldest first
func (r *MongoRexRepository) ListByWindow(ctx context.Context, windowID string) ([]*entity.ReturnOfExperience, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"windowId": windowID}, &options.FindOptions{
		Sort: bson.D{{Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]*entity.ReturnOfExperience, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// CountByWindow counts the records of a window
func (r *MongoRexRepository) CountByWindow(ctx context.Context, windowID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"windowId": windowID})
}
