package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/nawa-notice-api/internal/models"
	"github.com/noah-isme/nawa-notice-api/pkg/database"
)

type adminDocument struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
}

// AdminMongoRepository reads admin names from the "admins" collection.
type AdminMongoRepository struct {
	collection *mongo.Collection
}

// NewAdminMongoRepository creates the repository on top of db.
func NewAdminMongoRepository(db *mongo.Database) *AdminMongoRepository {
	return &AdminMongoRepository{collection: db.Collection(database.AdminsCollection)}
}

// FindByID returns the admin with the given hex id.
func (r *AdminMongoRepository) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrRecordNotFound
	}

	opts := options.FindOne().SetProjection(bson.M{"name": 1})
	var doc adminDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &models.Admin{ID: doc.ID.Hex(), Name: doc.Name}, nil
}
