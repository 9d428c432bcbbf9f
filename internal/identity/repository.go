package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/askbook/askbook-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Directory defines persistence operations for provider accounts.
// GetByEmail returns (nil, nil) when no account matches.
type Directory interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	TouchSignIn(ctx context.Context, email string, at time.Time) error
}

// MongoDirectory implements Directory using a Mongo collection
type MongoDirectory struct {
	col *mongo.Collection
}

// NewMongoDirectory creates the directory and ensures a unique index on email.
func NewMongoDirectory(ctx context.Context, col *mongo.Collection) (*MongoDirectory, error) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("users email index: %w", err)
	}
	return &MongoDirectory{col: col}, nil
}

func (d *MongoDirectory) Create(ctx context.Context, u *models.User) error {
	if _, err := d.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

func (d *MongoDirectory) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := d.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (d *MongoDirectory) TouchSignIn(ctx context.Context, email string, at time.Time) error {
	_, err := d.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"metadata.lastSignInTime": at}})
	return err
}
