package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meeting_tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectMongo opens a MongoDB client. A failed ping is logged but not fatal;
// store operations will surface the error per request.
func ConnectMongo(ctx context.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Error("MongoDB ping failed", "error", err)
	} else {
		logger.Info("connected to MongoDB")
	}
	return client, nil
}

// ErrEmailIndex means the unique users.email index could not be created, so the
// store does not enforce email uniqueness.
var ErrEmailIndex = errors.New("unique email index not created")

// EnsureIndexes creates the unique email index and the meeting owner index
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	_, err := db.Collection(repository.UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEmailIndex, err)
	}

	_, err = db.Collection(repository.MeetingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userid", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create meetings.userid index: %w", err)
	}

	logger.Info("MongoDB indexes ensured")
	return nil
}
