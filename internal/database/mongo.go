// ================== internal/database/mongo.go ==================
package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func Connect(uri, dbName string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping to verify the connection before handing it out
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// ensureIndexes creates the indexes the recommendation history queries rely on.
func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	recommendations := m.Database.Collection("recommendations")

	_, err := recommendations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "generatedAt", Value: -1}},
	})
	return err
}

func (m *MongoDB) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
