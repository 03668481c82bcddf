package client

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"audiobio/internal/config"
)

// MongoClient connects to the AudioBio database and verifies the
// connection before returning.
func MongoClient() *mongo.Client {
	uri := config.GetEnv("AUDIOBIO_MONGO_CONNECTION_STRING")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("error to connect the MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("error to verify connection with MongoDB: %v", err)
	}

	return client
}
