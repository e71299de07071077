package datastore

import (
	"context"
	"os"
	"time"

	"attendly.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserModel       *mongo.Collection
	AttendanceModel *mongo.Collection

	client *mongo.Client
)

func ConnectToDatabase() {
	connectMongo()
}

func connectMongo() *context.CancelFunc {
	url := os.Getenv("DB_URL")

	if url == "" {
		logger.Error("mongo url missing")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)

	clientOpts := options.Client().ApplyURI(url)
	clientOpts.SetMinPoolSize(5)
	clientOpts.SetMaxPoolSize(10)

	var err error
	client, err = mongo.Connect(ctx, clientOpts)

	if err != nil {
		logger.Warning("an error occured while starting the database", logger.LoggerOptions{Key: "error", Data: err})
		return &cancel
	}

	db := client.Database(os.Getenv("DB_NAME"))
	setUpIndexes(ctx, db)

	logger.Info("connected to mongodb successfully")
	return &cancel
}

// Set up the indexes for the database
func setUpIndexes(ctx context.Context, db *mongo.Database) {
	UserModel = db.Collection("Users")
	UserModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys:    bson.D{{Key: "employeeID", Value: 1}},
		Options: options.Index().SetSparse(true),
	}, {
		Keys:    bson.D{{Key: "department", Value: 1}},
		Options: options.Index(),
	}})

	AttendanceModel = db.Collection("AttendanceEvents")
	AttendanceModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		// one check-in and one check-out per user per local calendar day.
		// the constraint turns a concurrent double-mark into a duplicate-key
		// error instead of a second document.
		Keys:    bson.D{{Key: "userID", Value: 1}, {Key: "day", Value: 1}, {Key: "kind", Value: 1}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys:    bson.D{{Key: "userID", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index(),
	}})

	logger.Info("mongodb indexes set up successfully")
}

func CleanUp() {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("error disconnecting from mongodb", logger.LoggerOptions{Key: "error", Data: err})
	}
}
