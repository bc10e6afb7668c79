package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

var (
	// MongoDB client
	MongoDB *mongo.Database
	// Redis client
	Redis *redisclient.Client
)

// InitMongoDB initializes the MongoDB connection
func InitMongoDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := EnsureIndexes(context.Background(), MongoDB); err != nil {
		logging.Logger.Error("failed to ensure indexes on startup", zap.Error(err))
	}

	logging.Logger.Info("connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
	return nil
}

// InitRedis initializes the Redis connection. A failed ping is logged and
// leaves Redis nil; the import-config cache then falls back to MongoDB.
func InitRedis() {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         AppConfig.RedisURI,
		Password:     AppConfig.RedisPassword,
		DB:           AppConfig.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	client := redisclient.NewClient(redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		return
	}

	Redis = client
	logging.Logger.Info("connected to Redis",
		zap.String("uri", AppConfig.RedisURI))
}

// maskMongoURI masks the credentials part of a MongoDB URI
func maskMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at == -1 {
		return uri
	}
	scheme := "mongodb://"
	if strings.HasPrefix(uri, "mongodb+srv://") {
		scheme = "mongodb+srv://"
	}
	return scheme + "****:****@" + uri[at+1:]
}

// collectionIndexes lists the indexes every collection needs
func collectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		AppConfig.ContactCollection: {
			{Keys: bson.D{{Key: "phones", Value: 1}}, Options: options.Index().SetName("phones_1")},
			{Keys: bson.D{{Key: "group_ids", Value: 1}}, Options: options.Index().SetName("group_ids_1")},
			{Keys: bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}, Options: options.Index().SetName("last_name_1_first_name_1")},
			{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}, Options: options.Index().SetName("created_at_1__id_1")},
		},
		AppConfig.RegionCollection: {
			{Keys: bson.D{{Key: "name_key", Value: 1}}, Options: options.Index().SetName("name_key_1").SetUnique(true)},
		},
		AppConfig.GroupCollection: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}}, Options: options.Index().SetName("owner_id_1")},
		},
		AppConfig.ImportConfigCollection: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "name", Value: 1}}, Options: options.Index().SetName("owner_id_1_name_1").SetUnique(true)},
		},
	}
}

// EnsureIndexes creates required indexes if they don't exist
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	logger := logging.Logger.Named("database")
	logger.Info("ensuring required indexes exist")

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for collectionName, indexModels := range collectionIndexes() {
		for _, model := range indexModels {
			if err := ensureIndex(ctx, logger, db.Collection(collectionName), model); err != nil {
				return err
			}
		}
	}

	logger.Info("all required indexes verified")
	return nil
}

// ensureIndex creates one named index unless it already exists
func ensureIndex(ctx context.Context, logger *logging.SafeLogger, collection *mongo.Collection, model mongo.IndexModel) error {
	name := ""
	if model.Options != nil && model.Options.Name != nil {
		name = *model.Options.Name
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		logger.Error("failed to list indexes", zap.String("collection", collection.Name()), zap.Error(err))
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			continue
		}
		if existing, ok := index["name"].(string); ok && existing == name {
			logger.Debug("index already exists",
				zap.String("collection", collection.Name()),
				zap.String("index", name))
			return nil
		}
	}

	if _, err := collection.Indexes().CreateOne(ctx, model); err != nil {
		// Another instance may have created it concurrently
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		logger.Error("failed to create index",
			zap.String("collection", collection.Name()),
			zap.String("index", name),
			zap.Error(err))
		return err
	}

	logger.Info("created collection index",
		zap.String("collection", collection.Name()),
		zap.String("index", name))
	return nil
}
