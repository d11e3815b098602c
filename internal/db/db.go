package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/config"
	"github.com/AbdulWasayUl/country-explorer/internal/db/migrations"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNoMongoURI = errors.New("mongo uri is not configured")

func ConnectMongoDB(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	if cfg.MongoURI == "" {
		return nil, ErrNoMongoURI
	}

	clientOptions := options.Client().ApplyURI(cfg.MongoURI)
	if cfg.MongoUser != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   cfg.MongoUser,
			Password:   cfg.MongoPass,
			AuthSource: cfg.MongoAuthDB,
		})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(ctxTimeout, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Info("Successfully connected to MongoDB!")
	return client, nil
}

func DisconnectMongoDB(ctx context.Context, client *mongo.Client) error {
	if err := client.Disconnect(ctx); err != nil {
		return err
	}
	logger.Info("Disconnected from MongoDB.")
	return nil
}

// Migrations lists every migration in the order they run.
func Migrations(cfg *config.Config) []models.Migration {
	return []models.Migration{
		{Name: "create_users_collection", Func: migrations.CreateUsersCollection(cfg)},
		{Name: "create_featured_collection", Func: migrations.CreateFeaturedCollection(cfg)},
	}
}

func RunMigrations(ctx context.Context, client *mongo.Client, cfg *config.Config) error {
	return runMigrations(ctx, client, cfg, Migrations(cfg))
}

func runMigrations(ctx context.Context, client *mongo.Client, cfg *config.Config, list []models.Migration) error {
	coll := client.Database(cfg.DBCountries).Collection(cfg.CollectionMigrationsHistory)

	for _, m := range list {
		var result struct{ Name string }
		err := coll.FindOne(ctx, bson.M{"name": m.Name}).Decode(&result)
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			logger.Info("Running migration: %s", m.Name)
			if err := m.Func(ctx, client); err != nil {
				logger.Error("Error applying migration %s: %v", m.Name, err)
				return err
			}
			if _, err := coll.InsertOne(ctx, bson.M{"name": m.Name, "applied_at": time.Now()}); err != nil {
				return err
			}
			logger.Info("Migration %s applied successfully.", m.Name)
		case err != nil:
			return err
		default:
			logger.Debug("Migration %s already applied, skipping.", m.Name)
		}
	}

	return nil
}
