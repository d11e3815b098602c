package migrations

import (
	"context"
	"errors"
	"fmt"

	"github.com/AbdulWasayUl/country-explorer/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
)

const namespaceExists = 48

func createCollectionIfNotExists(ctx context.Context, db *mongo.Database, name string) error {
	err := db.CreateCollection(ctx, name)
	if err == nil {
		return nil
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == namespaceExists {
		return nil
	}
	return fmt.Errorf("failed to create collection %s: %w", name, err)
}

// CreateUsersCollection creates the collection holding one document per user
// with their favorite country codes.
func CreateUsersCollection(cfg *config.Config) func(ctx context.Context, client *mongo.Client) error {
	return func(ctx context.Context, client *mongo.Client) error {
		return createCollectionIfNotExists(ctx, client.Database(cfg.DBCountries), cfg.CollectionUsers)
	}
}

func CreateFeaturedCollection(cfg *config.Config) func(ctx context.Context, client *mongo.Client) error {
	return func(ctx context.Context, client *mongo.Client) error {
		return createCollectionIfNotExists(ctx, client.Database(cfg.DBCountries), cfg.CollectionFeatured)
	}
}
