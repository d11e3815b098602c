package favorites

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AbdulWasayUl/country-explorer/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists one favorites list per user. Load returns nil, not an error,
// when the user has no document or no favorites field. Save replaces the
// whole list.
type Store interface {
	Load(ctx context.Context, userID string) ([]string, error)
	Save(ctx context.Context, userID string, codes []string) error
}

// MongoStore keeps favorites on the user's document in the users collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(client *mongo.Client, cfg *config.Config) *MongoStore {
	return &MongoStore{
		coll: client.Database(cfg.DBCountries).Collection(cfg.CollectionUsers),
	}
}

func (s *MongoStore) Load(ctx context.Context, userID string) ([]string, error) {
	var doc UserDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites for %s: %w", userID, err)
	}
	return doc.FavoriteCountries, nil
}

// Save upserts so the first toggle creates the document or field.
func (s *MongoStore) Save(ctx context.Context, userID string, codes []string) error {
	if codes == nil {
		codes = []string{}
	}
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{FieldName: codes}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save favorites for %s: %w", userID, err)
	}
	return nil
}

// MemoryStore is a process-local Store used when no document store is configured.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]string{}}
}

func (s *MemoryStore) Load(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	codes, ok := s.data[userID]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), codes...), nil
}

func (s *MemoryStore) Save(ctx context.Context, userID string, codes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = append([]string{}, codes...)
	return nil
}
