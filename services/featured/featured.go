package featured

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/channels"
	"github.com/AbdulWasayUl/country-explorer/internal/config"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/models"
	"github.com/AbdulWasayUl/country-explorer/services/country"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNoCountries = errors.New("no countries to feature")

type Directory interface {
	FetchAll(ctx context.Context) ([]country.Record, error)
}

// Store keeps the current snapshot. Load reports false when none exists yet.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (Snapshot, bool, error)
}

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(client *mongo.Client, cfg *config.Config) *MongoStore {
	return &MongoStore{
		coll: client.Database(cfg.DBCountries).Collection(cfg.CollectionFeatured),
	}
}

func (s *MongoStore) Save(ctx context.Context, snap Snapshot) error {
	snap.ID = snapshotID
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": snapshotID}, snap, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to store featured snapshot: %w", err)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context) (Snapshot, bool, error) {
	var snap Snapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to load featured snapshot: %w", err)
	}
	return snap, true, nil
}

// Service rotates the featured countries on a schedule.
type Service struct {
	Config    *config.Config
	Directory Directory
	Store     Store
}

func NewService(cfg *config.Config, dir Directory, store Store) *Service {
	return &Service{Config: cfg, Directory: dir, Store: store}
}

func (s *Service) Name() string {
	return serviceName
}

func (s *Service) FetchData(ctx context.Context) (interface{}, error) {
	return s.Directory.FetchAll(ctx)
}

// ParseData picks FeaturedCount distinct countries at random.
func (s *Service) ParseData(data interface{}) (interface{}, error) {
	records, ok := data.([]country.Record)
	if !ok {
		return nil, fmt.Errorf("expected []country.Record, got %T", data)
	}
	if len(records) == 0 {
		return nil, ErrNoCountries
	}

	picked := lo.Samples(records, s.Config.FeaturedCount)
	return Snapshot{
		ID:        snapshotID,
		Codes:     lo.Map(picked, func(r country.Record, _ int) string { return r.Codes.Alpha3 }),
		Countries: picked,
		RotatedAt: time.Now().UTC(),
	}, nil
}

func (s *Service) StoreData(ctx context.Context, data interface{}) error {
	snap, ok := data.(Snapshot)
	if !ok {
		return fmt.Errorf("invalid data type for storing featured snapshot: %T", data)
	}
	if err := s.Store.Save(ctx, snap); err != nil {
		return err
	}
	logger.Info("[%s] Featured countries rotated: %v", serviceName, snap.Codes)
	return nil
}

// RunBatchJob queues one rotation on the worker pool.
func (s *Service) RunBatchJob(ctx context.Context, chans *channels.Channels) error {
	logger.Info("[%s] Starting batch job...", serviceName)

	job := models.Job{
		ID:        time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
		FetchFunc: s.FetchData,
		ParseFunc: s.ParseData,
		StoreFunc: s.StoreData,
	}
	if err := chans.Submit(ctx, job); err != nil {
		return fmt.Errorf("submit featured rotation: %w", err)
	}

	logger.Info("[%s] Submitted rotation job to the worker pool.", serviceName)
	return nil
}

// Current returns the featured countries from the last rotation, or none if
// no rotation has run yet.
func (s *Service) Current(ctx context.Context) ([]country.Record, error) {
	snap, ok, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok || snap.Countries == nil {
		return []country.Record{}, nil
	}
	return snap.Countries, nil
}
