package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// Job is one unit of background work handed to the worker pool. Each stage
// receives the previous stage's output.
type Job struct {
	ID        string
	Service   string
	FetchFunc func(ctx context.Context) (interface{}, error)
	ParseFunc func(data interface{}) (interface{}, error)
	StoreFunc func(ctx context.Context, data interface{}) error
}

type RateLimitSettings struct {
	MaxRequests int
	PerDuration time.Duration
}

type Migration struct {
	Name string
	Func func(ctx context.Context, client *mongo.Client) error
}
