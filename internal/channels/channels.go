package channels

import (
	"context"
	"sync"

	"github.com/AbdulWasayUl/country-explorer/models"
)

type Channels struct {
	Jobs chan models.Job
	WG   *sync.WaitGroup
}

func New() *Channels {
	const bufferSize = 100
	return &Channels{
		Jobs: make(chan models.Job, bufferSize),
		WG:   &sync.WaitGroup{},
	}
}

// Submit queues a job and counts it on WG before it is visible to workers,
// so WG.Wait covers every submitted job. Workers call WG.Done.
func (c *Channels) Submit(ctx context.Context, job models.Job) error {
	c.WG.Add(1)
	select {
	case c.Jobs <- job:
		return nil
	case <-ctx.Done():
		c.WG.Done()
		return ctx.Err()
	}
}
