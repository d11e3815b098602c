package workpool

import (
	"context"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/channels"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/models"
)

const jobTimeout = 30 * time.Second

type WorkerPool struct {
	WorkerCount int
	Channels    *channels.Channels
}

func New(channels *channels.Channels, workerCount int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &WorkerPool{
		WorkerCount: workerCount,
		Channels:    channels,
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.WorkerCount; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	logger.Debug("Worker %d started.", id)
	for job := range wp.Channels.Jobs {
		wp.process(ctx, id, job)
	}
	logger.Debug("Worker %d stopped.", id)
}

func (wp *WorkerPool) process(ctx context.Context, id int, job models.Job) {
	defer wp.Channels.WG.Done()

	opCtx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	logger.Info("[%s] Worker %d processing job %s", job.Service, id, job.ID)

	data, err := job.FetchFunc(opCtx)
	if err != nil {
		logger.Error("[%s] Worker %d failed to fetch for %s: %v", job.Service, id, job.ID, err)
		return
	}

	parsed, err := job.ParseFunc(data)
	if err != nil {
		logger.Error("[%s] Worker %d failed to parse for %s: %v", job.Service, id, job.ID, err)
		return
	}

	if err := job.StoreFunc(opCtx, parsed); err != nil {
		logger.Error("[%s] Worker %d failed to store for %s: %v", job.Service, id, job.ID, err)
		return
	}

	logger.Info("[%s] Worker %d completed job %s", job.Service, id, job.ID)
}

// Stop closes the queue. Workers drain what is already queued, then exit.
func (wp *WorkerPool) Stop() {
	close(wp.Channels.Jobs)
}
