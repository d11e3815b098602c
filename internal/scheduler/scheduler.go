package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/channels"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/go-co-op/gocron"
)

type SchedulableService interface {
	Name() string
	RunBatchJob(ctx context.Context, chans *channels.Channels) error
}

type Scheduler struct {
	Cron *gocron.Scheduler
}

func New() (*Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{Cron: s}, nil
}

// StartJob runs every service on the cron expression until Stop.
func (s *Scheduler) StartJob(ctx context.Context, cronExpr string, chans *channels.Channels, services []SchedulableService) error {
	_, err := s.Cron.Cron(cronExpr).Do(func() {
		s.runAllJobs(ctx, chans, services)
	})
	if err != nil {
		logger.Error("Failed to schedule job: %v", err)
		return fmt.Errorf("schedule %q: %w", cronExpr, err)
	}

	s.Cron.StartAsync()
	logger.Info("Scheduled %d service(s) on %q", len(services), cronExpr)
	return nil
}

func (s *Scheduler) Stop() {
	s.Cron.Stop()
}

func (s *Scheduler) runAllJobs(ctx context.Context, chans *channels.Channels, services []SchedulableService) {
	logger.Info("--- Scheduled Job Started ---")
	defer logger.Info("--- Scheduled Job Finished ---")

	for _, service := range services {
		if err := service.RunBatchJob(ctx, chans); err != nil {
			logger.Error("Error running batch job for %s: %v", service.Name(), err)
		}
	}

	logger.Info("Waiting for all submitted jobs to complete...")
	chans.WG.Wait()
	logger.Info("All jobs completed.")
}

func (s *Scheduler) RunImmediateJob(ctx context.Context, chans *channels.Channels, services []SchedulableService) {
	logger.Info("--- Immediate Job Started ---")
	defer logger.Info("--- Immediate Job Finished ---")

	s.runAllJobs(ctx, chans, services)
}
