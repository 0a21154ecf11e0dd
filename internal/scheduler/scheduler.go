package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"media-insight-dashboard/config"
	"media-insight-dashboard/internal/service"
)

func newCron() *cron.Cron {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.DowOptional | cron.Descriptor)
	return cron.New(cron.WithParser(parser))
}

// AddJobs registers the dataset reload and cache maintenance jobs. An empty schedule skips its job.
func AddJobs(c *cron.Cron, cfg *config.Config, datasetSvc service.DatasetService, maintenanceSvc service.CacheMaintenanceService) error {
	if schedule := cfg.Dataset.ReloadSchedule; schedule != "" {
		_, err := c.AddFunc(schedule, func() {
			if err := datasetSvc.Reload(context.Background()); err != nil {
				log.Error().Err(err).Msg("Error during scheduled dataset reload")
			}
		})
		if err != nil {
			log.Error().Err(err).Str("schedule", schedule).Msg("Failed to add dataset reload job")
			return err
		}
		log.Info().Str("schedule", schedule).Msg("Scheduled dataset reload job")
	}

	if schedule := cfg.Insight.SweepSchedule; schedule != "" {
		_, err := c.AddFunc(schedule, func() {
			if err := maintenanceSvc.RunMaintenance(context.Background()); err != nil {
				log.Error().Err(err).Msg("Error during scheduled cache maintenance")
			}
		})
		if err != nil {
			log.Error().Err(err).Str("schedule", schedule).Msg("Failed to add cache maintenance job")
			return err
		}
		log.Info().Str("schedule", schedule).Msg("Scheduled cache maintenance job")
	}
	return nil
}

func NewScheduler(lc fx.Lifecycle, cfg *config.Config, datasetSvc service.DatasetService, maintenanceSvc service.CacheMaintenanceService) (*cron.Cron, error) {
	c := newCron()
	if err := AddJobs(c, cfg, datasetSvc, maintenanceSvc); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Int("jobs", len(c.Entries())).Msg("Starting cron scheduler")
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Stopping cron scheduler...")
			stopCtx := c.Stop()
			select {
			case <-stopCtx.Done():
				log.Info().Msg("Cron scheduler stopped gracefully.")
				return nil
			case <-ctx.Done():
				log.Error().Msg("Context cancelled while waiting for cron scheduler to stop.")
				return ctx.Err()
			}
		},
	})

	return c, nil
}
